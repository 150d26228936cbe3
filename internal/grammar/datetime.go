package grammar

// Go layouts for the PVL date and time forms. Day-of-year dates use "002".
// Fractional seconds are accepted after the seconds field by time.Parse
// even when the layout does not spell them out.
var (
	baseDateLayouts = []string{"2006-01-02", "2006-002"}
	baseTimeLayouts = []string{"15:04", "15:04:05", "15:04:05.999999"}
)

// utcMarker is the optional suffix that pins a time to UTC.
const utcMarker = "Z"

func withUTC(layouts []string) []string {
	out := make([]string, 0, 2*len(layouts))
	out = append(out, layouts...)
	for _, l := range layouts {
		out = append(out, l+utcMarker)
	}
	return out
}

func dateTimeLayouts() []string {
	out := make([]string, 0, 2*len(baseDateLayouts)*len(baseTimeLayouts))
	for _, d := range baseDateLayouts {
		for _, t := range baseTimeLayouts {
			out = append(out, d+"T"+t, d+"T"+t+utcMarker)
		}
	}
	return out
}
