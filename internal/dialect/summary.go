package dialect

import (
	"fmt"
	"slices"
	"strings"
)

// maxReasons bounds the reasons listed by Summary.
const maxReasons = 3

// Summary renders the report on one line, for example
//
//	odl (score 6, confidence 0.60): radix 5 in "5#1234#"; rejected pvl
//
// It is deterministic and presentation-only.
func (r Report) Summary() string {
	var b strings.Builder
	if !r.Found {
		b.WriteString("no dialect lexes this document")
	} else {
		b.WriteString(r.Best.String())
		if c := r.Classification; c.Found {
			fmt.Fprintf(&b, " (score %d, confidence %.2f)", c.Score, c.Confidence)
			if reasons := r.reasonsFor(); len(reasons) > 0 {
				b.WriteString(": ")
				b.WriteString(strings.Join(reasons, ", "))
			}
		} else {
			b.WriteString(" (no evidence)")
		}
	}

	var rejected []string
	for _, res := range r.Results {
		if !res.OK() {
			rejected = append(rejected, res.Dialect.String())
		}
	}
	if len(rejected) > 0 {
		b.WriteString("; rejected ")
		b.WriteString(strings.Join(rejected, ", "))
	}
	return b.String()
}

func (r Report) reasonsFor() []string {
	var out []string
	for _, h := range r.Evidence.Hints() {
		if h.Dialect != r.Best || h.Score <= 0 || slices.Contains(out, h.Reason) {
			continue
		}
		out = append(out, h.Reason)
		if len(out) == maxReasons {
			break
		}
	}
	return out
}
