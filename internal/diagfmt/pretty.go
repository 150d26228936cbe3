package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pvl/internal/diag"
	"pvl/internal/lexer"
	"pvl/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	// The writer is not necessarily a terminal, so the global NoColor
	// detection is overridden per colour.
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes the diagnostics of bag in a human-readable form. Items are
// printed in bag order, so callers usually Sort first. Each diagnostic is
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by its source line and a caret underline of the primary span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := writeDiagnostic(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

// FormatLexerError renders err from its document alone, the same way Pretty
// renders an error diagnostic.
func FormatLexerError(w io.Writer, err *lexer.LexerError, opts PrettyOpts) error {
	if err == nil {
		return errors.New("diagfmt: nil lexer error")
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("<document>", []byte(err.Doc))
	start, convErr := safecast.Conv[uint32](err.Pos)
	if convErr != nil {
		return fmt.Errorf("diagfmt: %w", convErr)
	}
	end := start
	if err.Pos < len(err.Doc) {
		end++
	}
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(err.Code(), source.Span{File: id, Start: start, End: end}, err.Msg))
	return Pretty(w, bag, fs, opts)
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	_, err := fmt.Fprintf(w, "%s: %s: %s\n",
		p.path.Sprintf("%s:%d:%d", displayPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col),
		p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message)
	if err != nil {
		return err
	}
	if err := writeSnippet(w, f, fs, d.Primary, opts, p); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		pos, _ := fs.Resolve(n.Span)
		_, err := fmt.Fprintf(w, "  %s %s: %s\n",
			p.note.Sprint("note:"),
			p.path.Sprintf("%s:%d:%d", displayPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col),
			n.Msg)
		if err != nil {
			return err
		}
		if err := writeSnippet(w, nf, fs, n.Span, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) error {
	start, end := fs.Resolve(sp)
	gw := len(strconv.FormatUint(uint64(start.Line), 10))

	first := start.Line
	if ctx := uint32(opts.Context); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	for n := first; n < start.Line; n++ {
		if err := writeSourceLine(w, p, gw, n, f.GetLine(n), opts.Width); err != nil {
			return err
		}
	}

	line := f.GetLine(start.Line)
	if err := writeSourceLine(w, p, gw, start.Line, line, opts.Width); err != nil {
		return err
	}

	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = max(from, min(int(end.Col)-1, len(line)))
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := max(1, runewidth.StringWidth(expandTabs(line[from:to])))
	if opts.Width > 0 && pad+width > opts.Width {
		width = max(1, opts.Width-pad)
	}
	_, err := fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gw, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
	return err
}

func writeSourceLine(w io.Writer, p palette, gw int, n uint32, text string, width int) error {
	text = expandTabs(text)
	if width > 0 {
		text = runewidth.Truncate(text, width, "...")
	}
	_, err := fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gw, n), text)
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
