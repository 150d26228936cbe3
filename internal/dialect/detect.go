package dialect

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"pvl/internal/diag"
	"pvl/internal/grammar"
	"pvl/internal/lexer"
	"pvl/internal/source"
	"pvl/internal/trace"
)

// cancelCheckEvery is how many tokens a worker lexes between context checks.
const cancelCheckEvery = 64

// Result is the outcome of lexing the document under one dialect.
type Result struct {
	Dialect grammar.Dialect
	Tokens  int
	// Err is the lexical error that stopped the stream, nil when the whole
	// document lexed cleanly.
	Err error
}

// OK reports whether the document lexed cleanly.
func (r Result) OK() bool { return r.Err == nil }

// Report is the outcome of Detect.
type Report struct {
	Results        []Result // in the order the dialects were requested
	Evidence       *Evidence
	Classification Classification
	// Best is the chosen dialect; Found is false when no requested dialect
	// lexed the document cleanly.
	Best  grammar.Dialect
	Found bool
}

// Accepted returns the dialects that lexed the document cleanly.
func (r Report) Accepted() []grammar.Dialect {
	var out []grammar.Dialect
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Dialect)
		}
	}
	return out
}

// Detector runs dialect detection. The zero value is ready to use.
type Detector struct {
	// Reporter, when set, receives every hint and every failed dialect as an
	// informational diagnostic.
	Reporter diag.Reporter
	// Limit caps the number of concurrent lexers; 0 means no limit.
	Limit int
}

// Detect runs a zero Detector.
func Detect(ctx context.Context, file *source.File, dialects ...grammar.Dialect) (Report, error) {
	return Detector{}.Detect(ctx, file, dialects...)
}

// Detect lexes file under each dialect concurrently, every lexer with its
// own grammar value, and classifies the evidence found in the document.
// With no dialects given all built-in dialects are tried. Lexical errors
// only disqualify a dialect; the returned error is non-nil on cancellation
// or an invalid grammar.
func (dt Detector) Detect(ctx context.Context, file *source.File, dialects ...grammar.Dialect) (Report, error) {
	if file == nil {
		return Report{}, fmt.Errorf("dialect: %w", lexer.ErrNilFile)
	}
	if len(dialects) == 0 {
		dialects = grammar.Dialects()
	}

	ctx, span := trace.Start(ctx, trace.ScopeDetect, "detect")
	span.WithExtra("file", file.Path).
		WithExtra("dialects", strconv.Itoa(len(dialects)))

	results := make([]Result, len(dialects))
	ev := NewEvidence()

	g, gctx := errgroup.WithContext(ctx)
	if dt.Limit > 0 {
		g.SetLimit(dt.Limit)
	}
	opts := lexer.Options{Tracer: trace.FromContext(ctx), TraceParent: trace.ParentFrom(ctx)}
	for i, d := range dialects {
		g.Go(func() error {
			res, err := lexUnder(gctx, file, grammar.New(d), opts)
			results[i] = res
			return err
		})
	}
	g.Go(func() error {
		return collectEvidence(gctx, file, ev, opts)
	})
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return Report{}, err
	}

	rep := Report{Results: results, Evidence: ev}
	accepted := rep.Accepted()
	if len(accepted) > 0 {
		rep.Classification = Classifier{Candidates: accepted}.Classify(ev)
		rep.Best, rep.Found = accepted[0], true
		if rep.Classification.Found {
			rep.Best = rep.Classification.Dialect
		}
	}

	dt.report(file, rep)
	if rep.Found {
		span.WithExtra("best", rep.Best.String())
	}
	span.End("")
	return rep, nil
}

func lexUnder(ctx context.Context, file *source.File, g *grammar.Grammar, opts lexer.Options) (Result, error) {
	res := Result{Dialect: g.Dialect}
	lx, err := lexer.New(file, g, opts)
	if err != nil {
		return res, fmt.Errorf("dialect %s: %w", g.Dialect, err)
	}
	for _, err := range lx.Tokens() {
		if err != nil {
			res.Err = err
			break
		}
		res.Tokens++
		if res.Tokens%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// collectEvidence scans the document with the permissive grammar. Evidence
// found before a lexical error is kept.
func collectEvidence(ctx context.Context, file *source.File, ev *Evidence, opts lexer.Options) error {
	ObserveText(ev, file)
	opts.SkipCharsetCheck = true
	lx, err := lexer.New(file, grammar.New(grammar.Omni), opts)
	if err != nil {
		return fmt.Errorf("dialect evidence: %w", err)
	}
	n := 0
	for tok, err := range lx.Tokens() {
		if err != nil {
			return nil
		}
		ObserveToken(ev, tok)
		if n++; n%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dt Detector) report(file *source.File, rep Report) {
	if dt.Reporter == nil {
		return
	}
	for _, h := range rep.Evidence.Hints() {
		diag.ReportInfo(dt.Reporter, h.Code, h.Span,
			fmt.Sprintf("%s (%s %+d)", h.Reason, h.Dialect, h.Score)).Emit()
	}
	for _, res := range rep.Results {
		if res.OK() {
			continue
		}
		diag.ReportInfo(dt.Reporter, diag.DetLexFailed, errorSpan(file, res.Err),
			fmt.Sprintf("does not lex as %s: %v", res.Dialect, res.Err)).Emit()
	}
}

func errorSpan(file *source.File, err error) source.Span {
	var le *lexer.LexerError
	if !errors.As(err, &le) {
		return source.Span{File: file.ID}
	}
	start, convErr := safecast.Conv[uint32](le.Pos)
	if convErr != nil {
		return source.Span{File: file.ID}
	}
	end := start
	if le.Pos < len(le.Doc) {
		end++
	}
	return source.Span{File: file.ID, Start: start, End: end}
}
