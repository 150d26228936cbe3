package lexer

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"pvl/internal/diag"
	"pvl/internal/grammar"
	"pvl/internal/source"
	"pvl/internal/token"
	"pvl/internal/trace"
)

// Lexer is a pull-based token stream over one document. It is not safe
// for concurrent use; the grammar it reads may be shared.
type Lexer struct {
	file     *source.File
	g        *grammar.Grammar
	opts     Options
	cursor   Cursor
	comments commentInfo

	lexeme     []byte
	lexStart   int
	cstate     commentState
	quote      rune // open quote character, or noChar
	quoteStart int
	quoteDone  bool // the last character closed a quoted string
	closerEnd  int  // offset just past the last "*/" consumed in one step

	look  *token.Token // push-back slot
	err   error        // sticky scan error
	span  *trace.Span
	ended bool
	count int
}

// New returns a lexer over file. A nil grammar means the base PVL grammar.
// Configuration errors of the grammar are returned here, before any
// character is scanned.
func New(file *source.File, g *grammar.Grammar, opts Options) (*Lexer, error) {
	if file == nil {
		return nil, ErrNilFile
	}
	if g == nil {
		g = grammar.New(grammar.PVL)
	}
	ci, err := prepareComments(g.Comments)
	if err == nil {
		err = g.Validate()
	}
	if err != nil {
		reportConfig(opts.Reporter, file, err)
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return &Lexer{
		file:     file,
		g:        g,
		opts:     opts,
		cursor:   NewCursor(file.Text()),
		comments: ci,
		cstate:   outside,
		quote:    noChar,
	}, nil
}

// NewString lexes text held in a fresh virtual file.
func NewString(text string, g *grammar.Grammar, opts Options) (*Lexer, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<string>", []byte(text))
	return New(fs.Get(id), g, opts)
}

func reportConfig(r diag.Reporter, file *source.File, err error) {
	if r == nil {
		return
	}
	code := diag.CfgInfo
	switch {
	case errors.Is(err, grammar.ErrNoComments):
		code = diag.CfgNoComments
	case errors.Is(err, grammar.ErrUnsupportedComment):
		code = diag.CfgUnsupportedComment
	case errors.Is(err, grammar.ErrBadPattern):
		code = diag.CfgBadPattern
	case errors.Is(err, grammar.ErrUnclosedAggregation):
		code = diag.CfgUnclosedAggregation
	}
	diag.ReportError(r, code, source.Span{File: file.ID}, err.Error()).Emit()
}

// Grammar returns the grammar tokens are classified under.
func (lx *Lexer) Grammar() *grammar.Grammar { return lx.g }

// File returns the document being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next token. After the last token it returns a token of
// kind token.EOF on every call. A lexical error ends the stream: the same
// *LexerError is returned from then on.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	if lx.span == nil {
		lx.span = trace.Begin(lx.opts.tracer(), trace.ScopePass, "lex", lx.opts.TraceParent).
			WithExtra("file", lx.file.Path).
			WithExtra("dialect", lx.g.Dialect.String())
	}

	for !lx.cursor.EOF() {
		tok, ok, err := lx.step()
		if err != nil {
			lx.fail(err)
			return token.Token{}, err
		}
		if ok {
			lx.count++
			trace.Point(lx.opts.tracer(), trace.ScopeToken, "token", lx.span.ID(), tok.Text)
			return tok, nil
		}
	}
	lx.finish("")
	return lx.eof(), nil
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	if lx.look != nil {
		return *lx.look, nil
	}
	tok, err := lx.Next()
	if err != nil {
		return tok, err
	}
	lx.look = &tok
	return tok, nil
}

// PushBack makes tok the next token Next returns. Only one token may wait
// in the slot; a second PushBack before the next pull fails with
// ErrPushBackFull and leaves the slot unchanged.
func (lx *Lexer) PushBack(tok token.Token) error {
	if lx.look != nil {
		return ErrPushBackFull
	}
	lx.look = &tok
	trace.Point(lx.opts.tracer(), trace.ScopeToken, "pushback", lx.span.ID(), tok.Text)
	return nil
}

// Tokens yields the remaining tokens up to, not including, EOF. A lexical
// error is yielded once as the final pair. Breaking out of the loop leaves
// the lexer where it stopped, so a later range resumes from there.
func (lx *Lexer) Tokens() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := lx.Next()
			if err != nil {
				yield(token.Token{}, err)
				return
			}
			if tok.Kind == token.EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// All drains the lexer and returns every remaining token.
func (lx *Lexer) All() ([]token.Token, error) {
	var out []token.Token
	for tok, err := range lx.Tokens() {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// step consumes one character and reports whether a token is complete.
func (lx *Lexer) step() (token.Token, bool, error) {
	c, size := lx.cursor.Peek()
	off := lx.cursor.Off
	prev := lx.cursor.Prev()
	if off == lx.closerEnd {
		// A closer's '/' cannot also start an opener.
		prev = noChar
	}
	next := lx.cursor.After(1)
	lx.cursor.Bump()

	before := len(lx.lexeme)
	if err := lx.lexChar(c, prev, next, off); err != nil {
		return token.Token{}, false, err
	}
	if c == utf8.RuneError && size == 1 {
		lx.keepRawByte(before, lx.cursor.Doc[off])
	}
	if before == 0 && len(lx.lexeme) > 0 {
		lx.lexStart = off
		if r, _ := utf8.DecodeRune(lx.lexeme); r != c {
			// The '/' of a "/*" opener was held back until its '*'.
			lx.lexStart = lx.cursor.Off - len(lx.lexeme)
		}
	}
	if c == '*' && next == '/' && len(lx.lexeme) > before && strings.HasSuffix(string(lx.lexeme), grammar.BlockComment.Close) {
		// The '/' was appended together with its '*'.
		lx.cursor.Bump()
		lx.closerEnd = lx.cursor.Off
		c, next = '/', lx.cursor.After(0)
	}

	if !lx.shouldYield(c, next) {
		return token.Token{}, false, nil
	}
	if next == noChar && lx.quote != noChar {
		return token.Token{}, false, wrapLexerError(ErrUnterminatedQuote, "", lx.cursor.Doc, lx.quoteStart)
	}
	if next == noChar && lx.cstate.inBlock() {
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedComment, lx.spanOf(lx.lexStart, lx.cursor.Off),
			fmt.Sprintf("comment is not closed with %q before the end of the document", grammar.BlockComment.Close)).Emit()
	}
	return lx.emit(), true, nil
}

// keepRawByte puts an undecodable source byte back in place of the
// U+FFFD that lexChar appended for it, so token text matches its span.
func (lx *Lexer) keepRawByte(before int, b byte) {
	const width = len(string(utf8.RuneError))
	n := len(lx.lexeme)
	if n-before < width || string(lx.lexeme[n-width:]) != string(utf8.RuneError) {
		return
	}
	lx.lexeme = append(lx.lexeme[:n-width], b)
}

// lexChar folds c into the current lexeme. Quotes take priority, then
// comments, then whitespace, which is dropped.
func (lx *Lexer) lexChar(c, prev, next rune, off int) error {
	switch {
	case lx.quote != noChar:
		lx.lexeme = utf8.AppendRune(lx.lexeme, c)
		if c == lx.quote {
			lx.quote = noChar
			lx.quoteDone = true
		}
		return nil

	case lx.cstate.in || lx.comments.has(c):
		if !lx.cstate.in && lx.nonDecimalCloses(lx.cursor.Doc[off:]) {
			break
		}
		lx.lexeme, lx.cstate = lexComment(c, prev, next, lx.lexeme, lx.cstate, lx.comments)
		return nil

	case lx.g.IsQuote(c):
		lx.quote = c
		lx.quoteStart = off
		lx.lexeme = utf8.AppendRune(lx.lexeme, c)
		return nil

	case lx.g.IsWhitespace(c):
		return nil
	}

	if !lx.opts.SkipCharsetCheck && !lx.g.AllowsRune(c) {
		return lx.charNotAllowed(c, off)
	}
	lx.lexeme = utf8.AppendRune(lx.lexeme, c)
	return nil
}

func (lx *Lexer) charNotAllowed(c rune, off int) error {
	pos := off
	if len(lx.lexeme) > 0 {
		pos = lx.lexStart
	}
	detail := fmt.Sprintf("%s (U+%04X) under %s", strconv.QuoteRune(c), c, lx.g.Dialect)
	return wrapLexerError(ErrCharNotAllowed, detail, lx.cursor.Doc, pos)
}

// shouldYield decides, after c was consumed, whether the lexeme is complete.
func (lx *Lexer) shouldYield(c, next rune) bool {
	if len(lx.lexeme) == 0 {
		return false
	}
	if next == noChar {
		return true
	}
	if lx.cstate.in || lx.quote != noChar {
		return false
	}
	if lx.quoteDone {
		lx.quoteDone = false
		return true
	}
	if lx.startsNumber(c, next) ||
		lx.nonDecimalCloses(lx.cursor.Rest()) ||
		lx.exponentContinues(next, lx.cursor.After(1)) {
		return false
	}

	g := lx.g
	return g.IsWhitespace(next) ||
		g.IsReserved(next) ||
		hasAnyPrefix(lx.cursor.Rest(), lx.comments.openers) ||
		hasAnySuffix(lx.lexeme, lx.comments.closers) ||
		lx.isReservedLexeme()
}

// startsNumber reports whether c and next read as the start of a number,
// so a leading sign is not split off as a reserved character.
func (lx *Lexer) startsNumber(c, next rune) bool {
	var buf [2 * utf8.UTFMax]byte
	probe := utf8.AppendRune(utf8.AppendRune(buf[:0], c), next)
	return token.Token{Text: string(probe), Grammar: lx.g}.IsNumeric()
}

// nonDecimalCloses reports whether the lexeme followed by rest reaches a
// complete radix#digits# integer before leaving the literal's shape. Only
// then may a '#' that also opens a comment stay inside the number.
func (lx *Lexer) nonDecimalCloses(rest string) bool {
	if len(lx.lexeme) == 0 || rest == "" {
		return false
	}
	n := lx.g.Numeric
	s := append([]byte(nil), lx.lexeme...)
	for _, r := range rest {
		s = utf8.AppendRune(s, r)
		if n.NonDecimal.Match(string(s)) {
			return true
		}
		if !n.NonDecimalOpen.Match(string(s)) {
			return false
		}
	}
	return false
}

// exponentContinues reports whether sign is the sign of an exponent, as in
// the '+' of 1.5e+10.
func (lx *Lexer) exponentContinues(sign, digit rune) bool {
	if !lx.g.IsNumericStart(sign) || digit < '0' || digit > '9' {
		return false
	}
	return grammar.IsDecimal(string(lx.lexeme) + string(sign) + "0")
}

func (lx *Lexer) isReservedLexeme() bool {
	r, size := utf8.DecodeRune(lx.lexeme)
	return size == len(lx.lexeme) && lx.g.IsReserved(r)
}

func (lx *Lexer) emit() token.Token {
	tok := token.New(string(lx.lexeme), lx.g)
	tok.Span = lx.spanOf(lx.lexStart, lx.cursor.Off)
	lx.lexeme = lx.lexeme[:0]
	lx.quoteDone = false
	return tok
}

func (lx *Lexer) eof() token.Token {
	end := len(lx.cursor.Doc)
	return token.Token{Kind: token.EOF, Span: lx.spanOf(end, end), Grammar: lx.g}
}

func (lx *Lexer) spanOf(start, end int) source.Span {
	return source.Span{File: lx.file.ID, Start: offset32(start), End: offset32(end)}
}

func (lx *Lexer) fail(err error) {
	lx.err = err
	var le *LexerError
	if errors.As(err, &le) {
		diag.ReportError(lx.opts.Reporter, le.Code(), lx.spanOf(le.Pos, min(le.Pos+1, len(le.Doc))), le.Msg).Emit()
	}
	trace.Point(lx.opts.tracer(), trace.ScopeToken, trace.ErrorEvent, lx.span.ID(), err.Error())
	lx.finish(err.Error())
}

func (lx *Lexer) finish(detail string) {
	if lx.span == nil || lx.ended {
		return
	}
	lx.ended = true
	lx.span.WithExtra("tokens", strconv.Itoa(lx.count)).End(detail)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(b []byte, suffixes []string) bool {
	s := string(b)
	for _, p := range suffixes {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}
