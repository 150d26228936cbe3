package grammar

import (
	"maps"
	"slices"
	"strings"
)

// CommentPair is an open/close delimiter pair. Both sides are either a
// single character or the multi-character "/*" "*/" pair.
type CommentPair struct {
	Open  string
	Close string
}

// IsSingleChar reports whether the pair opens with a single character.
func (p CommentPair) IsSingleChar() bool {
	return len([]rune(p.Open)) == 1
}

// BlockComment is the only multi-character pair the lexer understands.
var BlockComment = CommentPair{Open: "/*", Close: "*/"}

// HashComment is the '#' to end-of-line comment used by Omni.
var HashComment = CommentPair{Open: "#", Close: "\n"}

// Grammar holds the lexical rules of one dialect. Values are built by New
// and are safe for concurrent readers; callers that customise a grammar
// should Clone it first.
type Grammar struct {
	Dialect Dialect

	// Character classes. Each string is a set of single characters.
	Whitespace         string
	ReservedCharacters string
	NumericStartChars  string
	Delimiters         string
	Quotes             string
	SetDelimiters      [2]string
	SequenceDelimiters [2]string
	UnitsDelimiters    [2]string

	Comments []CommentPair

	// Keywords are stored upper case and compared with case folding.
	NoneKeyword         string
	TrueKeyword         string
	FalseKeyword        string
	GroupPrefKeywords   [2]string
	ObjectPrefKeywords  [2]string
	GroupKeywords       map[string]string
	ObjectKeywords      map[string]string
	AggregationKeywords map[string]string
	EndStatements       []string
	ReservedKeywords    map[string]struct{}

	Numeric NumericPatterns

	DateLayouts     []string
	TimeLayouts     []string
	DateTimeLayouts []string

	// LeapSecondYmd and LeapSecondYj are nil when the dialect forbids a
	// seconds field of 60.
	LeapSecondYmd *Pattern
	LeapSecondYj  *Pattern

	Charset Charset
}

// New returns a freshly built grammar for d. Unknown dialects yield PVL.
func New(d Dialect) *Grammar {
	g := newBase()
	switch d {
	case ODL:
		applyODL(g)
	case Omni:
		applyOmni(g)
	}
	return g
}

func newBase() *Grammar {
	g := &Grammar{
		Dialect:            PVL,
		Whitespace:         " \t\n\r\v\f",
		ReservedCharacters: "&<>'{},[]=!#()%+\";~|",
		// '-' is not reserved, keeping it here costs nothing.
		NumericStartChars:  "+-",
		Delimiters:         ";",
		Quotes:             "\"'",
		SetDelimiters:      [2]string{"{", "}"},
		SequenceDelimiters: [2]string{"(", ")"},
		UnitsDelimiters:    [2]string{"<", ">"},
		Comments:           []CommentPair{BlockComment},
		NoneKeyword:        "NULL",
		TrueKeyword:        "TRUE",
		FalseKeyword:       "FALSE",
		GroupPrefKeywords:  [2]string{"BEGIN_GROUP", "END_GROUP"},
		ObjectPrefKeywords: [2]string{"BEGIN_OBJECT", "END_OBJECT"},
		GroupKeywords: map[string]string{
			"GROUP":       "END_GROUP",
			"BEGIN_GROUP": "END_GROUP",
		},
		ObjectKeywords: map[string]string{
			"OBJECT":       "END_OBJECT",
			"BEGIN_OBJECT": "END_OBJECT",
		},
		EndStatements:   []string{"END"},
		Numeric:         pvlNumeric(),
		DateLayouts:     withUTC(baseDateLayouts),
		TimeLayouts:     withUTC(baseTimeLayouts),
		DateTimeLayouts: dateTimeLayouts(),
		Charset:         CharsetLatin1,
	}
	g.LeapSecondYmd, g.LeapSecondYj = leapSecondPatterns()
	g.rebuildKeywords()
	return g
}

func applyODL(g *Grammar) {
	g.Dialect = ODL
	g.GroupPrefKeywords = [2]string{"GROUP", "END_GROUP"}
	g.ObjectPrefKeywords = [2]string{"OBJECT", "END_OBJECT"}
	g.LeapSecondYmd = nil
	g.LeapSecondYj = nil
	g.Numeric = odlNumeric()
	g.Charset = CharsetASCII
}

func applyOmni(g *Grammar) {
	g.Dialect = Omni
	g.Comments = []CommentPair{BlockComment, HashComment}
	g.Numeric = omniNumeric()
}

// rebuildKeywords recomputes the derived keyword tables.
func (g *Grammar) rebuildKeywords() {
	g.AggregationKeywords = make(map[string]string, len(g.GroupKeywords)+len(g.ObjectKeywords))
	maps.Copy(g.AggregationKeywords, g.GroupKeywords)
	maps.Copy(g.AggregationKeywords, g.ObjectKeywords)

	g.ReservedKeywords = make(map[string]struct{})
	for _, kw := range g.EndStatements {
		g.ReservedKeywords[kw] = struct{}{}
	}
	for open, closing := range g.AggregationKeywords {
		g.ReservedKeywords[open] = struct{}{}
		g.ReservedKeywords[closing] = struct{}{}
	}
}

// Clone returns a deep copy. Patterns are shared: they are immutable.
func (g *Grammar) Clone() *Grammar {
	c := *g
	c.Comments = slices.Clone(g.Comments)
	c.GroupKeywords = maps.Clone(g.GroupKeywords)
	c.ObjectKeywords = maps.Clone(g.ObjectKeywords)
	c.AggregationKeywords = maps.Clone(g.AggregationKeywords)
	c.EndStatements = slices.Clone(g.EndStatements)
	c.ReservedKeywords = maps.Clone(g.ReservedKeywords)
	c.DateLayouts = slices.Clone(g.DateLayouts)
	c.TimeLayouts = slices.Clone(g.TimeLayouts)
	c.DateTimeLayouts = slices.Clone(g.DateTimeLayouts)
	return &c
}

// IsWhitespace reports whether r separates tokens.
func (g *Grammar) IsWhitespace(r rune) bool {
	return strings.ContainsRune(g.Whitespace, r)
}

// IsReserved reports whether r always delimits a token.
func (g *Grammar) IsReserved(r rune) bool {
	return strings.ContainsRune(g.ReservedCharacters, r)
}

// IsNumericStart reports whether r may begin a numeric literal.
func (g *Grammar) IsNumericStart(r rune) bool {
	return strings.ContainsRune(g.NumericStartChars, r)
}

// IsQuote reports whether r opens or closes a quoted string.
func (g *Grammar) IsQuote(r rune) bool {
	return strings.ContainsRune(g.Quotes, r)
}

// IsDelimiter reports whether r terminates a statement.
func (g *Grammar) IsDelimiter(r rune) bool {
	return strings.ContainsRune(g.Delimiters, r)
}

// LeapSecondsAllowed reports whether the dialect accepts a seconds field of 60.
func (g *Grammar) LeapSecondsAllowed() bool {
	return g.LeapSecondYmd != nil || g.LeapSecondYj != nil
}

// MatchLeapSecond reports whether s is a time or date-time with 60 seconds
// that the dialect accepts.
func (g *Grammar) MatchLeapSecond(s string) bool {
	return g.LeapSecondYmd.Match(s) || g.LeapSecondYj.Match(s)
}

// CommentOpeners returns the open delimiter of every comment pair.
func (g *Grammar) CommentOpeners() []string {
	out := make([]string, len(g.Comments))
	for i, p := range g.Comments {
		out[i] = p.Open
	}
	return out
}

// CommentClosers returns the close delimiter of every comment pair.
func (g *Grammar) CommentClosers() []string {
	out := make([]string, len(g.Comments))
	for i, p := range g.Comments {
		out[i] = p.Close
	}
	return out
}
