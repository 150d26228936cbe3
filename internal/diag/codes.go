package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexCharNotAllowed      Code = 1001
	LexUnterminatedQuote   Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadToken            Code = 1004

	// Grammar configuration
	CfgInfo                Code = 2000
	CfgNoComments          Code = 2001
	CfgUnsupportedComment  Code = 2002
	CfgBadPattern          Code = 2003
	CfgUnclosedAggregation Code = 2004
	CfgUnknownKey          Code = 2005
	CfgUnknownDialect      Code = 2006

	// Dialect detection hints
	DetInfo             Code = 3000
	DetHashComment      Code = 3001
	DetNonASCII         Code = 3002
	DetLeapSecond       Code = 3003
	DetWideRadix        Code = 3004
	DetInnerSign        Code = 3005
	DetBeginAggregation Code = 3006
	DetLexFailed        Code = 3007
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexCharNotAllowed:      "Character not allowed by the grammar",
	LexUnterminatedQuote:   "Unterminated quoted string",
	LexUnterminatedComment: "Unterminated comment",
	LexBadToken:            "Malformed token",
	CfgInfo:                "Grammar configuration information",
	CfgNoComments:          "Grammar has no comment delimiters",
	CfgUnsupportedComment:  "Unsupported multi-character comment pair",
	CfgBadPattern:          "Malformed pattern template",
	CfgUnclosedAggregation: "Aggregation keyword without closing keyword",
	CfgUnknownKey:          "Unknown configuration key",
	CfgUnknownDialect:      "Unknown dialect",
	DetInfo:                "Dialect detection information",
	DetHashComment:         "'#' comment suggests Omni",
	DetNonASCII:            "Non-ASCII character rules out ODL",
	DetLeapSecond:          "Leap second is illegal in ODL",
	DetWideRadix:           "Radix outside 2, 8 and 16",
	DetInnerSign:           "Sign after the radix marker",
	DetBeginAggregation:    "BEGIN_ aggregation keyword",
	DetLexFailed:           "Document does not lex under dialect",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DET%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
