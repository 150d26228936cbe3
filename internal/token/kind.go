package token

// Kind represents the lexical category of a token.
type Kind uint8

const (
	// Invalid indicates an empty or erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the document.
	EOF

	// Word is any run of non-reserved characters: parameter names,
	// keywords, unquoted strings, dates and times.
	Word
	// Reserved is a lone reserved character such as '=' or '{'.
	Reserved
	// Comment is a complete comment including its delimiters.
	Comment
	// Quoted is a quoted string including its quotes.
	Quoted
	// Numeric is a decimal or non-decimal number.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Word:
		return "Word"
	case Reserved:
		return "Reserved"
	case Comment:
		return "Comment"
	case Quoted:
		return "Quoted"
	case Numeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}
