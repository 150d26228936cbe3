// Package dialect guesses which PVL dialect a label was written in.
//
// Detection lexes the document under every candidate grammar and collects
// evidence from the token stream. Neither step changes how a label is
// lexed later; the result is advisory.
package dialect
