// Package token defines the lexemes produced by the PVL lexer.
// Invariants:
//   - Token.Text is the exact lexeme; comments and quoted strings keep
//     their delimiters.
//   - Token.Span matches Text exactly (Start..End) when the token came from a
//     document; tokens built with New have a zero Span.
//   - Classification methods are pure functions of Text and Grammar. They
//     never panic, including on partial two-character probes.
//   - Keywords are matched with Unicode case folding.
package token
