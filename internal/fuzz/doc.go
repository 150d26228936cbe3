// Package fuzztests houses Go fuzz harnesses for the label pipeline
// (raw bytes -> FileSet -> lexer -> dialect detection). They guard against
// panics, broken token spans and mispositioned errors on arbitrary input.
package fuzztests
