// Package diag defines the diagnostic model shared by the grammar loader,
// the lexer and dialect detection.
//
// Diagnostic is the central record: a Severity, a compact Code with a stable
// string form (LEX/CFG/DET prefixes), a short Message, the Primary span and
// optional Notes pointing at related spans.
//
// Producers emit through a Reporter so that emission stays decoupled from
// storage. BagReporter collects into a Bag, which supports sorting and
// deduplication; DedupReporter filters repeats before forwarding;
// MultiReporter fans out. ReportBuilder chains notes before Emit.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
