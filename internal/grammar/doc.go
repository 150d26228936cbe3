// Package grammar describes the lexical rules of the PVL family of label
// languages: strict PVL, PDS3 ODL and the permissive Omni superset.
//
// A Grammar is a plain configuration value. New builds a fully populated,
// independent value for a dialect; nothing in this package keeps shared
// mutable state, so several dialects can be lexed side by side.
//
// Keywords are compared with Unicode case folding by the token package;
// the tables here store the canonical upper-case spellings.
package grammar
