package dialect

import (
	"strings"

	"pvl/internal/diag"
	"pvl/internal/grammar"
	"pvl/internal/source"
)

type keywordSignal struct {
	Dialect grammar.Dialect
	Score   int
	Reason  string
}

// ODL spells aggregations GROUP/OBJECT; the BEGIN_ forms come from PVL and
// are tolerated by the permissive grammar.
var keywordSignals = map[string][]keywordSignal{
	"BEGIN_GROUP": {
		{Dialect: grammar.PVL, Score: 3, Reason: "PVL keyword `BEGIN_GROUP`"},
		{Dialect: grammar.Omni, Score: 1, Reason: "PVL keyword `BEGIN_GROUP`"},
	},
	"BEGIN_OBJECT": {
		{Dialect: grammar.PVL, Score: 3, Reason: "PVL keyword `BEGIN_OBJECT`"},
		{Dialect: grammar.Omni, Score: 1, Reason: "PVL keyword `BEGIN_OBJECT`"},
	},
}

// RecordWord collects keyword evidence for an unquoted word. Keywords are
// matched case-insensitively.
func RecordWord(e *Evidence, word string, span source.Span) {
	if e == nil || word == "" {
		return
	}
	for _, sig := range keywordSignals[strings.ToUpper(word)] {
		e.Add(Hint{
			Dialect: sig.Dialect,
			Score:   sig.Score,
			Code:    diag.DetBeginAggregation,
			Reason:  sig.Reason,
			Span:    span,
		})
	}
}
