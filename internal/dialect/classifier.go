package dialect

import (
	"slices"

	"pvl/internal/grammar"
)

// Classification is the result of scoring evidence for a document.
type Classification struct {
	Dialect         grammar.Dialect
	Found           bool // false when no candidate has a positive score
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        grammar.Dialect
	RunnerUpScore   int
	ObservedSignals int
}

// Classifier scores evidence and chooses a dominant dialect among
// Candidates, or among all built-in dialects when Candidates is empty.
// Ties go to the candidate listed first.
type Classifier struct {
	Candidates []grammar.Dialect
}

func (c Classifier) Classify(e *Evidence) Classification {
	candidates := c.Candidates
	if len(candidates) == 0 {
		candidates = grammar.Dialects()
	}

	hints := e.Hints()
	scores := make(map[grammar.Dialect]int, len(candidates))
	total := 0
	for _, h := range hints {
		if !slices.Contains(candidates, h.Dialect) {
			continue
		}
		scores[h.Dialect] += h.Score
		if h.Score > 0 {
			total += h.Score
		}
	}

	res := Classification{ObservedSignals: len(hints)}
	bestScore, runnerScore := 0, 0
	haveRunner := false
	for _, d := range candidates {
		score := scores[d]
		if score <= 0 {
			continue
		}
		if !res.Found || score > bestScore {
			if res.Found {
				res.RunnerUp, runnerScore, haveRunner = res.Dialect, bestScore, true
			}
			res.Dialect, bestScore, res.Found = d, score, true
			continue
		}
		if !haveRunner || score > runnerScore {
			res.RunnerUp, runnerScore, haveRunner = d, score, true
		}
	}

	res.Score, res.RunnerUpScore, res.TotalScore = bestScore, runnerScore, total
	if total > 0 {
		res.Confidence = float64(bestScore) / float64(total)
	}
	return res
}
