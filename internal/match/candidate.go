package match

import (
	"cmp"
	"slices"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultAmbiguityThreshold is the score gap under which two names tie.
	DefaultAmbiguityThreshold = 0.05
)

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name string
	// Score is NameSimilarity of the two names.
	Score float64
	// Distance is the raw edit distance, used as the tie breaker.
	Distance int
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// RankNames scores every name in known against target.
func RankNames(target string, known []string) CandidateList {
	out := make(CandidateList, 0, len(known))
	for _, name := range known {
		out = append(out, Candidate{
			Name:     name,
			Score:    NameSimilarity(target, name),
			Distance: Levenshtein(target, name),
		})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Best returns the first candidate, or nil.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold keeps the candidates scoring at least minScore.
func (c CandidateList) AboveThreshold(minScore float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= minScore {
			out = append(out, cand)
		}
	}

	return out
}

// IsAmbiguous reports whether the two best candidates are within threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// Suggest returns the known name most similar to target, if any is close
// enough. Exact matches are not suggestions, and two names scoring within
// DefaultAmbiguityThreshold of each other give no suggestion.
func Suggest(target string, known []string) (string, bool) {
	names := make([]string, 0, len(known))
	for _, name := range known {
		if name != target && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	ranked := RankNames(target, names).AboveThreshold(DefaultMinScore)
	if ranked.IsAmbiguous(DefaultAmbiguityThreshold) {
		return "", false
	}

	if best := ranked.Best(); best != nil {
		return best.Name, true
	}

	return "", false
}
