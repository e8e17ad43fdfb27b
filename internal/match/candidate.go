package match

import (
	"sort"

	"screenruler/unit"
)

// MinScore is the similarity a candidate needs to be suggested.
const MinScore = 0.5

// Name is a known unit together with its human-readable label.
type Name struct {
	Unit  unit.Unit
	Label string
}

// Candidate is a known unit scored against an input.
type Candidate struct {
	Unit unit.Unit

	// Score is the best similarity of the input to the token or the label (0-1).
	Score float64

	// order is the position in the known list; it breaks ties.
	order int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every known unit against input.
// Returns candidates sorted by score (descending), then by known order.
func Rank(input string, known []Name) CandidateList {
	norm := Normalize(input)

	candidates := make(CandidateList, 0, len(known))
	for i, n := range known {
		score := Similarity(norm, Normalize(string(n.Unit)))
		if n.Label != "" {
			score = max(score, Similarity(norm, Normalize(n.Label)))
		}

		candidates = append(candidates, Candidate{Unit: n.Unit, Score: score, order: i})
	}

	sort.Sort(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].order < c[j].order
}

// Top returns at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var res CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			res = append(res, cand)
		}
	}

	return res
}

// Units returns the units of the candidates in ranking order.
func (c CandidateList) Units() []unit.Unit {
	res := make([]unit.Unit, len(c))
	for i, cand := range c {
		res[i] = cand.Unit
	}

	return res
}

// Suggest returns up to n known units that input plausibly meant, best
// first. An exact token match is never suggested.
func Suggest(input string, known []Name, n int) []unit.Unit {
	var res []unit.Unit

	for _, u := range Rank(input, known).AboveThreshold(MinScore).Top(n).Units() {
		if string(u) != input {
			res = append(res, u)
		}
	}

	return res
}
