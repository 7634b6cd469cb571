package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a name to be suggested.
const DefaultThreshold = 0.5

// Candidate is a recognized name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by descending score, then by name.
type CandidateList []Candidate

// Rank scores every candidate against name. Scoring is case-insensitive so
// that "Path" still points at "path".
func Rank(name string, candidates []string) CandidateList {
	list := make(CandidateList, 0, len(candidates))
	lower := strings.ToLower(name)

	for _, c := range candidates {
		list = append(list, Candidate{
			Name:  c,
			Score: Similarity(lower, strings.ToLower(c)),
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}

		return list[i].Name < list[j].Name
	})

	return list
}

// Best returns the highest-scoring candidate, or nil for an empty list.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// Suggest returns the closest candidate whose score reaches DefaultThreshold.
func Suggest(name string, candidates []string) (string, bool) {
	best := Rank(name, candidates).Best()
	if best == nil || best.Score < DefaultThreshold {
		return "", false
	}

	return best.Name, true
}
