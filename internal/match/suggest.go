package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the score below which a candidate is not suggested.
const MinSimilarity = 0.5

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates similar to name, best first. Ties
// keep the candidates' order.
func Suggest(name string, candidates []string, limit int) []string {
	var ranked []scored
	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int { return cmp.Compare(b.score, a.score) })

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
