package engine

import "strings"

// TagSimilarity is the Jaccard index of the two label sets scaled to 0-100.
// Labels are compared case-insensitively. Either set being empty yields 0.
func TagSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := lowerSet(a)
	setB := lowerSet(b)

	intersection := 0
	union := len(setB)
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		} else {
			union++
		}
	}

	// Unreachable once the empty checks above ran, but guard anyway.
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union) * 100
}

func lowerSet(tags []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		out[strings.ToLower(t)] = struct{}{}
	}
	return out
}
