package engine

import (
	"github.com/agnivade/levenshtein"
)

// PartialRatio scores how well the shorter of the two strings aligns inside
// the longer one, on a 0-100 scale. The shorter string (by rune count) is
// slid across every rune window of its own length in the longer string and
// each window is scored by edit distance; the best window wins. The
// convention is fixed: the shorter argument is always the one aligned, so the
// result is deterministic but not guaranteed symmetric under argument swap.
//
// Either input being empty yields 0.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	needle := string(short)
	m := len(short)

	best := 0.0
	for i := 0; i+m <= len(long); i++ {
		d := levenshtein.ComputeDistance(needle, string(long[i:i+m]))
		score := (1 - float64(d)/float64(m)) * 100
		if score > best {
			best = score
		}
		if best >= 100 {
			break
		}
	}
	return best
}
