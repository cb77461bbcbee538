package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRatio(t *testing.T) {
	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, PartialRatio("", "anything"))
		assert.Equal(t, 0.0, PartialRatio("anything", ""))
		assert.Equal(t, 0.0, PartialRatio("", ""))
	})

	t.Run("identical strings score 100", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("neural networks", "neural networks"))
	})

	t.Run("exact substring scores 100", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("cat", "concatenate"))
		assert.Equal(t, 100.0, PartialRatio("concatenate", "cat"))
	})

	t.Run("single edit within equal length", func(t *testing.T) {
		// one substitution over four runes: (1 - 1/4) * 100
		assert.InDelta(t, 75.0, PartialRatio("abcd", "abzd"), 0.001)
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.Equal(t, 0.0, PartialRatio("ABC", "abc"))
	})

	t.Run("best window wins", func(t *testing.T) {
		// "abc" aligns perfectly at the tail even though the head is noise
		assert.Equal(t, 100.0, PartialRatio("abc", "zzzzabc"))
	})

	t.Run("multibyte runes measured by rune count", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("ção", "sinalização"))
	})
}
