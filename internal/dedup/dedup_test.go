package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortLinePassesThrough(t *testing.T) {
	out := Lines([]string{"a b"})
	assert.Equal(t, []string{"a b"}, out)
}

func TestRepeatedTrigramCollapsed(t *testing.T) {
	out := Lines([]string{
		"the quick brown fox jumps",
		"the quick brown dog sleeps",
	})
	assert.Equal(t, "the quick brown fox jumps", out[0])
	assert.Equal(t, ".. dog sleeps", out[1])
}

func TestConsecutiveRepeatsCoalesceIntoOneMarker(t *testing.T) {
	out := Lines([]string{
		"a b c d e f",
		"a b c d e f",
	})
	assert.Equal(t, "a b c d e f", out[0])
	assert.Equal(t, "..", out[1])
}

func TestNoRepeatsUnchanged(t *testing.T) {
	out := Lines([]string{"one two three", "four five six"})
	assert.Equal(t, []string{"one two three", "four five six"}, out)
}
