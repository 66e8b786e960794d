package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatches(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}

	t.Run("even split", func(t *testing.T) {
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches(paths, 2))
	})

	t.Run("larger than input", func(t *testing.T) {
		assert.Equal(t, [][]string{paths}, batches(paths, 10))
	})

	t.Run("non-positive size", func(t *testing.T) {
		assert.Equal(t, [][]string{paths}, batches(paths, 0))
	})
}
