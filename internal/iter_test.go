package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(
		maps.All(map[string]int{"A": 1}),
		maps.All(map[string]int{}),
		maps.All(map[string]int{"B": 2}),
	)

	var keys []string
	for key := range seq {
		keys = append(keys, key)
	}
	assert.Equal([]string{"A", "B"}, keys)

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Sorted(IterSeq2Concat(
		maps.All(map[string]int{"C": 3, "A": 1}),
		maps.All(map[string]int{"B": 2, "A": 4}),
	))

	var keys []string
	var values []int
	for key, value := range seq {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]string{"A", "B", "C"}, keys)
	assert.Equal([]int{4, 2, 3}, values)
}
