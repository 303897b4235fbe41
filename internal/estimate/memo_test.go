package estimate

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_HitsOnEqualInput(t *testing.T) {
	var m Memo[Totals]
	calls := 0
	compute := func() (Totals, error) {
		calls++
		return Totals{Subtotal: 1}, nil
	}

	_, err := m.Get(oneScreen(3, 10, 1), compute)
	require.NoError(t, err)
	_, err = m.Get(oneScreen(3, 10, 1), compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = m.Get(oneScreen(4, 10, 1), compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestMemo_ErrorsAreNotCached(t *testing.T) {
	var m Memo[int]
	boom := errors.New("boom")
	_, err := m.Get("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, m.Changed("k"))

	v, err := m.Get("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.False(t, m.Changed("k"))

	m.Reset()
	assert.True(t, m.Changed("k"))
}

func TestMemo_ConcurrentUse(t *testing.T) {
	var m Memo[int]
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Get(i%2, func() (int, error) { return i % 2, nil })
		}(i)
	}
	wg.Wait()
	hits, misses := m.Stats()
	assert.Equal(t, 16, hits+misses)
}
