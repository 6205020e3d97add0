package internal

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentOrder(t *testing.T) {
	const n = 50
	var order segmentOrder
	order.generate(n, newRand(DefaultConfig()))

	chosen := make([]int, 0, n)
	for i := 0; i < n; i++ {
		chosen = append(chosen, order.choose())
	}
	sort.Ints(chosen)
	for i, id := range chosen {
		assert.Equal(t, i+1, id, "every segment is chosen exactly once")
	}

	t.Run("same seed gives the same order", func(t *testing.T) {
		var a, b segmentOrder
		config := DefaultConfig()
		config.Seed = 42
		a.generate(n, newRand(config))
		b.generate(n, newRand(config))
		assert.Equal(t, a.permutation, b.permutation)
	})

	t.Run("choosing past the end is fatal", func(t *testing.T) {
		err := func() (err error) {
			defer func() { err = HandleTriangulatePanicRecover(recover()) }()
			order.choose()
			return nil
		}()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvariant))
	})
}
