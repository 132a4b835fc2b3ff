package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	t.Run("length matches request", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("reuses the backing array once returned", func(t *testing.T) {
		first, cleanup := GetFloat64Slice(50)
		addr := &first[0]
		cleanup()

		second, cleanup2 := GetFloat64Slice(50)
		defer cleanup2()

		require.Equal(t, addr, &second[0])
	})

	t.Run("grows past a too-small pooled backing array", func(t *testing.T) {
		_, cleanup := GetFloat64Slice(10)
		cleanup()

		slice, cleanup2 := GetFloat64Slice(1000)
		defer cleanup2()

		require.Len(t, slice, 1000)
		require.GreaterOrEqual(t, cap(slice), 1000)
	})

	t.Run("cleanup is idempotent enough to call once per checkout", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(100)
		require.NotNil(t, slice)
		cleanup()
	})
}

func TestGetFloat64SliceConcurrent(t *testing.T) {
	const goroutines = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			slice, cleanup := GetFloat64Slice(50)
			defer cleanup()

			for j := range slice {
				slice[j] = float64(j)
			}
		}()
	}

	wg.Wait()
}
