package pool

import "sync"

// float64Slices recycles the scratch buffers codec.go's assignUserFields
// decodes each record's user-column components into before they're copied
// into the dataset's row-major storage.
var float64Slices = sync.Pool{
	New: func() any { return new([]float64) },
}

// GetFloat64Slice returns a float64 slice of length size drawn from the
// pool, growing it if the pooled backing array is too small. Call the
// returned cleanup (typically via defer) to return it to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64Slices.Get().(*[]float64)

	s := (*ptr)[:0]
	if cap(s) < size {
		s = make([]float64, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() { float64Slices.Put(ptr) }
}
