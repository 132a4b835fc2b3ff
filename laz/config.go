package laz

import (
	"github.com/goslas/lasgo/compress"
	"github.com/goslas/lasgo/internal/options"
)

// Option configures a Facade.
type Option = options.Option[*Facade]

// WithAlgorithm selects the compress.Algorithm the pure-Go fallback
// transform uses when no external laszip binary is available. It has no
// effect once an external tool is in use, since that tool owns the wire
// format entirely.
func WithAlgorithm(a compress.Algorithm) Option {
	return options.NoError(func(f *Facade) {
		f.algorithm = a
	})
}

// WithToolPath pins the external binary Facade shells out to, bypassing
// the automatic laszip64/laszip PATH lookup. Pass "" to force the pure-Go
// fallback even when a real binary is installed (useful in tests).
func WithToolPath(path string) Option {
	return options.NoError(func(f *Facade) {
		f.toolPath = path
		f.toolPathSet = true
	})
}
