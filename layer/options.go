package layer

import (
	"github.com/gogpu/toolpath/overhang"
	"github.com/gogpu/toolpath/perimeter"
)

type options struct {
	workers   int
	perimeter []perimeter.Option
	overhang  []overhang.Option
}

// Option configures Process.
type Option func(*options)

// WithWorkers sets the number of layers processed at once. Zero or less
// uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithPerimeterOptions passes options to every perimeter generator.
func WithPerimeterOptions(opts ...perimeter.Option) Option {
	return func(o *options) { o.perimeter = append(o.perimeter, opts...) }
}

// WithOverhangOptions passes options to every overhang processor.
func WithOverhangOptions(opts ...overhang.Option) Option {
	return func(o *options) { o.overhang = append(o.overhang, opts...) }
}
