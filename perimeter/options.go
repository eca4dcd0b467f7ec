package perimeter

// DefaultJoinMaxDistanceFactor bounds loop join connectors, relative to the
// perimeter width.
const DefaultJoinMaxDistanceFactor = 1.42

type options struct {
	joinMaxDistanceFactor float64
	tieFraction           float64
}

func defaultOptions() options {
	return options{
		joinMaxDistanceFactor: DefaultJoinMaxDistanceFactor,
		tieFraction:           1.0 / 20,
	}
}

// Option configures a Generator.
type Option func(*options)

// WithJoinMaxDistanceFactor sets the longest connector allowed between two
// joined loops, as a multiple of the perimeter width.
func WithJoinMaxDistanceFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.joinMaxDistanceFactor = f
		}
	}
}

// WithJoinTieFraction sets the fraction of the perimeter width within which
// two cut candidates are considered equally short.
func WithJoinTieFraction(f float64) Option {
	return func(o *options) {
		if f >= 0 {
			o.tieFraction = f
		}
	}
}
