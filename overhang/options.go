package overhang

// Defaults for the run partitioning tolerances.
const (
	// DefaultDistanceTolerance is the fraction of the nozzle diameter by
	// which the overhang distance may drift before a new path starts.
	DefaultDistanceTolerance = 0.01
	// DefaultCurlTolerance is the change in curled line proximity that
	// starts a new path.
	DefaultCurlTolerance = 0.001
	// DefaultCurlRadiusFactor is the search radius for curled lines, in
	// extrusion widths.
	DefaultCurlRadiusFactor = 10.0
)

const (
	// Segments longer than this (mm) only react to curled lines covering
	// bandAcceptance of their length.
	longSegment    = 8.0
	bandAcceptance = 0.4
	// Segments this long (mm) near the boundary get extra samples.
	refineLength = 4.0
	// Distance (mm) beyond the offset boundary within which segments are
	// refined.
	refineReach = 2.0
	// Curl heights are relative to this many layer heights.
	curlHeightFactor = 10.0
	crossEpsilon     = 1e-4
)

type options struct {
	distanceTolerance float64
	curlTolerance     float64
	curlRadiusFactor  float64
}

func defaultOptions() options {
	return options{
		distanceTolerance: DefaultDistanceTolerance,
		curlTolerance:     DefaultCurlTolerance,
		curlRadiusFactor:  DefaultCurlRadiusFactor,
	}
}

// Option configures a Processor.
type Option func(*options)

// WithDistanceTolerance sets the distance tolerance as a fraction of the
// nozzle diameter.
func WithDistanceTolerance(f float64) Option {
	return func(o *options) {
		if f >= 0 {
			o.distanceTolerance = f
		}
	}
}

// WithCurlTolerance sets the curled line proximity tolerance.
func WithCurlTolerance(t float64) Option {
	return func(o *options) {
		if t >= 0 {
			o.curlTolerance = t
		}
	}
}

// WithCurlRadiusFactor sets the curled line search radius in extrusion
// widths.
func WithCurlRadiusFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.curlRadiusFactor = f
		}
	}
}
