package rating

// Option sets an initial value on a rating under construction. A value that
// is never set falls back to the engine default, so an explicit zero is
// honoured rather than treated as missing.
//
// Engines ignore options that do not apply to them: Elo has no deviation and
// Glicko has no volatility.
type Option func(*initial)

type initial struct {
	rating     *float64
	rd         *float64
	volatility *float64
	k          *float64
	iterations *int
}

func WithRating(r float64) Option {
	return func(i *initial) { i.rating = &r }
}

// WithRD sets the rating deviation on the conventional scale.
func WithRD(rd float64) Option {
	return func(i *initial) { i.rd = &rd }
}

func WithVolatility(vol float64) Option {
	return func(i *initial) { i.volatility = &vol }
}

// WithK sets the Elo update sensitivity.
func WithK(k float64) Option {
	return func(i *initial) { i.k = &k }
}

// WithMaxIterations bounds each loop of the Glicko-2 volatility search.
func WithMaxIterations(n int) Option {
	return func(i *initial) { i.iterations = &n }
}

func collect(opts []Option) initial {
	var i initial
	for _, opt := range opts {
		opt(&i)
	}

	return i
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}

	return *v
}
