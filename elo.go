package rating

import "math"

const (
	DefaultEloRating = 1500
	DefaultEloK      = 32
)

// a rating difference of deviation points means 10 to 1 odds
const deviation = 400

// EloConfig holds the values new Elo ratings start from when no explicit
// value is given.
type EloConfig struct {
	DefaultRating float64
	DefaultK      float64
}

func DefaultEloConfig() EloConfig {
	return EloConfig{
		DefaultRating: DefaultEloRating,
		DefaultK:      DefaultEloK,
	}
}

// Reset restores the built-in defaults.
func (c *EloConfig) Reset() {
	*c = DefaultEloConfig()
}

type EloRating struct {
	Rating float64
	k      float64
}

// NewEloRating builds a rating from cfg, overridden by WithRating and WithK.
func NewEloRating(cfg EloConfig, opts ...Option) *EloRating {
	i := collect(opts)
	return &EloRating{
		Rating: valueOr(i.rating, cfg.DefaultRating),
		k:      valueOr(i.k, cfg.DefaultK),
	}
}

func (r *EloRating) K() float64 {
	return r.k
}

// Expected returns the score r is expected to take from a game against
// opponent, between 0 and 1.
func (r *EloRating) Expected(opponent EloRating) float64 {
	return 1 / (1 + math.Pow(10, (opponent.Rating-r.Rating)/deviation))
}

// HandleGameOutcome moves r towards the outcome it achieved against
// opponent. The opponent is left as it is.
func (r *EloRating) HandleGameOutcome(opponent EloRating, outcome Outcome) {
	// r + k * (S - E)
	r.Rating += r.k * (float64(outcome) - r.Expected(opponent))
}
