package rating

import "math"

const (
	DefaultRating = 1500
	DefaultRD     = 350
)

// q converts a rating difference into natural-log odds.
var q = math.Ln10 / 400

// GlickoRating is a Glicko (version 1) rating: a strength estimate plus the
// rating deviation, the uncertainty around it.
type GlickoRating struct {
	rating float64
	rd     float64
}

// NewGlickoRating starts at 1500 with a deviation of 350 unless WithRating or
// WithRD say otherwise.
func NewGlickoRating(opts ...Option) *GlickoRating {
	i := collect(opts)
	return &GlickoRating{
		rating: valueOr(i.rating, DefaultRating),
		rd:     valueOr(i.rd, DefaultRD),
	}
}

func (r *GlickoRating) Rating() float64 { return r.rating }
func (r *GlickoRating) RD() float64     { return r.rd }

// Expected returns the score r is expected to take from opponent.
//
// The exponent is the raw rating difference weighted by g; it does not carry
// the q factor of the published formula.
func (r *GlickoRating) Expected(opponent GlickoRating) float64 {
	return 1 / (1 + math.Exp(-glickoG(opponent.rd)*(r.rating-opponent.rating)))
}

// HandleGameOutcome replaces both the rating and the deviation of r with
// the values after outcome against opponent. Nothing is guarded: a zero
// deviation on r divides by zero, which freezes the rating in place.
func (r *GlickoRating) HandleGameOutcome(opponent GlickoRating, outcome Outcome) {
	g := glickoG(opponent.rd)
	e := r.Expected(opponent)
	d2 := 1 / (q * q * g * g * e * (1 - e))

	precision := 1/(r.rd*r.rd) + 1/d2

	r.rating, r.rd = r.rating+q/precision*g*(float64(outcome)-e), math.Sqrt(1/precision)
}

// glickoG shrinks the weight of a game against an opponent whose own rating
// is uncertain.
func glickoG(rd float64) float64 {
	return 1 / math.Sqrt(1+3*q*q*rd*rd/(math.Pi*math.Pi))
}
