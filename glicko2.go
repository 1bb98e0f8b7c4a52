package rating

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const DefaultVolatility = 0.06

const (
	// glicko2Scale converts between the conventional scale and the one the
	// Glicko-2 steps work on.
	glicko2Scale  = 173.7178
	glicko2Center = 1500

	// tau limits how far the volatility can move in one update.
	tau     = 0.5
	epsilon = 0.000001

	maxIterations = 100
)

// ConvergenceError is returned when the volatility search gives up before the
// bracket narrows to within tolerance. The rating it was computed for is left
// unchanged.
type ConvergenceError struct {
	Iterations int
	// A and B are the ends of the bracket, in ln(σ²), when the search stopped.
	A, B float64
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("volatility did not converge after %d iterations (A=%g, B=%g)", e.Iterations, e.A, e.B)
}

// Glicko2Rating is a Glicko-2 rating. The state is held on the Glicko-2 scale:
//   - mu: the rating
//   - phi: the rating deviation
//   - sigma: the volatility, how erratic the player's results are
//
// Rating and RD convert back to the conventional 1500-based scale.
type Glicko2Rating struct {
	mu    float64
	phi   float64
	sigma float64
	// limit bounds the volatility search; zero means maxIterations.
	limit int
}

// NewGlicko2Rating starts at 1500, a deviation of 350 and a volatility of 0.06
// unless WithRating, WithRD or WithVolatility say otherwise. WithMaxIterations
// lowers or raises the bound on the volatility search.
func NewGlicko2Rating(opts ...Option) *Glicko2Rating {
	i := collect(opts)
	mu, phi := toGlicko2Scale(valueOr(i.rating, DefaultRating), valueOr(i.rd, DefaultRD))
	r := &Glicko2Rating{
		mu:    mu,
		phi:   phi,
		sigma: valueOr(i.volatility, DefaultVolatility),
	}
	if i.iterations != nil {
		r.limit = *i.iterations
	}

	return r
}

func toGlicko2Scale(rating, rd float64) (mu, phi float64) {
	return (rating - glicko2Center) / glicko2Scale, rd / glicko2Scale
}

func fromGlicko2Scale(mu, phi float64) (rating, rd float64) {
	return mu*glicko2Scale + glicko2Center, phi * glicko2Scale
}

func (r *Glicko2Rating) Rating() float64 {
	rating, _ := fromGlicko2Scale(r.mu, r.phi)
	return rating
}

func (r *Glicko2Rating) RD() float64 {
	_, rd := fromGlicko2Scale(r.mu, r.phi)
	return rd
}

func (r *Glicko2Rating) Volatility() float64 {
	return r.sigma
}

// Expected returns the score r is expected to take from opponent.
func (r *Glicko2Rating) Expected(opponent Glicko2Rating) float64 {
	return glicko2E(r.mu, opponent.mu, opponent.phi)
}

// HandleGameOutcome updates the rating, deviation and volatility of r after
// outcome against opponent. The opponent is left as it is.
//
// Non-finite inputs give non-finite results. The only error is a wrapped
// ConvergenceError, in which case r is not modified.
func (r *Glicko2Rating) HandleGameOutcome(opponent Glicko2Rating, outcome Outcome) error {
	next, err := r.ratingPeriod([]glicko2Game{{
		mu:    opponent.mu,
		phi:   opponent.phi,
		score: float64(outcome),
	}})
	if err != nil {
		return errors.Wrap(err, "unable to update glicko-2 rating")
	}

	*r = next
	return nil
}

// glicko2Game is one opponent, already on the Glicko-2 scale, and the score
// taken against them.
type glicko2Game struct {
	mu    float64
	phi   float64
	score float64
}

// ratingPeriod runs the Glicko-2 steps for the games of one rating period and
// returns the new state without touching r.
func (r Glicko2Rating) ratingPeriod(games []glicko2Game) (Glicko2Rating, error) {
	v := r.variance(games)
	delta := v * r.improvement(games)

	sigma, _, err := solveVolatility(r.phi, r.sigma, delta, v, r.iterationLimit())
	if err != nil {
		return r, err
	}

	// the deviation grows over the period before the games are counted
	phiStar := math.Sqrt(pow2(r.phi) + pow2(sigma))
	phi := 1 / math.Sqrt(1/pow2(phiStar)+1/v)

	return Glicko2Rating{
		mu:    r.mu + pow2(phi)*r.improvement(games),
		phi:   phi,
		sigma: sigma,
		limit: r.limit,
	}, nil
}

func (r Glicko2Rating) iterationLimit() int {
	if r.limit <= 0 {
		return maxIterations
	}

	return r.limit
}

// variance is the estimated variance of the rating based only on the game
// outcomes (v).
func (r Glicko2Rating) variance(games []glicko2Game) float64 {
	sum := 0.0
	for _, game := range games {
		e := glicko2E(r.mu, game.mu, game.phi)
		sum += pow2(glicko2G(game.phi)) * e * (1 - e)
	}

	return 1 / sum
}

// improvement is Σ g(φj)(sj - Ej). Multiplied by v it gives delta.
func (r Glicko2Rating) improvement(games []glicko2Game) float64 {
	sum := 0.0
	for _, game := range games {
		sum += glicko2G(game.phi) * (game.score - glicko2E(r.mu, game.mu, game.phi))
	}

	return sum
}

// solveVolatility finds the new volatility with the Illinois variant of
// regula falsi. Both the bracketing search and the main loop stop after limit
// steps with a ConvergenceError. The number of regula falsi steps taken is
// returned alongside the result.
func solveVolatility(phi, sigma, delta, v float64, limit int) (float64, int, error) {
	a := math.Log(pow2(sigma))
	f := func(x float64) float64 {
		ex := math.Exp(x)
		return ex*(pow2(delta)-pow2(phi)-v-ex)/(2*pow2(pow2(phi)+v+ex)) - (x-a)/pow2(tau)
	}

	A := a
	var B float64
	if pow2(delta) > pow2(phi)+v {
		B = math.Log(pow2(delta) - pow2(phi) - v)
	} else {
		k := 1
		for f(a-float64(k)*tau) < 0 {
			if k == limit {
				return 0, 0, ConvergenceError{Iterations: k, A: A, B: a - float64(k)*tau}
			}
			k++
		}
		B = a - float64(k)*tau
	}

	fA, fB := f(A), f(B)
	n := 0
	for math.Abs(B-A) > epsilon {
		if n == limit {
			return 0, n, ConvergenceError{Iterations: n, A: A, B: B}
		}

		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if fC*fB < 0 {
			A, fA = B, fB
		} else {
			fA /= 2
		}
		B, fB = C, fC
		n++
	}

	return math.Exp(A / 2), n, nil
}

func glicko2G(phi float64) float64 {
	return 1 / math.Sqrt(1+3*pow2(phi)/pow2(math.Pi))
}

func glicko2E(mu, muj, phij float64) float64 {
	return 1 / (1 + math.Exp(-glicko2G(phij)*(mu-muj)))
}

func pow2(x float64) float64 { return x * x }
