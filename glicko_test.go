package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGlickoRating(t *testing.T) {
	r := NewGlickoRating()
	assert.Equal(t, 1500.0, r.Rating())
	assert.Equal(t, 350.0, r.RD())

	r = NewGlickoRating(WithRating(1700), WithRD(0))
	assert.Equal(t, 1700.0, r.Rating())
	assert.Equal(t, 0.0, r.RD())
}

func TestGlickoG(t *testing.T) {
	assert.Equal(t, 1.0, glickoG(0))
	assert.InDelta(t, 0.6690694, glickoG(350), 1e-6)
	assert.Less(t, glickoG(350), glickoG(30))
}

func TestGlickoHandleGameOutcome(t *testing.T) {
	tests := []struct {
		name    string
		r, rd   float64
		m, mrd  float64
		outcome Outcome
		rating  float64
		newRD   float64
	}{{
		"win against an equal",
		1500, 350,
		1500, 350,
		Win,
		1662.2120026057648, 290.2305060910912,
	}, {
		"draw against an equal",
		1500, 350,
		1500, 350,
		Draw,
		1500, 290.2305060910912,
	}, {
		"loss against an equal",
		1500, 350,
		1500, 350,
		Loss,
		1337.7879973942352, 290.2305060910912,
	}, {
		"win against a settled opponent",
		1500, 200,
		1500, 30,
		Win,
		1586.2779725846053, 173.526943624196,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewGlickoRating(WithRating(test.r), WithRD(test.rd))
			m := NewGlickoRating(WithRating(test.m), WithRD(test.mrd))
			r.HandleGameOutcome(*m, test.outcome)

			assert.InDelta(t, test.rating, r.Rating(), 1e-6)
			assert.InDelta(t, test.newRD, r.RD(), 1e-6)
			assert.Less(t, r.RD(), test.rd)

			assert.Equal(t, test.m, m.Rating())
			assert.Equal(t, test.mrd, m.RD())
		})
	}
}

func TestGlickoSmallerGainAgainstWeakerOpponent(t *testing.T) {
	weaker := NewGlickoRating(WithRating(1500.5))
	weaker.HandleGameOutcome(*NewGlickoRating(), Win)

	equal := NewGlickoRating()
	equal.HandleGameOutcome(*NewGlickoRating(), Win)

	assert.Less(t, weaker.Rating()-1500.5, equal.Rating()-1500)
}

func TestGlickoZeroRD(t *testing.T) {
	r := NewGlickoRating(WithRD(0))
	r.HandleGameOutcome(*NewGlickoRating(), Win)

	// 1/rd² is infinite, so the game carries no weight
	assert.Equal(t, 1500.0, r.Rating())
	assert.Equal(t, 0.0, r.RD())
	assert.False(t, math.IsNaN(r.Rating()))
}

func TestGlickoNotIdempotent(t *testing.T) {
	r := NewGlickoRating()
	m := NewGlickoRating()

	r.HandleGameOutcome(*m, Draw)
	rd := r.RD()
	r.HandleGameOutcome(*m, Draw)

	assert.Equal(t, 1500.0, r.Rating())
	assert.Less(t, r.RD(), rd)
}

func TestGlickoSaturatedExpectation(t *testing.T) {
	r := NewGlickoRating(WithRating(1662.2120026057648), WithRD(290.2305060910912))
	r.HandleGameOutcome(*NewGlickoRating(), Win)

	// without q in the exponent a gap this wide makes the win certain
	assert.Equal(t, 1.0, NewGlickoRating(WithRating(1662.2120026057648)).Expected(*NewGlickoRating()))
	assert.Equal(t, 1662.2120026057648, r.Rating())
	assert.InDelta(t, 290.2305060910912, r.RD(), 1e-9)
}
