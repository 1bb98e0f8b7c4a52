package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloConfigReset(t *testing.T) {
	cfg := EloConfig{DefaultRating: 1200, DefaultK: 16}
	cfg.Reset()

	assert.Equal(t, DefaultEloConfig(), cfg)
	assert.Equal(t, 1500.0, cfg.DefaultRating)
	assert.Equal(t, 32.0, cfg.DefaultK)
}

func TestNewEloRating(t *testing.T) {
	cfg := EloConfig{DefaultRating: 1200, DefaultK: 24}

	tests := []struct {
		name   string
		opts   []Option
		rating float64
		k      float64
	}{{
		"should use the config",
		nil,
		1200,
		24,
	}, {
		"should use the given rating",
		[]Option{WithRating(1800)},
		1800,
		24,
	}, {
		"should use the given k",
		[]Option{WithK(10)},
		1200,
		10,
	}, {
		"should keep an explicit zero",
		[]Option{WithRating(0), WithK(0)},
		0,
		0,
	}, {
		"should ignore glicko options",
		[]Option{WithRD(50), WithVolatility(0.1)},
		1200,
		24,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewEloRating(cfg, test.opts...)
			assert.Equal(t, test.rating, r.Rating)
			assert.Equal(t, test.k, r.K())
		})
	}
}

func TestEloExpected(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		m        float64
		expected float64
	}{{
		"should be even",
		1000,
		1000,
		0.5,
	}, {
		"should be 10 to 1",
		1400,
		1000,
		10.0 / 11,
	}, {
		"should be 1 to 10",
		1000,
		1400,
		1.0 / 11,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewEloRating(DefaultEloConfig(), WithRating(test.r))
			m := NewEloRating(DefaultEloConfig(), WithRating(test.m))
			assert.InDelta(t, test.expected, r.Expected(*m), 1e-12)
		})
	}
}

func TestEloWon(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		m        float64
		expected float64
	}{{
		"should be 1016",
		1000,
		1000,
		1016,
	}, {
		"should be 1032",
		1000,
		2000,
		1032,
	}, {
		"should be 1112",
		1100,
		1000,
		1112,
	}, {
		"should be 2001",
		2000,
		1000,
		2001,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewEloRating(DefaultEloConfig(), WithRating(test.r))
			m := NewEloRating(DefaultEloConfig(), WithRating(test.m))
			r.HandleGameOutcome(*m, Win)
			assert.Equal(t, test.expected, math.Ceil(r.Rating))
			assert.Equal(t, test.m, m.Rating)
		})
	}
}

func TestEloLost(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		m        float64
		expected float64
	}{{
		"should be 984",
		1000,
		1000,
		984,
	}, {
		"should be 1000",
		1000,
		2000,
		1000,
	}, {
		"should be 1080",
		1100,
		1000,
		1080,
	}, {
		"should be 1969",
		2000,
		1000,
		1969,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewEloRating(DefaultEloConfig(), WithRating(test.r))
			m := NewEloRating(DefaultEloConfig(), WithRating(test.m))
			r.HandleGameOutcome(*m, Loss)
			assert.Equal(t, test.expected, math.Ceil(r.Rating))
		})
	}
}

func TestEloEqualOpponent(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		change  float64
	}{
		{"win should add 16", Win, 16},
		{"draw should change nothing", Draw, 0},
		{"loss should take 16", Loss, -16},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewEloRating(DefaultEloConfig())
			m := NewEloRating(DefaultEloConfig())
			r.HandleGameOutcome(*m, test.outcome)
			assert.Equal(t, DefaultEloRating+test.change, r.Rating)
		})
	}
}

func TestEloZeroK(t *testing.T) {
	r := NewEloRating(DefaultEloConfig(), WithK(0))
	m := NewEloRating(DefaultEloConfig(), WithRating(1000))
	r.HandleGameOutcome(*m, Loss)

	assert.Equal(t, 1500.0, r.Rating)
}

func TestEloSmallerGainAgainstWeakerOpponent(t *testing.T) {
	for _, m := range []float64{1700, 1600, 1500} {
		weaker := NewEloRating(DefaultEloConfig(), WithRating(1600))
		weaker.HandleGameOutcome(*NewEloRating(DefaultEloConfig(), WithRating(m-100)), Win)

		other := NewEloRating(DefaultEloConfig(), WithRating(1600))
		other.HandleGameOutcome(*NewEloRating(DefaultEloConfig(), WithRating(m)), Win)

		assert.Less(t, weaker.Rating, other.Rating)
	}
}

func TestEloNotIdempotent(t *testing.T) {
	r := NewEloRating(DefaultEloConfig())
	m := NewEloRating(DefaultEloConfig())

	r.HandleGameOutcome(*m, Win)
	first := r.Rating
	r.HandleGameOutcome(*m, Win)

	assert.NotEqual(t, first, r.Rating)
	assert.Greater(t, r.Rating, first)
}
