package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeValid(t *testing.T) {
	assert.True(t, Win.Valid())
	assert.True(t, Draw.Valid())
	assert.True(t, Loss.Valid())
	assert.False(t, Outcome(0.75).Valid())
	assert.False(t, Outcome(-1).Valid())
}

func TestOutcomeOpposite(t *testing.T) {
	assert.Equal(t, Loss, Win.Opposite())
	assert.Equal(t, Draw, Draw.Opposite())
	assert.Equal(t, Win, Loss.Opposite())
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Outcome
	}{
		{"won", "won", Win},
		{"upper case", " WIN ", Win},
		{"drew", "drew", Draw},
		{"tie", "tie", Draw},
		{"lost", "lost", Loss},
		{"zero", "0", Loss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, err := ParseOutcome(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, o)
			assert.Equal(t, test.expected.String(), o.String())
		})
	}

	_, err := ParseOutcome("forfeit")
	assert.Error(t, err)
	assert.Equal(t, "invalid", Outcome(2).String())
}
