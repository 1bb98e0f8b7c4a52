// Package rating implements pairwise skill rating updates using the Elo,
// Glicko and Glicko-2 systems.
//
// Every engine has the same shape: construct a rating, feed it the outcome of
// a game against an opponent's rating, read back the updated values. Updates
// mutate only the receiver and are not safe for concurrent use on the same
// rating.
package rating

import (
	"strings"

	"github.com/pkg/errors"
)

// Outcome is the result of a single game from the point of view of the
// rating being updated.
type Outcome float64

const (
	Loss Outcome = 0
	Draw Outcome = 0.5
	Win  Outcome = 1
)

// Valid reports whether o is one of Win, Draw or Loss. The engines do not
// check this themselves.
func (o Outcome) Valid() bool {
	return o == Win || o == Draw || o == Loss
}

// Opposite returns the same game as seen by the opponent.
func (o Outcome) Opposite() Outcome {
	return 1 - o
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	}

	return "invalid"
}

// ParseOutcome maps the usual words for a result onto an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "won", "w", "1":
		return Win, nil
	case "draw", "drew", "d", "tie", "0.5":
		return Draw, nil
	case "loss", "lost", "l", "0":
		return Loss, nil
	}

	return 0, errors.Errorf("unknown outcome %q", s)
}
