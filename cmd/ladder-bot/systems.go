package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/losinggeneration/rating"
)

const (
	eloName     = "elo"
	glickoName  = "glicko"
	glicko2Name = "glicko2"
)

// system rates a channel's players with one of the rating engines. Records
// are converted to engine ratings for each game and written back afterwards.
type system interface {
	name() string
	newPlayer(channelID, userID string) ladder
	// play updates both a and b for a game a had outcome in. On error neither
	// is modified.
	play(a, b *ladder, outcome rating.Outcome) error
	expected(a, b ladder) float64
	format(l ladder) string
}

func newSystem(name string, elo rating.EloConfig) (system, error) {
	switch name {
	case eloName:
		return eloSystem{cfg: elo}, nil
	case glickoName:
		return glickoSystem{}, nil
	case glicko2Name:
		return glicko2System{}, nil
	}

	return nil, errors.Errorf("unknown rating system %q", name)
}

// adopt restarts a player whose record was rated by a different system.
func adopt(s system, l *ladder) {
	if l.System == s.name() {
		return
	}

	Debugf("restarting %s in %s: rated by %q, now %q", l.UserID, l.ChannelID, l.System, s.name())
	fresh := s.newPlayer(l.ChannelID, l.UserID)
	fresh.ID = l.ID
	*l = fresh
}

type eloSystem struct {
	cfg rating.EloConfig
}

func (eloSystem) name() string { return eloName }

func (s eloSystem) newPlayer(channelID, userID string) ladder {
	r := rating.NewEloRating(s.cfg)
	return ladder{
		ChannelID: channelID,
		UserID:    userID,
		System:    eloName,
		Rating:    r.Rating,
		K:         r.K(),
	}
}

func (s eloSystem) rating(l ladder) *rating.EloRating {
	return rating.NewEloRating(s.cfg, rating.WithRating(l.Rating), rating.WithK(l.K))
}

func (s eloSystem) play(a, b *ladder, outcome rating.Outcome) error {
	adopt(s, a)
	adopt(s, b)

	ra, rb := s.rating(*a), s.rating(*b)
	before := *ra
	ra.HandleGameOutcome(*rb, outcome)
	rb.HandleGameOutcome(before, outcome.Opposite())

	a.Rating, b.Rating = ra.Rating, rb.Rating
	a.Games++
	b.Games++
	return nil
}

func (s eloSystem) expected(a, b ladder) float64 {
	return s.rating(a).Expected(*s.rating(b))
}

func (eloSystem) format(l ladder) string {
	return fmt.Sprintf("%.0f", l.Rating)
}

type glickoSystem struct{}

func (glickoSystem) name() string { return glickoName }

func (glickoSystem) newPlayer(channelID, userID string) ladder {
	r := rating.NewGlickoRating()
	return ladder{
		ChannelID: channelID,
		UserID:    userID,
		System:    glickoName,
		Rating:    r.Rating(),
		RD:        r.RD(),
	}
}

func (glickoSystem) rating(l ladder) *rating.GlickoRating {
	return rating.NewGlickoRating(rating.WithRating(l.Rating), rating.WithRD(l.RD))
}

func (s glickoSystem) play(a, b *ladder, outcome rating.Outcome) error {
	adopt(s, a)
	adopt(s, b)

	ra, rb := s.rating(*a), s.rating(*b)
	before := *ra
	ra.HandleGameOutcome(*rb, outcome)
	rb.HandleGameOutcome(before, outcome.Opposite())

	a.Rating, a.RD = ra.Rating(), ra.RD()
	b.Rating, b.RD = rb.Rating(), rb.RD()
	a.Games++
	b.Games++
	return nil
}

func (s glickoSystem) expected(a, b ladder) float64 {
	return s.rating(a).Expected(*s.rating(b))
}

func (glickoSystem) format(l ladder) string {
	return fmt.Sprintf("%.0f ±%.0f", l.Rating, l.RD)
}

type glicko2System struct {
	// limit bounds the volatility search when set.
	limit int
}

func (glicko2System) name() string { return glicko2Name }

func (glicko2System) newPlayer(channelID, userID string) ladder {
	r := rating.NewGlicko2Rating()
	return ladder{
		ChannelID:  channelID,
		UserID:     userID,
		System:     glicko2Name,
		Rating:     r.Rating(),
		RD:         r.RD(),
		Volatility: r.Volatility(),
	}
}

func (s glicko2System) rating(l ladder) *rating.Glicko2Rating {
	opts := []rating.Option{
		rating.WithRating(l.Rating),
		rating.WithRD(l.RD),
		rating.WithVolatility(l.Volatility),
	}
	if s.limit > 0 {
		opts = append(opts, rating.WithMaxIterations(s.limit))
	}

	return rating.NewGlicko2Rating(opts...)
}

func (s glicko2System) play(a, b *ladder, outcome rating.Outcome) error {
	na, nb := *a, *b
	adopt(s, &na)
	adopt(s, &nb)

	ra, rb := s.rating(na), s.rating(nb)
	before := *ra
	if err := ra.HandleGameOutcome(*rb, outcome); err != nil {
		return errors.Wrapf(err, "unable to rate %s", a.UserID)
	}
	if err := rb.HandleGameOutcome(before, outcome.Opposite()); err != nil {
		return errors.Wrapf(err, "unable to rate %s", b.UserID)
	}

	na.Rating, na.RD, na.Volatility = ra.Rating(), ra.RD(), ra.Volatility()
	nb.Rating, nb.RD, nb.Volatility = rb.Rating(), rb.RD(), rb.Volatility()
	na.Games++
	nb.Games++

	*a, *b = na, nb
	return nil
}

func (s glicko2System) expected(a, b ladder) float64 {
	return s.rating(a).Expected(*s.rating(b))
}

func (glicko2System) format(l ladder) string {
	return fmt.Sprintf("%.0f ±%.0f σ%.4f", l.Rating, l.RD, l.Volatility)
}
