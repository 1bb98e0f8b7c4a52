package main

import "sort"

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

// ladder is one player's current standing in a channel. Only the latest
// rating state is kept.
type ladder struct {
	ID         int64   `db:"id"`
	ChannelID  string  `db:"channel_id"`
	UserID     string  `db:"user_id"`
	System     string  `db:"system"`
	Rating     float64 `db:"rating"`
	RD         float64 `db:"rd"`
	Volatility float64 `db:"volatility"`
	K          float64 `db:"k"`
	Games      int64   `db:"games"`
}

// ladders sorts by rating, highest first.
type ladders []ladder

func (l ladders) Less(i, j int) bool {
	if l[i].Rating == l[j].Rating {
		return l[i].UserID < l[j].UserID
	}
	return l[i].Rating > l[j].Rating
}
func (l ladders) Len() int      { return len(l) }
func (l ladders) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func position(l []ladder, userID string) int {
	sort.Sort(ladders(l))
	for i := range l {
		if l[i].UserID == userID {
			return i
		}
	}

	return -1
}

type DB interface {
	Close() error
	createLadderTable() error
	getPlayer(userID, channelID string) (*ladder, error)
	getLadders() ([]string, error)
	getLadder(channelID string) ([]ladder, error)
	clearLadder(channelID string) error
	removePlayer(l ladder) error
	insertOrUpdate(l ladder) error
	updateLadder(l []ladder) error
}
