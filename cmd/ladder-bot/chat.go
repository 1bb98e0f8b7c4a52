package main

type event string

const (
	joinedEvent event = "joined"
	leftEvent   event = "left"
)

// message is an incoming chat message, independent of the transport.
type message struct {
	ChannelID string
	UserID    string
	Text      string
	// Mentions lists the user IDs mentioned in Text, in order.
	Mentions []string
	Event    event
}

type chat interface {
	userName(userID string) (string, error)
	send(channelID, text string) error
}
