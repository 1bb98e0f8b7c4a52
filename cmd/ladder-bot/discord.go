package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

type discordChat struct {
	session *discordgo.Session
}

func (d discordChat) userName(userID string) (string, error) {
	u, err := d.session.User(userID)
	if err != nil {
		return "", errors.Wrap(err, "unable to get user info")
	}

	if u.GlobalName != "" {
		return u.GlobalName, nil
	}
	return u.Username, nil
}

func (d discordChat) send(channelID, text string) error {
	_, err := d.session.ChannelMessageSend(channelID, text)
	return errors.Wrap(err, "unable to send message")
}

func discordMessage(m *discordgo.Message) message {
	msg := message{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Text:      m.Content,
	}

	for _, u := range m.Mentions {
		msg.Mentions = append(msg.Mentions, u.ID)
	}

	return msg
}

func runDiscord(token string, b *bot) error {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return errors.Wrap(err, "unable to create discord session")
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	// one event at a time, the ladder is not safe for concurrent updates
	session.SyncEvents = true

	b.chat = discordChat{session: session}
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.botID = r.User.ID
		log.Printf("connected to discord as %s", r.User.Username)
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		Debugf("%#v", m.Message)
		if m.Author == nil || m.Author.Bot {
			return
		}
		b.handle(discordMessage(m.Message))
	})

	if err := session.Open(); err != nil {
		return errors.Wrap(err, "unable to connect to discord")
	}
	defer session.Close()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	return nil
}
