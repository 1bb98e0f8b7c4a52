package main

import (
	"log"
	"regexp"

	"github.com/nlopes/slack"
	"github.com/pkg/errors"
)

type slackChat struct {
	rtm   *slack.RTM
	botID string
}

func (s slackChat) userName(userID string) (string, error) {
	u, err := s.rtm.GetUserInfo(userID)
	if err != nil {
		return "", errors.Wrap(err, "unable to get user info")
	}

	if u.RealName != "" {
		return u.RealName, nil
	}
	return u.Name, nil
}

func (s slackChat) send(channelID, text string) error {
	var err error
	for i := 0; i < 5; i++ {
		params := slack.NewPostMessageParameters()
		params.EscapeText = false
		params.AsUser = true
		params.Username = s.botID

		_, _, err = s.rtm.PostMessage(channelID, text, params)
		if err == nil {
			break
		}
	}

	return errors.Wrap(err, "unable to send message")
}

// <@U024BE7LH> or <@U024BE7LH|bob>
var slackMention = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|[^>]*)?>`)

func slackMessage(msg slack.Msg) message {
	m := message{
		ChannelID: msg.Channel,
		UserID:    msg.User,
		Text:      slackMention.ReplaceAllString(msg.Text, ""),
	}

	for _, match := range slackMention.FindAllStringSubmatch(msg.Text, -1) {
		m.Mentions = append(m.Mentions, match[1])
	}

	switch msg.SubType {
	case "channel_join", "group_join":
		m.Event = joinedEvent
	case "channel_leave", "group_leave":
		m.Event = leftEvent
	}

	return m
}

func runSlack(token string, b *bot) error {
	api := slack.New(token)

	rtm := api.NewRTM()
	go rtm.ManageConnection()

	auth, err := api.AuthTest()
	if err != nil {
		return errors.Wrap(err, "unable to authenticate with slack")
	}

	b.botID = auth.UserID
	b.chat = slackChat{rtm: rtm, botID: auth.UserID}
	log.Println("connected to slack as", auth.User)

	for e := range rtm.IncomingEvents {
		switch evt := e.Data.(type) {
		case *slack.MessageEvent:
			Debugf("%#v", evt)
			if evt.BotID == "" {
				b.handle(slackMessage(evt.Msg))
			}
		case *slack.InvalidAuthEvent:
			return errors.New("invalid slack credentials")
		default:
			Debugf("%#v", evt)
		}
	}

	return nil
}
