package main

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/losinggeneration/rating"
)

type command string

const (
	helpCommand    command = "help"
	ratingCommand  command = "rating"
	wonCommand     command = "won"
	lostCommand    command = "lost"
	drewCommand    command = "drew"
	oddsCommand    command = "odds"
	boardCommand   command = "board"
	resetCommand   command = "reset"
	unknownCommand command = "unknown"
)

type commands map[command]string

var cmds = commands{
	helpCommand:   "a list of available commands",
	ratingCommand: "what your current rating is",
	wonCommand:    "report a win against @player",
	lostCommand:   "report a loss against @player",
	drewCommand:   "report a draw against @player",
	oddsCommand:   "your chances against @player",
	boardCommand:  "show the board ratings",
	resetCommand:  "start the board over",
}

func (c commands) Print() string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, string(k))
	}
	sort.Strings(names)

	cmds := "Available commands\n"
	for _, k := range names {
		cmds += fmt.Sprintf("%q - %v\n", k, c[command(k)])
	}

	return cmds
}

// checkMessage returns the first word of the message that names a command.
func checkMessage(msg message) command {
	for _, word := range strings.Fields(strings.ToLower(msg.Text)) {
		word = strings.Trim(word, "!.,?:")
		if _, ok := cmds[command(word)]; ok {
			return command(word)
		}
	}

	return unknownCommand
}

type bot struct {
	db     DB
	chat   chat
	system system
	botID  string
}

func (b *bot) handle(msg message) {
	cmd := checkMessage(msg)
	if err := b.runCommand(cmd, msg); err != nil {
		log.Printf("%+v", err)
	}
}

// player returns the player's record, adding them to the ladder on first use.
func (b *bot) player(userID, channelID string) (*ladder, error) {
	p, err := b.db.getPlayer(userID, channelID)
	if err == nil {
		return p, nil
	}
	if _, ok := errors.Cause(err).(errNotFound); !ok {
		return nil, err
	}

	l := b.system.newPlayer(channelID, userID)
	if err := b.db.insertOrUpdate(l); err != nil {
		return nil, err
	}

	Debugf("added %s to %s", userID, channelID)
	return b.db.getPlayer(userID, channelID)
}

// lookup returns the player's record without adding them to the ladder. A
// player who has not played, or was rated by another system, gets a fresh
// record.
func (b *bot) lookup(userID, channelID string) (ladder, error) {
	p, err := b.db.getPlayer(userID, channelID)
	if err != nil {
		if _, ok := errors.Cause(err).(errNotFound); !ok {
			return ladder{}, err
		}
		return b.system.newPlayer(channelID, userID), nil
	}

	l := *p
	adopt(b.system, &l)
	return l, nil
}

// opponent is the first mentioned user that is neither the sender nor the bot.
func (b *bot) opponent(msg message) (string, bool) {
	for _, id := range msg.Mentions {
		if id != msg.UserID && id != b.botID {
			return id, true
		}
	}

	return "", false
}

func (b *bot) rating(msg message) error {
	p, err := b.player(msg.UserID, msg.ChannelID)
	if err != nil {
		return err
	}

	board, err := b.db.getLadder(msg.ChannelID)
	if err != nil {
		return err
	}

	name, err := b.chat.userName(msg.UserID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s\t%s\t%d/%d", name, b.system.format(*p), position(board, msg.UserID)+1, len(board))
	return b.chat.send(msg.ChannelID, text)
}

func (b *bot) report(msg message, outcome rating.Outcome) error {
	opponentID, ok := b.opponent(msg)
	if !ok {
		return b.chat.send(msg.ChannelID, "who did you play? mention them, e.g. `won @player`")
	}

	p, err := b.player(msg.UserID, msg.ChannelID)
	if err != nil {
		return err
	}

	o, err := b.player(opponentID, msg.ChannelID)
	if err != nil {
		return err
	}

	// a record from another system restarts, so the change is measured from there
	adopt(b.system, p)
	adopt(b.system, o)

	before := p.Rating
	if err := b.system.play(p, o, outcome); err != nil {
		if serr := b.chat.send(msg.ChannelID, "unable to rate that game, ratings are unchanged"); serr != nil {
			log.Printf("%+v", serr)
		}
		return err
	}

	if err := b.db.updateLadder([]ladder{*p, *o}); err != nil {
		return err
	}

	text := fmt.Sprintf("New rating %s (%+.1f)", b.system.format(*p), p.Rating-before)
	return b.chat.send(msg.ChannelID, text)
}

func (b *bot) odds(msg message) error {
	opponentID, ok := b.opponent(msg)
	if !ok {
		return b.chat.send(msg.ChannelID, "against who? mention them, e.g. `odds @player`")
	}

	p, err := b.lookup(msg.UserID, msg.ChannelID)
	if err != nil {
		return err
	}

	o, err := b.lookup(opponentID, msg.ChannelID)
	if err != nil {
		return err
	}

	name, err := b.chat.userName(opponentID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("expected score against %s: %.0f%%", name, 100*b.system.expected(p, o))
	return b.chat.send(msg.ChannelID, text)
}

func (b *bot) board(msg message) error {
	board, err := b.db.getLadder(msg.ChannelID)
	if err != nil {
		return err
	}

	if len(board) == 0 {
		return b.chat.send(msg.ChannelID, "nobody has played yet")
	}

	var text string
	for i, u := range board {
		name, err := b.chat.userName(u.UserID)
		if err != nil {
			return err
		}

		text += fmt.Sprintf("%d. %s\t%s\n", i+1, name, b.system.format(u))
	}

	return b.chat.send(msg.ChannelID, text)
}

func (b *bot) reset(msg message) error {
	if err := b.db.clearLadder(msg.ChannelID); err != nil {
		return err
	}

	return b.chat.send(msg.ChannelID, "the board has been reset")
}

func (b *bot) userLeft(msg message) error {
	p, err := b.db.getPlayer(msg.UserID, msg.ChannelID)
	if err != nil {
		if _, ok := errors.Cause(err).(errNotFound); ok {
			return nil
		}
		return err
	}

	return b.db.removePlayer(*p)
}

func (b *bot) runCommand(cmd command, msg message) error {
	switch msg.Event {
	case joinedEvent:
		_, err := b.player(msg.UserID, msg.ChannelID)
		return err
	case leftEvent:
		return b.userLeft(msg)
	}

	switch cmd {
	case ratingCommand:
		return b.rating(msg)
	case wonCommand, lostCommand, drewCommand:
		outcome, err := rating.ParseOutcome(string(cmd))
		if err != nil {
			return err
		}
		return b.report(msg, outcome)
	case oddsCommand:
		return b.odds(msg)
	case boardCommand:
		return b.board(msg)
	case resetCommand:
		return b.reset(msg)
	case helpCommand:
		return b.chat.send(msg.ChannelID, cmds.Print())
	}

	return nil
}
