// Package command holds the prefix-command registry. Commands register
// themselves from init, so the transport layer only needs the lookup.
package command

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"wiseoldman/internal/brain"
	"wiseoldman/internal/github"
	"wiseoldman/internal/runescape"
	"wiseoldman/internal/storage"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Run(ctx interface{}) error
}

// MessageContext is handed to a command when it fires from a chat
// message. Invoked carries the name or alias the user actually typed.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Invoked string
	Args    []string
	Prefix  string

	Storage   *storage.Storage
	RuneScape *runescape.Client
	GitHub    *github.Client
	Phrases   *brain.PhraseBook
}

// Reply sends text to the invoking channel, chunked to Discord's limit.
func (ctx *MessageContext) Reply(text string) error {
	for _, chunk := range splitMessage(text, 2000) {
		if _, err := ctx.Session.ChannelMessageSend(ctx.Event.ChannelID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func splitMessage(msg string, limit int) []string {
	var result []string
	for len(msg) > limit {
		cut := strings.LastIndex(msg[:limit], "\n")
		if cut == -1 {
			cut = limit
		}
		result = append(result, strings.TrimSpace(msg[:cut]))
		msg = strings.TrimSpace(msg[cut:])
	}
	if msg != "" {
		result = append(result, msg)
	}
	return result
}
