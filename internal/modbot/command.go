package modbot

import (
	"strings"
	"unicode"

	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// Command is a bot command at the start of a text message, such as
// "/ban@mod_bot 7".
type Command struct {
	Name string
	// Bot is the @username suffix, empty when the command was not addressed.
	Bot  string
	Args string
}

// ParseCommand extracts the command a message starts with. Telegram marks it
// with a bot_command entity at offset 0; messages without one are not
// commands.
func ParseCommand(msg model.Message) (Command, bool) {
	text, ok := msg.Content.(model.TextContent)
	if !ok || !strings.HasPrefix(text.Text, "/") {
		return Command{}, false
	}
	marked := false
	for _, e := range text.Entities {
		if e.Type == model.EntityBotCommand && e.Offset == 0 {
			marked = true
			break
		}
	}
	if !marked {
		return Command{}, false
	}

	head, args := text.Text, ""
	if i := strings.IndexFunc(head, unicode.IsSpace); i >= 0 {
		head, args = head[:i], head[i:]
	}
	name, bot, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if name == "" {
		return Command{}, false
	}
	return Command{
		Name: strings.ToLower(name),
		Bot:  bot,
		Args: strings.TrimSpace(args),
	}, true
}

// For reports whether the command is addressed to username, or to no bot
// in particular.
func (c Command) For(username string) bool {
	return c.Bot == "" || strings.EqualFold(c.Bot, username)
}
