package modbot

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// API is the part of *telegram.TelegramAPI the bot uses.
type API interface {
	SendMessage(ctx context.Context, req telegram.SendMessage) (model.Message, error)
	GetChat(ctx context.Context, req telegram.GetChat) (model.Chat, error)
	GetChatMember(ctx context.Context, req telegram.GetChatMember) (model.ChatMember, error)
	GetChatAdministrators(ctx context.Context, req telegram.GetChatAdministrators) ([]model.ChatMember, error)
	GetChatMembersCount(ctx context.Context, req telegram.GetChatMembersCount) (int, error)
	KickChatMember(ctx context.Context, req telegram.KickChatMember) error
	UnbanChatMember(ctx context.Context, req telegram.UnbanChatMember) error
	RestrictChatMember(ctx context.Context, req telegram.RestrictChatMember) error
	PromoteChatMember(ctx context.Context, req telegram.PromoteChatMember) error
	SetChatAdministratorCustomTitle(ctx context.Context, req telegram.SetChatAdministratorCustomTitle) error
	SetChatTitle(ctx context.Context, req telegram.SetChatTitle) error
	SetChatDescription(ctx context.Context, req telegram.SetChatDescription) error
	PinChatMessage(ctx context.Context, req telegram.PinChatMessage) error
	UnpinChatMessage(ctx context.Context, req telegram.UnpinChatMessage) error
	UnpinAllChatMessages(ctx context.Context, req telegram.UnpinAllChatMessages) error
	CreateChatInviteLink(ctx context.Context, req telegram.CreateChatInviteLink) (model.ChatInviteLink, error)
}

// ChatStore records the chats the bot has seen.
type ChatStore interface {
	Upsert(chat model.Chat) error
}

type Bot struct {
	API    API
	Policy Policy
	// Chats is optional.
	Chats ChatStore
	// Username of the bot, without the @. Commands addressed to other bots
	// are ignored.
	Username string

	now func() time.Time
}

func NewBot(api API, policy Policy, chats ChatStore, username string) *Bot {
	return &Bot{
		API:      api,
		Policy:   policy,
		Chats:    chats,
		Username: username,
		now:      time.Now,
	}
}

// HandleUpdate reacts to update and reports whether it did anything. Errors
// are Bot API calls that failed and may succeed if retried. Mistakes in a
// command, and calls Telegram refuses for good, are answered in the chat
// instead.
func (b *Bot) HandleUpdate(ctx context.Context, update model.Update) (bool, error) {
	msg, ok := update.Message()
	if !ok {
		return false, nil
	}
	if _, edited := update.Content.(model.EditedMessageUpdate); edited {
		return false, nil
	}
	if !msg.Chat.IsGroup() {
		return b.handlePrivate(ctx, msg)
	}

	b.record(msg.Chat)

	if members, ok := msg.Content.(model.NewChatMembersContent); ok {
		return b.greet(ctx, msg, members.Members)
	}

	cmd, ok := ParseCommand(msg)
	if !ok || !cmd.For(b.Username) {
		return false, nil
	}
	return b.HandleCommand(ctx, msg, cmd)
}

// HandleCommand runs cmd as sent in msg.
func (b *Bot) HandleCommand(ctx context.Context, msg model.Message, cmd Command) (bool, error) {
	c, ok := commands[cmd.Name]
	if !ok {
		return false, nil
	}
	if c.adminOnly {
		allowed, err := b.isAdmin(ctx, msg)
		if err != nil {
			return false, err
		}
		if !allowed {
			return true, b.reply(ctx, msg, "Only chat administrators can use /"+cmd.Name+".")
		}
	}
	if c.needsReply && msg.ReplyToMessage == nil {
		return true, b.reply(ctx, msg, "Reply to a message to use /"+cmd.Name+".")
	}

	text, err := c.run(ctx, b, msg, cmd)
	if err != nil {
		log.Printf("modbot: /%s in chat %d failed: %v", cmd.Name, msg.Chat.ID(), err)
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			// Telegram will refuse the same call again, so tell the admin
			// and consider the update done.
			return true, b.reply(ctx, msg, "Telegram refused: "+apiErr.Description)
		}
		return true, err
	}
	if text == "" {
		return true, nil
	}
	return true, b.reply(ctx, msg, text)
}

func (b *Bot) handlePrivate(ctx context.Context, msg model.Message) (bool, error) {
	cmd, ok := ParseCommand(msg)
	if !ok || (cmd.Name != "start" && cmd.Name != "help") {
		return false, nil
	}
	return true, b.reply(ctx, msg, helpText)
}

func (b *Bot) greet(ctx context.Context, msg model.Message, members []model.User) (bool, error) {
	if b.Policy.Welcome == "" {
		return false, nil
	}
	var names []string
	for _, m := range members {
		if m.IsBot {
			continue
		}
		names = append(names, m.DisplayName())
	}
	if len(names) == 0 {
		return false, nil
	}
	text := strings.ReplaceAll(b.Policy.Welcome, "{name}", strings.Join(names, ", "))
	return true, b.reply(ctx, msg, text)
}

// isAdmin checks the sender of msg. Anonymous administrators post as the
// chat itself.
func (b *Bot) isAdmin(ctx context.Context, msg model.Message) (bool, error) {
	if msg.SenderChat != nil && msg.SenderChat.ID() == msg.Chat.ID() {
		return true, nil
	}
	if msg.From == nil {
		return false, nil
	}
	member, err := b.API.GetChatMember(ctx, telegram.GetChatMember{
		ChatID: msg.Chat.ID(),
		UserID: msg.From.ID,
	})
	if err != nil {
		return false, err
	}
	return member.IsAdmin(), nil
}

func (b *Bot) reply(ctx context.Context, msg model.Message, text string) error {
	_, err := b.API.SendMessage(ctx, telegram.NewReply(msg, text))
	return err
}

func (b *Bot) record(chat model.Chat) {
	if b.Chats == nil {
		return
	}
	if err := b.Chats.Upsert(chat); err != nil {
		log.Printf("modbot: failed to record chat %d: %v", chat.ID(), err)
	}
}
