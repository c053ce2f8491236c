package modbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

const helpText = `I moderate groups. Add me as an administrator, then use:
/ban [days] - reply to ban the author, forever without days
/unban - reply to lift a ban
/mute [minutes] - reply to make the author read-only
/unmute - reply to restore the chat defaults
/promote - reply to make the author an administrator
/title <text> - reply to set an administrator's custom title
/settitle <text> - rename the chat
/setdesc [text] - set or clear the chat description
/pin - reply to pin a message
/unpin - reply to unpin it, or unpin the latest
/unpinall - unpin everything
/invite - create an invite link
/admins - list administrators
/count - count members`

type command struct {
	adminOnly  bool
	needsReply bool
	run        func(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error)
}

var commands = map[string]command{
	"ban":      {adminOnly: true, needsReply: true, run: ban},
	"unban":    {adminOnly: true, needsReply: true, run: unban},
	"mute":     {adminOnly: true, needsReply: true, run: mute},
	"unmute":   {adminOnly: true, needsReply: true, run: unmute},
	"promote":  {adminOnly: true, needsReply: true, run: promote},
	"title":    {adminOnly: true, needsReply: true, run: title},
	"settitle": {adminOnly: true, run: setTitle},
	"setdesc":  {adminOnly: true, run: setDescription},
	"pin":      {adminOnly: true, needsReply: true, run: pin},
	"unpin":    {adminOnly: true, run: unpin},
	"unpinall": {adminOnly: true, run: unpinAll},
	"invite":   {adminOnly: true, run: invite},
	"admins":   {run: admins},
	"count":    {run: count},
	"help":     {run: help},
	"start":    {run: help},
}

func (b *Bot) clock() time.Time {
	if b.now == nil {
		return time.Now()
	}
	return b.now()
}

// target is the author of the message being replied to.
func target(msg model.Message) (model.User, bool) {
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		return model.User{}, false
	}
	return *msg.ReplyToMessage.From, true
}

// Telegram treats restrictions lasting longer than this as permanent.
const maxRestrictDays = 366

// number parses an optional non-negative count argument.
func number(args string, fallback int) (int, error) {
	if args == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.Fields(args)[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a number", args)
	}
	return n, nil
}

func ban(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	days, err := number(cmd.Args, b.Policy.BanDays)
	if err != nil {
		return "Usage: /ban [days]", nil
	}
	if days > maxRestrictDays {
		days = 0
	}
	req := telegram.NewKickChatMember(msg.Chat.ID(), user.ID)
	if days > 0 {
		until := model.At(b.clock().AddDate(0, 0, days))
		req.UntilDate = &until
	}
	if err := b.API.KickChatMember(ctx, req); err != nil {
		return "", err
	}
	if days > 0 {
		return fmt.Sprintf("Banned %s for %d days.", user.DisplayName(), days), nil
	}
	return fmt.Sprintf("Banned %s.", user.DisplayName()), nil
}

func unban(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	err := b.API.UnbanChatMember(ctx, telegram.UnbanChatMember{
		ChatID:       msg.Chat.ID(),
		UserID:       user.ID,
		OnlyIfBanned: true,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Unbanned %s.", user.DisplayName()), nil
}

func mute(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	minutes, err := number(cmd.Args, b.Policy.MuteMinutes)
	if err != nil {
		return "Usage: /mute [minutes]", nil
	}
	if minutes > maxRestrictDays*24*60 {
		minutes = 0
	}
	req := telegram.NewRestrictChatMember(msg.Chat.ID(), user.ID, model.ReadOnlyPermissions())
	if minutes > 0 {
		until := model.At(b.clock().Add(time.Duration(minutes) * time.Minute))
		req.UntilDate = &until
	}
	if err := b.API.RestrictChatMember(ctx, req); err != nil {
		return "", err
	}
	if minutes > 0 {
		return fmt.Sprintf("Muted %s for %d minutes.", user.DisplayName(), minutes), nil
	}
	return fmt.Sprintf("Muted %s.", user.DisplayName()), nil
}

func unmute(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	chat, err := b.API.GetChat(ctx, telegram.FromChat[telegram.GetChat](msg.Chat))
	if err != nil {
		return "", err
	}
	permissions := chat.Permissions()
	if permissions == nil {
		yes := true
		permissions = &model.ChatPermissions{
			CanSendMessages:       &yes,
			CanSendMediaMessages:  &yes,
			CanSendPolls:          &yes,
			CanSendOtherMessages:  &yes,
			CanAddWebPagePreviews: &yes,
		}
	}
	req := telegram.NewRestrictChatMember(msg.Chat.ID(), user.ID, *permissions)
	if err := b.API.RestrictChatMember(ctx, req); err != nil {
		return "", err
	}
	return fmt.Sprintf("Unmuted %s.", user.DisplayName()), nil
}

func promote(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	rights := b.Policy.Promote
	req := telegram.NewPromoteChatMember(msg.Chat.ID(), user.ID)
	req.CanManageChat = rights.CanManageChat
	req.CanDeleteMessages = rights.CanDeleteMessages
	req.CanManageVoiceChats = rights.CanManageVoiceChats
	req.CanRestrictMembers = rights.CanRestrictMembers
	req.CanPromoteMembers = rights.CanPromoteMembers
	req.CanChangeInfo = rights.CanChangeInfo
	req.CanInviteUsers = rights.CanInviteUsers
	req.CanPinMessages = rights.CanPinMessages
	if err := b.API.PromoteChatMember(ctx, req); err != nil {
		return "", err
	}
	return fmt.Sprintf("Promoted %s.", user.DisplayName()), nil
}

func title(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error) {
	user, ok := target(msg)
	if !ok {
		return "I can't tell who wrote that message.", nil
	}
	if cmd.Args == "" {
		return "Usage: /title <text>", nil
	}
	err := b.API.SetChatAdministratorCustomTitle(ctx, telegram.SetChatAdministratorCustomTitle{
		ChatID:      msg.Chat.ID(),
		UserID:      user.ID,
		CustomTitle: cmd.Args,
	})
	if err != nil {
		return "", err
	}
	return "", nil
}

func setTitle(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error) {
	if cmd.Args == "" {
		return "Usage: /settitle <text>", nil
	}
	return "", b.API.SetChatTitle(ctx, telegram.SetChatTitle{ChatID: msg.Chat.ID(), Title: cmd.Args})
}

func setDescription(ctx context.Context, b *Bot, msg model.Message, cmd Command) (string, error) {
	req := telegram.SetChatDescription{ChatID: msg.Chat.ID()}
	if cmd.Args != "" {
		req.Description = telegram.Ptr(cmd.Args)
	}
	if err := b.API.SetChatDescription(ctx, req); err != nil {
		return "", err
	}
	if req.Description == nil {
		return "Description cleared.", nil
	}
	return "Description updated.", nil
}

func pin(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	return "", b.API.PinChatMessage(ctx, telegram.PinChatMessage{
		ChatID:              msg.Chat.ID(),
		MessageID:           msg.ReplyToMessage.ID,
		DisableNotification: b.Policy.PinSilently,
	})
}

func unpin(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	req := telegram.UnpinChatMessage{ChatID: msg.Chat.ID()}
	if msg.ReplyToMessage != nil {
		req.MessageID = telegram.Ptr(msg.ReplyToMessage.ID)
	}
	return "", b.API.UnpinChatMessage(ctx, req)
}

func unpinAll(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	if err := b.API.UnpinAllChatMessages(ctx, telegram.FromChat[telegram.UnpinAllChatMessages](msg.Chat)); err != nil {
		return "", err
	}
	return "Unpinned all messages.", nil
}

func invite(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	req := telegram.CreateChatInviteLink{ChatID: msg.Chat.ID()}
	if expiry := b.Policy.Invite.Expiry; expiry > 0 {
		at := model.At(b.clock().Add(expiry))
		req.ExpireDate = &at
	}
	if limit := b.Policy.Invite.MemberLimit; limit > 0 {
		req.MemberLimit = telegram.Ptr(limit)
	}
	link, err := b.API.CreateChatInviteLink(ctx, req)
	if err != nil {
		return "", err
	}
	return link.InviteLink, nil
}

func admins(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	members, err := b.API.GetChatAdministrators(ctx, telegram.FromChat[telegram.GetChatAdministrators](msg.Chat))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("Administrators of " + msg.Chat.Name() + ":")
	for _, m := range members {
		if m.User.IsBot {
			continue
		}
		sb.WriteString("\n- " + m.User.DisplayName())
		switch s := m.Status.(type) {
		case model.OwnerStatus:
			sb.WriteString(" (owner)")
		case model.AdministratorStatus:
			if s.CustomTitle != "" {
				sb.WriteString(" (" + s.CustomTitle + ")")
			}
		}
	}
	return sb.String(), nil
}

func count(ctx context.Context, b *Bot, msg model.Message, _ Command) (string, error) {
	n, err := b.API.GetChatMembersCount(ctx, telegram.FromChat[telegram.GetChatMembersCount](msg.Chat))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s has %d members.", msg.Chat.Name(), n), nil
}

func help(context.Context, *Bot, model.Message, Command) (string, error) {
	return helpText, nil
}
