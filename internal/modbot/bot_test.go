package modbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

var (
	now    = time.Unix(1700000000, 0).UTC()
	group  = model.Chat{Variant: &model.SuperGroupChat{ID: -100, Title: "mods"}}
	admin  = model.User{ID: 1, FirstName: "Ada", Username: "ada"}
	member = model.User{ID: 2, FirstName: "Bob"}
	carol  = model.User{ID: 3, FirstName: "Carol", Username: "carol"}
)

func commandMsg(from model.User, text string, replyTo *model.Message) model.Message {
	head, _, _ := strings.Cut(text, " ")
	return model.Message{
		ID:             60,
		From:           &from,
		Date:           model.At(now),
		Chat:           group,
		ReplyToMessage: replyTo,
		Content: model.TextContent{
			Text:     text,
			Entities: []model.MessageEntity{{Type: model.EntityBotCommand, Offset: 0, Length: len(head)}},
		},
	}
}

func carolsMessage() *model.Message {
	return &model.Message{
		ID:      50,
		From:    &carol,
		Date:    model.At(now),
		Chat:    group,
		Content: model.TextContent{Text: "spam"},
	}
}

func newTestBot(api *fakeAPI) *Bot {
	b := NewBot(api, DefaultPolicy(), nil, "mod_bot")
	b.now = func() time.Time { return now }
	return b
}

func until(d time.Duration) *model.UnixTime {
	t := model.At(now.Add(d))
	return &t
}

func TestCommands(t *testing.T) {
	yes := true
	defaults := model.ChatPermissions{CanSendMessages: &yes, CanSendPolls: &yes}

	tests := []struct {
		name      string
		from      model.User
		text      string
		reply     bool
		wantCalls []any
		wantReply string
	}{
		{
			name:      "ban forever",
			from:      admin,
			text:      "/ban",
			reply:     true,
			wantCalls: []any{telegram.KickChatMember{ChatID: -100, UserID: 3}},
			wantReply: "Banned @carol.",
		},
		{
			name:      "ban for days",
			from:      admin,
			text:      "/ban@mod_bot 2",
			reply:     true,
			wantCalls: []any{telegram.KickChatMember{ChatID: -100, UserID: 3, UntilDate: until(48 * time.Hour)}},
			wantReply: "Banned @carol for 2 days.",
		},
		{
			name:      "ban with bad days",
			from:      admin,
			text:      "/ban soon",
			reply:     true,
			wantReply: "Usage: /ban [days]",
		},
		{
			name:      "ban for a year",
			from:      admin,
			text:      "/ban 366",
			reply:     true,
			wantCalls: []any{telegram.KickChatMember{ChatID: -100, UserID: 3, UntilDate: until(366 * 24 * time.Hour)}},
			wantReply: "Banned @carol for 366 days.",
		},
		{
			name:      "ban beyond a year is forever",
			from:      admin,
			text:      "/ban 200000",
			reply:     true,
			wantCalls: []any{telegram.KickChatMember{ChatID: -100, UserID: 3}},
			wantReply: "Banned @carol.",
		},
		{
			name:      "unban",
			from:      admin,
			text:      "/unban",
			reply:     true,
			wantCalls: []any{telegram.UnbanChatMember{ChatID: -100, UserID: 3, OnlyIfBanned: true}},
			wantReply: "Unbanned @carol.",
		},
		{
			name:  "mute with policy default",
			from:  admin,
			text:  "/mute",
			reply: true,
			wantCalls: []any{telegram.RestrictChatMember{
				ChatID: -100, UserID: 3,
				Permissions: model.ReadOnlyPermissions(),
				UntilDate:   until(time.Hour),
			}},
			wantReply: "Muted @carol for 60 minutes.",
		},
		{
			name:  "mute forever",
			from:  admin,
			text:  "/mute 0",
			reply: true,
			wantCalls: []any{telegram.RestrictChatMember{
				ChatID: -100, UserID: 3,
				Permissions: model.ReadOnlyPermissions(),
			}},
			wantReply: "Muted @carol.",
		},
		{
			name:  "mute beyond a year is forever",
			from:  admin,
			text:  "/mute 9223372036854775807",
			reply: true,
			wantCalls: []any{telegram.RestrictChatMember{
				ChatID: -100, UserID: 3,
				Permissions: model.ReadOnlyPermissions(),
			}},
			wantReply: "Muted @carol.",
		},
		{
			name:  "unmute restores chat defaults",
			from:  admin,
			text:  "/unmute",
			reply: true,
			wantCalls: []any{
				telegram.GetChat{ChatID: -100},
				telegram.RestrictChatMember{ChatID: -100, UserID: 3, Permissions: defaults},
			},
			wantReply: "Unmuted @carol.",
		},
		{
			name:  "promote with policy rights",
			from:  admin,
			text:  "/promote",
			reply: true,
			wantCalls: []any{telegram.PromoteChatMember{
				ChatID: -100, UserID: 3,
				CanDeleteMessages:  &yes,
				CanRestrictMembers: &yes,
				CanPinMessages:     &yes,
			}},
			wantReply: "Promoted @carol.",
		},
		{
			name:      "custom title",
			from:      admin,
			text:      "/title chief of spam",
			reply:     true,
			wantCalls: []any{telegram.SetChatAdministratorCustomTitle{ChatID: -100, UserID: 3, CustomTitle: "chief of spam"}},
		},
		{
			name:      "set chat title",
			from:      admin,
			text:      "/settitle Moderators",
			wantCalls: []any{telegram.SetChatTitle{ChatID: -100, Title: "Moderators"}},
		},
		{
			name:      "set chat title needs text",
			from:      admin,
			text:      "/settitle",
			wantReply: "Usage: /settitle <text>",
		},
		{
			name:      "clear description",
			from:      admin,
			text:      "/setdesc",
			wantCalls: []any{telegram.SetChatDescription{ChatID: -100}},
			wantReply: "Description cleared.",
		},
		{
			name:      "set description",
			from:      admin,
			text:      "/setdesc be nice",
			wantCalls: []any{telegram.SetChatDescription{ChatID: -100, Description: telegram.Ptr("be nice")}},
			wantReply: "Description updated.",
		},
		{
			name:      "pin",
			from:      admin,
			text:      "/pin",
			reply:     true,
			wantCalls: []any{telegram.PinChatMessage{ChatID: -100, MessageID: 50}},
		},
		{
			name:      "unpin latest",
			from:      admin,
			text:      "/unpin",
			wantCalls: []any{telegram.UnpinChatMessage{ChatID: -100}},
		},
		{
			name:      "unpin replied",
			from:      admin,
			text:      "/unpin",
			reply:     true,
			wantCalls: []any{telegram.UnpinChatMessage{ChatID: -100, MessageID: telegram.Ptr(int64(50))}},
		},
		{
			name:      "unpin all",
			from:      admin,
			text:      "/unpinall",
			wantCalls: []any{telegram.UnpinAllChatMessages{ChatID: -100}},
			wantReply: "Unpinned all messages.",
		},
		{
			name:      "invite",
			from:      admin,
			text:      "/invite",
			wantCalls: []any{telegram.CreateChatInviteLink{ChatID: -100, ExpireDate: until(24 * time.Hour)}},
			wantReply: "https://t.me/+invite",
		},
		{
			name:      "count is open to members",
			from:      member,
			text:      "/count",
			wantCalls: []any{telegram.GetChatMembersCount{ChatID: -100}},
			wantReply: "mods has 42 members.",
		},
		{
			name:      "members cannot ban",
			from:      member,
			text:      "/ban",
			reply:     true,
			wantReply: "Only chat administrators can use /ban.",
		},
		{
			name:      "ban needs a reply",
			from:      admin,
			text:      "/ban",
			wantReply: "Reply to a message to use /ban.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				members: map[int64]model.MemberStatus{admin.ID: model.AdministratorStatus{CanRestrictMembers: true}},
				chat:    model.Chat{Variant: &model.SuperGroupChat{ID: -100, Title: "mods", Permissions: &defaults}},
				count:   42,
				link:    "https://t.me/+invite",
			}
			var replyTo *model.Message
			if tt.reply {
				replyTo = carolsMessage()
			}
			msg := commandMsg(tt.from, tt.text, replyTo)

			handled, err := newTestBot(api).HandleUpdate(context.Background(), model.Update{ID: 1, Content: model.MessageUpdate{Message: msg}})
			if err != nil {
				t.Fatalf("HandleUpdate: %v", err)
			}
			if !handled {
				t.Fatal("HandleUpdate reported the command as ignored")
			}
			if diff := cmp.Diff(tt.wantCalls, api.calls); diff != "" {
				t.Errorf("requests (-want +got):\n%s", diff)
			}

			var got string
			if len(api.sent) > 0 {
				got = api.sent[0].Text
				if id := api.sent[0].ReplyToMessageID; id == nil || *id != 60 {
					t.Errorf("reply is not threaded under the command: %v", id)
				}
			}
			if got != tt.wantReply {
				t.Errorf("reply = %q, want %q", got, tt.wantReply)
			}
		})
	}
}

func TestAdminsList(t *testing.T) {
	api := &fakeAPI{
		members: map[int64]model.MemberStatus{admin.ID: model.OwnerStatus{}},
		admins: []model.ChatMember{
			{User: admin, Status: model.OwnerStatus{}},
			{User: member, Status: model.AdministratorStatus{CustomTitle: "janitor"}},
			{User: model.User{ID: 9, IsBot: true, Username: "mod_bot"}, Status: model.AdministratorStatus{}},
		},
	}
	msg := commandMsg(member, "/admins", nil)

	if _, err := newTestBot(api).HandleUpdate(context.Background(), model.Update{Content: model.MessageUpdate{Message: msg}}); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	want := "Administrators of mods:\n- @ada (owner)\n- Bob (janitor)"
	if len(api.sent) != 1 || api.sent[0].Text != want {
		t.Errorf("sent %+v, want %q", api.sent, want)
	}
}

func TestIgnoredUpdates(t *testing.T) {
	tests := []struct {
		name   string
		update model.Update
	}{
		{"callback query", model.Update{Content: model.CallbackQueryUpdate{}}},
		{"plain text", model.Update{Content: model.MessageUpdate{Message: model.Message{Chat: group, Content: model.TextContent{Text: "hi"}}}}},
		{"other bot", model.Update{Content: model.MessageUpdate{Message: commandMsg(admin, "/ban@other_bot", carolsMessage())}}},
		{"unknown command", model.Update{Content: model.MessageUpdate{Message: commandMsg(admin, "/frobnicate", nil)}}},
		{"edited command", model.Update{Content: model.EditedMessageUpdate{Message: commandMsg(admin, "/unpinall", nil)}}},
		{"slash without entity", model.Update{Content: model.MessageUpdate{Message: model.Message{Chat: group, Content: model.TextContent{Text: "/ban"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			handled, err := newTestBot(api).HandleUpdate(context.Background(), tt.update)
			if err != nil || handled {
				t.Errorf("HandleUpdate = %v, %v; want false, nil", handled, err)
			}
			if len(api.calls) != 0 || len(api.sent) != 0 {
				t.Errorf("unexpected requests: %v %v", api.calls, api.sent)
			}
		})
	}
}

func TestGreetsNewMembers(t *testing.T) {
	api := &fakeAPI{}
	store := &fakeStore{}
	b := newTestBot(api)
	b.Chats = store
	msg := model.Message{
		ID:      70,
		Chat:    group,
		Content: model.NewChatMembersContent{Members: []model.User{carol, {ID: 8, IsBot: true, FirstName: "Bot"}}},
	}

	handled, err := b.HandleUpdate(context.Background(), model.Update{Content: model.MessageUpdate{Message: msg}})
	if err != nil || !handled {
		t.Fatalf("HandleUpdate = %v, %v", handled, err)
	}
	want := "Welcome, @carol! Please read the pinned rules."
	if len(api.sent) != 1 || api.sent[0].Text != want {
		t.Errorf("sent %+v, want %q", api.sent, want)
	}
	if diff := cmp.Diff([]int64{-100}, store.chats); diff != "" {
		t.Errorf("recorded chats (-want +got):\n%s", diff)
	}
}

func TestPrivateStart(t *testing.T) {
	api := &fakeAPI{}
	msg := commandMsg(member, "/start", nil)
	msg.Chat = model.Chat{Variant: &model.PrivateChat{ID: 2, FirstName: "Bob"}}

	handled, err := newTestBot(api).HandleUpdate(context.Background(), model.Update{Content: model.MessageUpdate{Message: msg}})
	if err != nil || !handled {
		t.Fatalf("HandleUpdate = %v, %v", handled, err)
	}
	if len(api.sent) != 1 || api.sent[0].Text != helpText || api.sent[0].ChatID != 2 {
		t.Errorf("sent %+v", api.sent)
	}
}

func TestAPIFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantErr   bool
		wantReply string
	}{
		{
			name:      "refused",
			err:       &telegram.APIError{Method: "kickChatMember", Code: 400, Description: "Bad Request: not enough rights"},
			wantReply: "Telegram refused: Bad Request: not enough rights",
		},
		{
			name:      "forbidden",
			err:       &telegram.APIError{Method: "kickChatMember", Code: 403, Description: "Forbidden: bot was kicked"},
			wantReply: "Telegram refused: Forbidden: bot was kicked",
		},
		{
			name:    "flood control",
			err:     &telegram.APIError{Method: "kickChatMember", Code: 429, Description: "Too Many Requests: retry after 5"},
			wantErr: true,
		},
		{
			name:    "server error",
			err:     &telegram.APIError{Method: "kickChatMember", Code: 502, Description: "Bad Gateway"},
			wantErr: true,
		},
		{
			name:    "transport",
			err:     errors.New("kickChatMember: connection reset"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				members: map[int64]model.MemberStatus{admin.ID: model.OwnerStatus{}},
				err:     tt.err,
			}
			handled, err := newTestBot(api).HandleUpdate(context.Background(), model.Update{Content: model.MessageUpdate{Message: commandMsg(admin, "/ban", carolsMessage())}})
			if !handled {
				t.Error("handled = false")
			}
			if tt.wantErr {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				if len(api.sent) != 0 {
					t.Errorf("sent a reply after a failed call: %+v", api.sent)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if len(api.sent) != 1 {
				t.Fatalf("sent %d messages, want 1", len(api.sent))
			}
			if got := api.sent[0].Text; got != tt.wantReply {
				t.Errorf("reply = %q, want %q", got, tt.wantReply)
			}
			if got := api.sent[0].ReplyToMessageID; got == nil || *got != 60 {
				t.Errorf("reply_to_message_id = %v, want 60", got)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
		ok   bool
	}{
		{"/ban", Command{Name: "ban"}, true},
		{"/Ban@Mod_Bot 3", Command{Name: "ban", Bot: "Mod_Bot", Args: "3"}, true},
		{"/title\nchief  ", Command{Name: "title", Args: "chief"}, true},
		{"/@bot", Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseCommand(commandMsg(admin, tt.text, nil))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCommand (-want +got):\n%s", diff)
			}
		})
	}
	if !(Command{Bot: "MOD_BOT"}).For("mod_bot") {
		t.Error("For should ignore case")
	}
}
