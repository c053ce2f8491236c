package modbot

import (
	"context"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// fakeAPI records every request it is given. Members maps user ids to their
// status in every chat.
type fakeAPI struct {
	calls   []any
	sent    []telegram.SendMessage
	members map[int64]model.MemberStatus
	chat    model.Chat
	admins  []model.ChatMember
	count   int
	link    string
	err     error
}

func (f *fakeAPI) record(req any) error {
	f.calls = append(f.calls, req)
	return f.err
}

func (f *fakeAPI) SendMessage(_ context.Context, req telegram.SendMessage) (model.Message, error) {
	f.sent = append(f.sent, req)
	return model.Message{}, nil
}

func (f *fakeAPI) GetChat(_ context.Context, req telegram.GetChat) (model.Chat, error) {
	return f.chat, f.record(req)
}

func (f *fakeAPI) GetChatMember(_ context.Context, req telegram.GetChatMember) (model.ChatMember, error) {
	status, ok := f.members[req.UserID]
	if !ok {
		status = model.RegularStatus{}
	}
	return model.ChatMember{User: model.User{ID: req.UserID}, Status: status}, nil
}

func (f *fakeAPI) GetChatAdministrators(_ context.Context, req telegram.GetChatAdministrators) ([]model.ChatMember, error) {
	return f.admins, f.record(req)
}

func (f *fakeAPI) GetChatMembersCount(_ context.Context, req telegram.GetChatMembersCount) (int, error) {
	return f.count, f.record(req)
}

func (f *fakeAPI) KickChatMember(_ context.Context, req telegram.KickChatMember) error {
	return f.record(req)
}

func (f *fakeAPI) UnbanChatMember(_ context.Context, req telegram.UnbanChatMember) error {
	return f.record(req)
}

func (f *fakeAPI) RestrictChatMember(_ context.Context, req telegram.RestrictChatMember) error {
	return f.record(req)
}

func (f *fakeAPI) PromoteChatMember(_ context.Context, req telegram.PromoteChatMember) error {
	return f.record(req)
}

func (f *fakeAPI) SetChatAdministratorCustomTitle(_ context.Context, req telegram.SetChatAdministratorCustomTitle) error {
	return f.record(req)
}

func (f *fakeAPI) SetChatTitle(_ context.Context, req telegram.SetChatTitle) error {
	return f.record(req)
}

func (f *fakeAPI) SetChatDescription(_ context.Context, req telegram.SetChatDescription) error {
	return f.record(req)
}

func (f *fakeAPI) PinChatMessage(_ context.Context, req telegram.PinChatMessage) error {
	return f.record(req)
}

func (f *fakeAPI) UnpinChatMessage(_ context.Context, req telegram.UnpinChatMessage) error {
	return f.record(req)
}

func (f *fakeAPI) UnpinAllChatMessages(_ context.Context, req telegram.UnpinAllChatMessages) error {
	return f.record(req)
}

func (f *fakeAPI) CreateChatInviteLink(_ context.Context, req telegram.CreateChatInviteLink) (model.ChatInviteLink, error) {
	return model.ChatInviteLink{InviteLink: f.link}, f.record(req)
}

type fakeStore struct {
	chats []int64
}

func (s *fakeStore) Upsert(chat model.Chat) error {
	s.chats = append(s.chats, chat.ID())
	return nil
}
