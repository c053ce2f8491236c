package telegram

import "github.com/naseer2426/mod-bot/internal/telegram/model"

// Chat moderation requests. Optional parameters are pointers: nil leaves the
// parameter out of the request, a non-nil pointer sends it even when it
// points at a zero value. Documented length and range limits are enforced
// by Telegram, not here.

// KickChatMember bans a user from a group, supergroup or channel.
type KickChatMember struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
	// Users banned for more than 366 days or less than 30 seconds from now
	// are banned forever.
	UntilDate *model.UnixTime `json:"until_date,omitempty"`
	// Delete all messages from the chat for the user being removed. Always
	// true for supergroups and channels.
	RevokeMessages *bool `json:"revoke_messages,omitempty"`
}

type UnbanChatMember struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
	// Do nothing if the user is not banned.
	OnlyIfBanned bool `json:"only_if_banned"`
}

type RestrictChatMember struct {
	ChatID      int64                 `json:"chat_id"`
	UserID      int64                 `json:"user_id"`
	Permissions model.ChatPermissions `json:"permissions"`
	UntilDate   *model.UnixTime       `json:"until_date,omitempty"`
}

type PromoteChatMember struct {
	ChatID              int64 `json:"chat_id"`
	UserID              int64 `json:"user_id"`
	IsAnonymous         *bool `json:"is_anonymous,omitempty"`
	CanManageChat       *bool `json:"can_manage_chat,omitempty"`
	CanPostMessages     *bool `json:"can_post_messages,omitempty"` // channels only
	CanEditMessages     *bool `json:"can_edit_messages,omitempty"` // channels only
	CanDeleteMessages   *bool `json:"can_delete_messages,omitempty"`
	CanManageVoiceChats *bool `json:"can_manage_voice_chats,omitempty"` // supergroups only
	CanRestrictMembers  *bool `json:"can_restrict_members,omitempty"`
	CanPromoteMembers   *bool `json:"can_promote_members,omitempty"`
	CanChangeInfo       *bool `json:"can_change_info,omitempty"`
	CanInviteUsers      *bool `json:"can_invite_users,omitempty"`
	CanPinMessages      *bool `json:"can_pin_messages,omitempty"` // supergroups only
}

type SetChatAdministratorCustomTitle struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
	// 0-16 characters, emoji are not allowed.
	CustomTitle string `json:"custom_title"`
}

type SetChatPermissions struct {
	ChatID      int64                 `json:"chat_id"`
	Permissions model.ChatPermissions `json:"permissions"`
}

type ExportChatInviteLink struct {
	ChatID int64 `json:"chat_id"`
}

type SetChatPhoto struct {
	ChatID int64     `json:"chat_id"`
	Photo  InputFile `json:"photo"`
}

type DeleteChatPhoto struct {
	ChatID int64 `json:"chat_id"`
}

type SetChatTitle struct {
	ChatID int64 `json:"chat_id"`
	// 1-255 characters.
	Title string `json:"title"`
}

type SetChatDescription struct {
	ChatID int64 `json:"chat_id"`
	// 0-255 characters; nil clears the description.
	Description *string `json:"description,omitempty"`
}

type PinChatMessage struct {
	ChatID              int64 `json:"chat_id"`
	MessageID           int64 `json:"message_id"`
	DisableNotification bool  `json:"disable_notification"`
}

type UnpinChatMessage struct {
	ChatID int64 `json:"chat_id"`
	// nil unpins the most recently pinned message.
	MessageID *int64 `json:"message_id,omitempty"`
}

type UnpinAllChatMessages struct {
	ChatID int64 `json:"chat_id"`
}

type LeaveChat struct {
	ChatID int64 `json:"chat_id"`
}

type GetChat struct {
	ChatID int64 `json:"chat_id"`
}

type GetChatAdministrators struct {
	ChatID int64 `json:"chat_id"`
}

type GetChatMembersCount struct {
	ChatID int64 `json:"chat_id"`
}

type GetChatMember struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
}

type SetChatStickerSet struct {
	ChatID         int64  `json:"chat_id"`
	StickerSetName string `json:"sticker_set_name"`
}

type DeleteChatStickerSet struct {
	ChatID int64 `json:"chat_id"`
}

type CreateChatInviteLink struct {
	ChatID     int64           `json:"chat_id"`
	ExpireDate *model.UnixTime `json:"expire_date,omitempty"`
	// 1-99999 simultaneous members joining through this link.
	MemberLimit *int `json:"member_limit,omitempty"`
}

type EditChatInviteLink struct {
	ChatID      int64           `json:"chat_id"`
	InviteLink  string          `json:"invite_link"`
	ExpireDate  *model.UnixTime `json:"expire_date,omitempty"`
	MemberLimit *int            `json:"member_limit,omitempty"`
}

type RevokeChatInviteLink struct {
	ChatID     int64  `json:"chat_id"`
	InviteLink string `json:"invite_link"`
}

func (KickChatMember) Method() string                  { return "kickChatMember" }
func (UnbanChatMember) Method() string                 { return "unbanChatMember" }
func (RestrictChatMember) Method() string              { return "restrictChatMember" }
func (PromoteChatMember) Method() string               { return "promoteChatMember" }
func (SetChatAdministratorCustomTitle) Method() string { return "setChatAdministratorCustomTitle" }
func (SetChatPermissions) Method() string              { return "setChatPermissions" }
func (ExportChatInviteLink) Method() string            { return "exportChatInviteLink" }
func (SetChatPhoto) Method() string                    { return "setChatPhoto" }
func (DeleteChatPhoto) Method() string                 { return "deleteChatPhoto" }
func (SetChatTitle) Method() string                    { return "setChatTitle" }
func (SetChatDescription) Method() string              { return "setChatDescription" }
func (PinChatMessage) Method() string                  { return "pinChatMessage" }
func (UnpinChatMessage) Method() string                { return "unpinChatMessage" }
func (UnpinAllChatMessages) Method() string            { return "unpinAllChatMessages" }
func (LeaveChat) Method() string                       { return "leaveChat" }
func (GetChat) Method() string                         { return "getChat" }
func (GetChatAdministrators) Method() string           { return "getChatAdministrators" }
func (GetChatMembersCount) Method() string             { return "getChatMembersCount" }
func (GetChatMember) Method() string                   { return "getChatMember" }
func (SetChatStickerSet) Method() string               { return "setChatStickerSet" }
func (DeleteChatStickerSet) Method() string            { return "deleteChatStickerSet" }
func (CreateChatInviteLink) Method() string            { return "createChatInviteLink" }
func (EditChatInviteLink) Method() string              { return "editChatInviteLink" }
func (RevokeChatInviteLink) Method() string            { return "revokeChatInviteLink" }

func (r SetChatPhoto) files() map[string]InputFile {
	return map[string]InputFile{"photo": r.Photo}
}

// NewKickChatMember bans userID from chatID forever, keeping their messages.
func NewKickChatMember(chatID, userID int64) KickChatMember {
	return KickChatMember{ChatID: chatID, UserID: userID}
}

// NewRestrictChatMember applies permissions to userID with no expiry.
func NewRestrictChatMember(chatID, userID int64, permissions model.ChatPermissions) RestrictChatMember {
	return RestrictChatMember{ChatID: chatID, UserID: userID, Permissions: permissions}
}

// NewPromoteChatMember leaves every privilege unset, so only the chat and
// user ids are sent.
func NewPromoteChatMember(chatID, userID int64) PromoteChatMember {
	return PromoteChatMember{ChatID: chatID, UserID: userID}
}

// chatScoped is implemented by requests whose only parameter is the chat id.
type chatScoped interface {
	setChatID(id int64)
}

func (r *ExportChatInviteLink) setChatID(id int64)  { r.ChatID = id }
func (r *DeleteChatPhoto) setChatID(id int64)       { r.ChatID = id }
func (r *UnpinAllChatMessages) setChatID(id int64)  { r.ChatID = id }
func (r *LeaveChat) setChatID(id int64)             { r.ChatID = id }
func (r *GetChat) setChatID(id int64)               { r.ChatID = id }
func (r *GetChatAdministrators) setChatID(id int64) { r.ChatID = id }
func (r *GetChatMembersCount) setChatID(id int64)   { r.ChatID = id }
func (r *DeleteChatStickerSet) setChatID(id int64)  { r.ChatID = id }

// FromChat builds a chat-id-only request for chat:
//
//	req := telegram.FromChat[telegram.LeaveChat](chat)
func FromChat[T any, P interface {
	*T
	chatScoped
}](chat model.Chat) T {
	var req T
	P(&req).setChatID(chat.ID())
	return req
}

// Ptr returns a pointer to v, for filling optional request parameters.
func Ptr[T any](v T) *T {
	return &v
}
