package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChatType is the "type" discriminant of a chat object.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSuperGroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// ChatVariant is implemented by *PrivateChat, *GroupChat, *SuperGroupChat,
// *ChannelChat and *UnknownChat.
type ChatVariant interface {
	chatID() int64
	chatType() ChatType
	raw() RawChat
}

// Chat is a private chat, group, supergroup or channel. Chats whose type this
// package does not know decode to *UnknownChat.
type Chat struct {
	Variant ChatVariant
}

type PrivateChat struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Photo     *ChatPhoto
	Bio       string
}

type GroupChat struct {
	ID            int64
	Title         string
	Photo         *ChatPhoto
	Description   string
	InviteLink    string
	PinnedMessage *Message
	Permissions   *ChatPermissions
}

type SuperGroupChat struct {
	ID               int64
	Title            string
	Username         string
	Photo            *ChatPhoto
	Description      string
	InviteLink       string
	PinnedMessage    *Message
	Permissions      *ChatPermissions
	SlowModeDelay    int
	StickerSetName   string
	CanSetStickerSet bool
	LinkedChatID     int64
	Location         *ChatLocation
}

type ChannelChat struct {
	ID            int64
	Title         string
	Username      string
	Photo         *ChatPhoto
	Description   string
	InviteLink    string
	PinnedMessage *Message
	LinkedChatID  int64
}

// UnknownChat keeps every field of a chat whose type is not recognized.
type UnknownChat struct {
	Raw RawChat
}

// RawChat is the flat wire form of a chat.
type RawChat struct {
	ID               int64            `json:"id"`
	Type             ChatType         `json:"type"`
	Title            string           `json:"title,omitempty"`
	Username         string           `json:"username,omitempty"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name,omitempty"`
	Photo            *ChatPhoto       `json:"photo,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	Description      string           `json:"description,omitempty"`
	InviteLink       string           `json:"invite_link,omitempty"`
	PinnedMessage    *Message         `json:"pinned_message,omitempty"`
	Permissions      *ChatPermissions `json:"permissions,omitempty"`
	SlowModeDelay    int              `json:"slow_mode_delay,omitempty"`
	StickerSetName   string           `json:"sticker_set_name,omitempty"`
	CanSetStickerSet bool             `json:"can_set_sticker_set,omitempty"`
	LinkedChatID     int64            `json:"linked_chat_id,omitempty"`
	Location         *ChatLocation    `json:"location,omitempty"`
}

// ChatPhoto holds file ids of a chat photo; they can only be used to
// download the photo and change while the photo stays the same.
type ChatPhoto struct {
	SmallFileID       string `json:"small_file_id"`
	SmallFileUniqueID string `json:"small_file_unique_id"`
	BigFileID         string `json:"big_file_id"`
	BigFileUniqueID   string `json:"big_file_unique_id"`
}

type ChatLocation struct {
	Location Location `json:"location"`
	Address  string   `json:"address"`
}

// ChatPermissions lists what non-administrator members may do. A nil field
// is left out of requests and means "not allowed" in responses.
type ChatPermissions struct {
	CanSendMessages       *bool `json:"can_send_messages,omitempty"`
	CanSendMediaMessages  *bool `json:"can_send_media_messages,omitempty"`
	CanSendPolls          *bool `json:"can_send_polls,omitempty"`
	CanSendOtherMessages  *bool `json:"can_send_other_messages,omitempty"`
	CanAddWebPagePreviews *bool `json:"can_add_web_page_previews,omitempty"`
	CanChangeInfo         *bool `json:"can_change_info,omitempty"`
	CanInviteUsers        *bool `json:"can_invite_users,omitempty"`
	CanPinMessages        *bool `json:"can_pin_messages,omitempty"`
}

// ReadOnlyPermissions forbids every kind of message.
func ReadOnlyPermissions() ChatPermissions {
	no := false
	return ChatPermissions{
		CanSendMessages:       &no,
		CanSendMediaMessages:  &no,
		CanSendPolls:          &no,
		CanSendOtherMessages:  &no,
		CanAddWebPagePreviews: &no,
	}
}

// ChatInviteLink is returned by the invite link methods.
type ChatInviteLink struct {
	InviteLink  string    `json:"invite_link"`
	Creator     User      `json:"creator"`
	IsPrimary   bool      `json:"is_primary"`
	IsRevoked   bool      `json:"is_revoked"`
	ExpireDate  *UnixTime `json:"expire_date,omitempty"`
	MemberLimit int       `json:"member_limit,omitempty"`
}

func (c *PrivateChat) chatID() int64         { return c.ID }
func (c *PrivateChat) chatType() ChatType    { return ChatTypePrivate }
func (c *GroupChat) chatID() int64           { return c.ID }
func (c *GroupChat) chatType() ChatType      { return ChatTypeGroup }
func (c *SuperGroupChat) chatID() int64      { return c.ID }
func (c *SuperGroupChat) chatType() ChatType { return ChatTypeSuperGroup }
func (c *ChannelChat) chatID() int64         { return c.ID }
func (c *ChannelChat) chatType() ChatType    { return ChatTypeChannel }
func (c *UnknownChat) chatID() int64         { return c.Raw.ID }
func (c *UnknownChat) chatType() ChatType    { return c.Raw.Type }

func (c *PrivateChat) raw() RawChat {
	return RawChat{
		ID:        c.ID,
		Type:      ChatTypePrivate,
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Photo:     c.Photo,
		Bio:       c.Bio,
	}
}

func (c *GroupChat) raw() RawChat {
	return RawChat{
		ID:            c.ID,
		Type:          ChatTypeGroup,
		Title:         c.Title,
		Photo:         c.Photo,
		Description:   c.Description,
		InviteLink:    c.InviteLink,
		PinnedMessage: c.PinnedMessage,
		Permissions:   c.Permissions,
	}
}

func (c *SuperGroupChat) raw() RawChat {
	return RawChat{
		ID:               c.ID,
		Type:             ChatTypeSuperGroup,
		Title:            c.Title,
		Username:         c.Username,
		Photo:            c.Photo,
		Description:      c.Description,
		InviteLink:       c.InviteLink,
		PinnedMessage:    c.PinnedMessage,
		Permissions:      c.Permissions,
		SlowModeDelay:    c.SlowModeDelay,
		StickerSetName:   c.StickerSetName,
		CanSetStickerSet: c.CanSetStickerSet,
		LinkedChatID:     c.LinkedChatID,
		Location:         c.Location,
	}
}

func (c *ChannelChat) raw() RawChat {
	return RawChat{
		ID:            c.ID,
		Type:          ChatTypeChannel,
		Title:         c.Title,
		Username:      c.Username,
		Photo:         c.Photo,
		Description:   c.Description,
		InviteLink:    c.InviteLink,
		PinnedMessage: c.PinnedMessage,
		LinkedChatID:  c.LinkedChatID,
	}
}

func (c *UnknownChat) raw() RawChat { return c.Raw }

// Chat selects the variant named by r.Type.
func (r RawChat) Chat() Chat {
	switch r.Type {
	case ChatTypePrivate:
		return Chat{Variant: &PrivateChat{
			ID:        r.ID,
			Username:  r.Username,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Photo:     r.Photo,
			Bio:       r.Bio,
		}}
	case ChatTypeGroup:
		return Chat{Variant: &GroupChat{
			ID:            r.ID,
			Title:         r.Title,
			Photo:         r.Photo,
			Description:   r.Description,
			InviteLink:    r.InviteLink,
			PinnedMessage: r.PinnedMessage,
			Permissions:   r.Permissions,
		}}
	case ChatTypeSuperGroup:
		return Chat{Variant: &SuperGroupChat{
			ID:               r.ID,
			Title:            r.Title,
			Username:         r.Username,
			Photo:            r.Photo,
			Description:      r.Description,
			InviteLink:       r.InviteLink,
			PinnedMessage:    r.PinnedMessage,
			Permissions:      r.Permissions,
			SlowModeDelay:    r.SlowModeDelay,
			StickerSetName:   r.StickerSetName,
			CanSetStickerSet: r.CanSetStickerSet,
			LinkedChatID:     r.LinkedChatID,
			Location:         r.Location,
		}}
	case ChatTypeChannel:
		return Chat{Variant: &ChannelChat{
			ID:            r.ID,
			Title:         r.Title,
			Username:      r.Username,
			Photo:         r.Photo,
			Description:   r.Description,
			InviteLink:    r.InviteLink,
			PinnedMessage: r.PinnedMessage,
			LinkedChatID:  r.LinkedChatID,
		}}
	default:
		return Chat{Variant: &UnknownChat{Raw: r}}
	}
}

// ID returns the chat id, or 0 for the zero Chat.
func (c Chat) ID() int64 {
	if c.Variant == nil {
		return 0
	}
	return c.Variant.chatID()
}

// Type returns the wire discriminant, including unrecognized ones.
func (c Chat) Type() ChatType {
	if c.Variant == nil {
		return ""
	}
	return c.Variant.chatType()
}

// Raw flattens the chat back to its wire form.
func (c Chat) Raw() RawChat {
	if c.Variant == nil {
		return RawChat{}
	}
	return c.Variant.raw()
}

// Name is the title of a group or channel, or the name of a private chat.
func (c Chat) Name() string {
	r := c.Raw()
	if r.Title != "" {
		return r.Title
	}
	if name := strings.TrimSpace(r.FirstName + " " + r.LastName); name != "" {
		return name
	}
	if r.Username != "" {
		return "@" + r.Username
	}
	return fmt.Sprintf("chat-%d", r.ID)
}

// IsGroup reports whether the chat is a group or supergroup.
func (c Chat) IsGroup() bool {
	switch c.Variant.(type) {
	case *GroupChat, *SuperGroupChat:
		return true
	}
	return false
}

// Permissions returns the default member permissions of a group or
// supergroup, if the API included them.
func (c Chat) Permissions() *ChatPermissions {
	switch v := c.Variant.(type) {
	case *GroupChat:
		return v.Permissions
	case *SuperGroupChat:
		return v.Permissions
	}
	return nil
}

func (c Chat) MarshalJSON() ([]byte, error) {
	if c.Variant == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Variant.raw())
}

func (c *Chat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	fields, err := objectKeys(data)
	if err != nil {
		return fmt.Errorf("decode chat: %w", err)
	}
	if err := requireKeys("chat", fields, "id"); err != nil {
		return err
	}
	if _, ok := fields["type"]; !ok {
		return fmt.Errorf("decode chat: %w \"type\"", ErrMissingDiscriminant)
	}
	var raw RawChat
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode chat: %w", err)
	}
	*c = raw.Chat()
	return nil
}
