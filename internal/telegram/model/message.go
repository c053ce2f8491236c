package model

import (
	"encoding/json"
	"fmt"
)

// Message is the envelope shared by every message; what the message carries
// is in Content.
type Message struct {
	ID                   int64
	From                 *User
	SenderChat           *Chat
	Date                 UnixTime
	Chat                 Chat
	ForwardFrom          *User
	ForwardFromChat      *Chat
	ForwardFromMessageID int64
	ForwardSignature     string
	ForwardSenderName    string
	ForwardDate          *UnixTime
	ReplyToMessage       *Message
	ViaBot               *User
	EditDate             *UnixTime
	MediaGroupID         string
	AuthorSignature      string
	ReplyMarkup          *InlineKeyboardMarkup
	Content              MessageContent
}

// RawMessage is the flat wire form of a message: the envelope plus every
// content field.
type RawMessage struct {
	MessageID            int64                 `json:"message_id"`
	From                 *User                 `json:"from,omitempty"`
	SenderChat           *Chat                 `json:"sender_chat,omitempty"`
	Date                 UnixTime              `json:"date"`
	Chat                 Chat                  `json:"chat"`
	ForwardFrom          *User                 `json:"forward_from,omitempty"`
	ForwardFromChat      *Chat                 `json:"forward_from_chat,omitempty"`
	ForwardFromMessageID int64                 `json:"forward_from_message_id,omitempty"`
	ForwardSignature     string                `json:"forward_signature,omitempty"`
	ForwardSenderName    string                `json:"forward_sender_name,omitempty"`
	ForwardDate          *UnixTime             `json:"forward_date,omitempty"`
	ReplyToMessage       *Message              `json:"reply_to_message,omitempty"`
	ViaBot               *User                 `json:"via_bot,omitempty"`
	EditDate             *UnixTime             `json:"edit_date,omitempty"`
	MediaGroupID         string                `json:"media_group_id,omitempty"`
	AuthorSignature      string                `json:"author_signature,omitempty"`
	ReplyMarkup          *InlineKeyboardMarkup `json:"reply_markup,omitempty"`

	Text                          string                         `json:"text,omitempty"`
	Entities                      []MessageEntity                `json:"entities,omitempty"`
	Animation                     *Animation                     `json:"animation,omitempty"`
	Audio                         *Audio                         `json:"audio,omitempty"`
	Document                      *Document                      `json:"document,omitempty"`
	Photo                         []PhotoSize                    `json:"photo,omitempty"`
	Sticker                       *Sticker                       `json:"sticker,omitempty"`
	Video                         *Video                         `json:"video,omitempty"`
	VideoNote                     *VideoNote                     `json:"video_note,omitempty"`
	Voice                         *Voice                         `json:"voice,omitempty"`
	Caption                       string                         `json:"caption,omitempty"`
	CaptionEntities               []MessageEntity                `json:"caption_entities,omitempty"`
	Contact                       *Contact                       `json:"contact,omitempty"`
	Dice                          *Dice                          `json:"dice,omitempty"`
	Venue                         *Venue                         `json:"venue,omitempty"`
	Location                      *Location                      `json:"location,omitempty"`
	Poll                          *Poll                          `json:"poll,omitempty"`
	NewChatMembers                []User                         `json:"new_chat_members,omitempty"`
	LeftChatMember                *User                          `json:"left_chat_member,omitempty"`
	NewChatTitle                  string                         `json:"new_chat_title,omitempty"`
	NewChatPhoto                  []PhotoSize                    `json:"new_chat_photo,omitempty"`
	DeleteChatPhoto               bool                           `json:"delete_chat_photo,omitempty"`
	GroupChatCreated              bool                           `json:"group_chat_created,omitempty"`
	SupergroupChatCreated         bool                           `json:"supergroup_chat_created,omitempty"`
	ChannelChatCreated            bool                           `json:"channel_chat_created,omitempty"`
	MessageAutoDeleteTimerChanged *MessageAutoDeleteTimerChanged `json:"message_auto_delete_timer_changed,omitempty"`
	MigrateToChatID               int64                          `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID             int64                          `json:"migrate_from_chat_id,omitempty"`
	PinnedMessage                 *Message                       `json:"pinned_message,omitempty"`
	Invoice                       *Invoice                       `json:"invoice,omitempty"`
	SuccessfulPayment             *SuccessfulPayment             `json:"successful_payment,omitempty"`
}

type MessageAutoDeleteTimerChanged struct {
	MessageAutoDeleteTime int `json:"message_auto_delete_time"`
}

var rawMessageKeys = jsonKeys(RawMessage{})

// Message converts the flat form into an envelope and content variant.
// Content fields this package does not model are dropped; use
// Message.UnmarshalJSON to keep them in an UnknownContent.
func (r RawMessage) Message() Message {
	m := Message{
		ID:                   r.MessageID,
		From:                 r.From,
		SenderChat:           r.SenderChat,
		Date:                 r.Date,
		Chat:                 r.Chat,
		ForwardFrom:          r.ForwardFrom,
		ForwardFromChat:      r.ForwardFromChat,
		ForwardFromMessageID: r.ForwardFromMessageID,
		ForwardSignature:     r.ForwardSignature,
		ForwardSenderName:    r.ForwardSenderName,
		ForwardDate:          r.ForwardDate,
		ReplyToMessage:       r.ReplyToMessage,
		ViaBot:               r.ViaBot,
		EditDate:             r.EditDate,
		MediaGroupID:         r.MediaGroupID,
		AuthorSignature:      r.AuthorSignature,
		ReplyMarkup:          r.ReplyMarkup,
	}
	if content, ok := r.content(); ok {
		m.Content = content
	} else {
		m.Content = UnknownContent{}
	}
	return m
}

// Raw flattens the message back to its wire form.
func (m Message) Raw() RawMessage {
	r := RawMessage{
		MessageID:            m.ID,
		From:                 m.From,
		SenderChat:           m.SenderChat,
		Date:                 m.Date,
		Chat:                 m.Chat,
		ForwardFrom:          m.ForwardFrom,
		ForwardFromChat:      m.ForwardFromChat,
		ForwardFromMessageID: m.ForwardFromMessageID,
		ForwardSignature:     m.ForwardSignature,
		ForwardSenderName:    m.ForwardSenderName,
		ForwardDate:          m.ForwardDate,
		ReplyToMessage:       m.ReplyToMessage,
		ViaBot:               m.ViaBot,
		EditDate:             m.EditDate,
		MediaGroupID:         m.MediaGroupID,
		AuthorSignature:      m.AuthorSignature,
		ReplyMarkup:          m.ReplyMarkup,
	}
	if m.Content != nil {
		m.Content.fill(&r)
	}
	return r
}

// Text returns the text of a text message, or "" for any other content.
func (m Message) Text() string {
	if t, ok := m.Content.(TextContent); ok {
		return t.Text
	}
	return ""
}

func (m Message) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(m.Raw())
	if err != nil {
		return nil, err
	}
	unknown, ok := m.Content.(UnknownContent)
	if !ok || len(unknown.Fields) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range unknown.Fields {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	fields, err := objectKeys(data)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if err := requireKeys("message", fields, "message_id", "date", "chat"); err != nil {
		return err
	}
	var raw RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	*m = raw.Message()
	if _, ok := m.Content.(UnknownContent); ok {
		extra := make(map[string]json.RawMessage)
		for k, v := range fields {
			if _, known := rawMessageKeys[k]; !known {
				extra[k] = v
			}
		}
		if len(extra) > 0 {
			m.Content = UnknownContent{Fields: extra}
		}
	}
	return nil
}
