package model

import (
	"encoding/json"
	"fmt"
)

// ReplyMarkup is implemented by InlineKeyboardMarkup, ReplyKeyboardMarkup,
// ReplyKeyboardRemove and ForceReply.
type ReplyMarkup interface {
	replyMarkup()
}

func (InlineKeyboardMarkup) replyMarkup() {}
func (ReplyKeyboardMarkup) replyMarkup()  {}
func (ReplyKeyboardRemove) replyMarkup()  {}
func (ForceReply) replyMarkup()           {}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton must have exactly one of the optional fields set.
type InlineKeyboardButton struct {
	Text                         string  `json:"text"`
	URL                          string  `json:"url,omitempty"`
	CallbackData                 string  `json:"callback_data,omitempty"`
	SwitchInlineQuery            *string `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat *string `json:"switch_inline_query_current_chat,omitempty"`
	Pay                          bool    `json:"pay,omitempty"`
}

// ReplyKeyboardMarkup replaces the user's keyboard with custom buttons.
type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`
}

type KeyboardButton struct {
	Text            string                  `json:"text"`
	RequestContact  bool                    `json:"request_contact,omitempty"`
	RequestLocation bool                    `json:"request_location,omitempty"`
	RequestPoll     *KeyboardButtonPollType `json:"request_poll,omitempty"`
}

// KeyboardButtonPollType restricts the poll a button creates. An empty Type
// allows any.
type KeyboardButtonPollType struct {
	Type PollType `json:"type,omitempty"`
}

// ReplyKeyboardRemove hides a keyboard sent with ReplyKeyboardMarkup.
type ReplyKeyboardRemove struct {
	Selective bool `json:"selective,omitempty"`
}

func (r ReplyKeyboardRemove) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RemoveKeyboard bool `json:"remove_keyboard"`
		Selective      bool `json:"selective,omitempty"`
	}{true, r.Selective})
}

// ForceReply makes clients show a reply interface to the user.
type ForceReply struct {
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`
}

func (f ForceReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ForceReply            bool   `json:"force_reply"`
		InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
		Selective             bool   `json:"selective,omitempty"`
	}{true, f.InputFieldPlaceholder, f.Selective})
}

// DecodeReplyMarkup picks the markup kind by its distinguishing member:
// inline_keyboard, keyboard, remove_keyboard or force_reply.
func DecodeReplyMarkup(data []byte) (ReplyMarkup, error) {
	fields, err := objectKeys(data)
	if err != nil {
		return nil, fmt.Errorf("decode reply markup: %w", err)
	}
	var (
		markup ReplyMarkup
		found  []string
	)
	for _, key := range []string{"inline_keyboard", "keyboard", "remove_keyboard", "force_reply"} {
		if _, ok := fields[key]; ok {
			found = append(found, key)
		}
	}
	if len(found) != 1 {
		return nil, fmt.Errorf("decode reply markup: %w: found %v", ErrMissingDiscriminant, found)
	}
	switch found[0] {
	case "inline_keyboard":
		var m InlineKeyboardMarkup
		err = json.Unmarshal(data, &m)
		markup = m
	case "keyboard":
		var m ReplyKeyboardMarkup
		err = json.Unmarshal(data, &m)
		markup = m
	case "remove_keyboard":
		var m ReplyKeyboardRemove
		err = json.Unmarshal(data, &m)
		markup = m
	case "force_reply":
		var m ForceReply
		err = json.Unmarshal(data, &m)
		markup = m
	}
	if err != nil {
		return nil, fmt.Errorf("decode reply markup: %w", err)
	}
	return markup, nil
}
