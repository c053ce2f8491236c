package telegram

import (
	"encoding/json"
	"fmt"

	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// SendMessage posts text to a chat. An empty Entities slice encodes like a
// nil one.
type SendMessage struct {
	ChatID                   int64                 `json:"chat_id"`
	Text                     string                `json:"text"`
	ParseMode                *model.ParseMode      `json:"parse_mode,omitempty"`
	Entities                 []model.MessageEntity `json:"entities,omitempty"`
	DisableWebPagePreview    *bool                 `json:"disable_web_page_preview,omitempty"`
	DisableNotification      *bool                 `json:"disable_notification,omitempty"`
	ReplyToMessageID         *int64                `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply *bool                 `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              model.ReplyMarkup     `json:"reply_markup,omitempty"`
}

func (m *SendMessage) UnmarshalJSON(data []byte) error {
	type plain SendMessage
	var raw struct {
		plain
		ReplyMarkup json.RawMessage `json:"reply_markup"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode sendMessage: %w", err)
	}
	*m = SendMessage(raw.plain)
	if len(raw.ReplyMarkup) == 0 || string(raw.ReplyMarkup) == "null" {
		return nil
	}
	markup, err := model.DecodeReplyMarkup(raw.ReplyMarkup)
	if err != nil {
		return err
	}
	m.ReplyMarkup = markup
	return nil
}

type GetUpdates struct {
	Offset *int64 `json:"offset,omitempty"`
	// 1-100, defaults to 100.
	Limit *int `json:"limit,omitempty"`
	// Long polling timeout in seconds.
	Timeout        *int     `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

type SetWebhook struct {
	URL                string   `json:"url"`
	MaxConnections     *int     `json:"max_connections,omitempty"`
	AllowedUpdates     []string `json:"allowed_updates,omitempty"`
	DropPendingUpdates *bool    `json:"drop_pending_updates,omitempty"`
	// Sent back in the X-Telegram-Bot-Api-Secret-Token header of every
	// webhook request.
	SecretToken *string `json:"secret_token,omitempty"`
}

type DeleteWebhook struct {
	DropPendingUpdates *bool `json:"drop_pending_updates,omitempty"`
}

type GetFile struct {
	FileID string `json:"file_id"`
}

type GetUserProfilePhotos struct {
	UserID int64 `json:"user_id"`
	Offset *int  `json:"offset,omitempty"`
	Limit  *int  `json:"limit,omitempty"`
}

type AnswerCallbackQuery struct {
	CallbackQueryID string  `json:"callback_query_id"`
	Text            *string `json:"text,omitempty"`
	ShowAlert       *bool   `json:"show_alert,omitempty"`
	URL             *string `json:"url,omitempty"`
	CacheTime       *int    `json:"cache_time,omitempty"`
}

func (SendMessage) Method() string          { return "sendMessage" }
func (GetUpdates) Method() string           { return "getUpdates" }
func (SetWebhook) Method() string           { return "setWebhook" }
func (DeleteWebhook) Method() string        { return "deleteWebhook" }
func (GetFile) Method() string              { return "getFile" }
func (GetUserProfilePhotos) Method() string { return "getUserProfilePhotos" }
func (AnswerCallbackQuery) Method() string  { return "answerCallbackQuery" }

// NewReply answers msg in its own chat, threaded under it.
func NewReply(msg model.Message, text string) SendMessage {
	return SendMessage{
		ChatID:           msg.Chat.ID(),
		Text:             text,
		ReplyToMessageID: Ptr(msg.ID),
	}
}
