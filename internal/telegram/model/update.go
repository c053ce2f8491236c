package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UpdateContent is the single event an update carries. Implemented by the
// *Update types of this package.
type UpdateContent interface {
	// Kind is the wire field the event was delivered in.
	Kind() string
	payload() any
}

// Update is one incoming event. Exactly one content field is expected per
// update: none at all is ErrEmptyUpdate, two or more known fields is
// ErrAmbiguousUpdate, and only unrecognized fields yield an UnknownUpdate.
type Update struct {
	ID      int64
	Content UpdateContent
}

type MessageUpdate struct{ Message Message }
type EditedMessageUpdate struct{ Message Message }
type ChannelPostUpdate struct{ Message Message }
type EditedChannelPostUpdate struct{ Message Message }
type InlineQueryUpdate struct{ Query InlineQuery }
type ChosenInlineResultUpdate struct{ Result ChosenInlineResult }
type CallbackQueryUpdate struct{ Query CallbackQuery }
type ShippingQueryUpdate struct{ Query ShippingQuery }
type PreCheckoutQueryUpdate struct{ Query PreCheckoutQuery }
type PollUpdate struct{ Poll Poll }
type PollAnswerUpdate struct{ Answer PollAnswer }

// MyChatMemberUpdate reports a change of the bot's own membership.
type MyChatMemberUpdate struct{ Change ChatMemberUpdated }

// ChatMemberUpdate reports a change of another member's status.
type ChatMemberUpdate struct{ Change ChatMemberUpdated }

// UnknownUpdate carries the fields of an update of a kind this package does
// not know, keyed by wire name.
type UnknownUpdate struct {
	Fields map[string]json.RawMessage
}

func (MessageUpdate) Kind() string            { return "message" }
func (EditedMessageUpdate) Kind() string      { return "edited_message" }
func (ChannelPostUpdate) Kind() string        { return "channel_post" }
func (EditedChannelPostUpdate) Kind() string  { return "edited_channel_post" }
func (InlineQueryUpdate) Kind() string        { return "inline_query" }
func (ChosenInlineResultUpdate) Kind() string { return "chosen_inline_result" }
func (CallbackQueryUpdate) Kind() string      { return "callback_query" }
func (ShippingQueryUpdate) Kind() string      { return "shipping_query" }
func (PreCheckoutQueryUpdate) Kind() string   { return "pre_checkout_query" }
func (PollUpdate) Kind() string               { return "poll" }
func (PollAnswerUpdate) Kind() string         { return "poll_answer" }
func (MyChatMemberUpdate) Kind() string       { return "my_chat_member" }
func (ChatMemberUpdate) Kind() string         { return "chat_member" }

func (u UnknownUpdate) Kind() string {
	return strings.Join(sortedKeys(u.Fields), ",")
}

func (u MessageUpdate) payload() any            { return u.Message }
func (u EditedMessageUpdate) payload() any      { return u.Message }
func (u ChannelPostUpdate) payload() any        { return u.Message }
func (u EditedChannelPostUpdate) payload() any  { return u.Message }
func (u InlineQueryUpdate) payload() any        { return u.Query }
func (u ChosenInlineResultUpdate) payload() any { return u.Result }
func (u CallbackQueryUpdate) payload() any      { return u.Query }
func (u ShippingQueryUpdate) payload() any      { return u.Query }
func (u PreCheckoutQueryUpdate) payload() any   { return u.Query }
func (u PollUpdate) payload() any               { return u.Poll }
func (u PollAnswerUpdate) payload() any         { return u.Answer }
func (u MyChatMemberUpdate) payload() any       { return u.Change }
func (u ChatMemberUpdate) payload() any         { return u.Change }
func (u UnknownUpdate) payload() any            { return u.Fields }

type updateDecoder func(data json.RawMessage) (UpdateContent, error)

func decodeAs[T any](wrap func(T) UpdateContent) updateDecoder {
	return func(data json.RawMessage) (UpdateContent, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return wrap(v), nil
	}
}

var updateDecoders = map[string]updateDecoder{
	"message":              decodeAs(func(m Message) UpdateContent { return MessageUpdate{m} }),
	"edited_message":       decodeAs(func(m Message) UpdateContent { return EditedMessageUpdate{m} }),
	"channel_post":         decodeAs(func(m Message) UpdateContent { return ChannelPostUpdate{m} }),
	"edited_channel_post":  decodeAs(func(m Message) UpdateContent { return EditedChannelPostUpdate{m} }),
	"inline_query":         decodeAs(func(q InlineQuery) UpdateContent { return InlineQueryUpdate{q} }),
	"chosen_inline_result": decodeAs(func(r ChosenInlineResult) UpdateContent { return ChosenInlineResultUpdate{r} }),
	"callback_query":       decodeAs(func(q CallbackQuery) UpdateContent { return CallbackQueryUpdate{q} }),
	"shipping_query":       decodeAs(func(q ShippingQuery) UpdateContent { return ShippingQueryUpdate{q} }),
	"pre_checkout_query":   decodeAs(func(q PreCheckoutQuery) UpdateContent { return PreCheckoutQueryUpdate{q} }),
	"poll":                 decodeAs(func(p Poll) UpdateContent { return PollUpdate{p} }),
	"poll_answer":          decodeAs(func(a PollAnswer) UpdateContent { return PollAnswerUpdate{a} }),
	"my_chat_member":       decodeAs(func(c ChatMemberUpdated) UpdateContent { return MyChatMemberUpdate{c} }),
	"chat_member":          decodeAs(func(c ChatMemberUpdated) UpdateContent { return ChatMemberUpdate{c} }),
}

// UpdateKinds lists every update kind with a dedicated variant, as accepted
// by the allowed_updates parameter.
func UpdateKinds() []string {
	return sortedKeys(updateDecoders)
}

// Message returns the message carried by message, edited_message,
// channel_post and edited_channel_post updates.
func (u Update) Message() (Message, bool) {
	switch c := u.Content.(type) {
	case MessageUpdate:
		return c.Message, true
	case EditedMessageUpdate:
		return c.Message, true
	case ChannelPostUpdate:
		return c.Message, true
	case EditedChannelPostUpdate:
		return c.Message, true
	}
	return Message{}, false
}

func (u Update) MarshalJSON() ([]byte, error) {
	out := map[string]any{"update_id": u.ID}
	switch c := u.Content.(type) {
	case nil:
	case UnknownUpdate:
		for k, v := range c.Fields {
			out[k] = v
		}
	default:
		out[c.Kind()] = c.payload()
	}
	return json.Marshal(out)
}

func (u *Update) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	fields, err := objectKeys(data)
	if err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	rawID, ok := fields["update_id"]
	if !ok {
		return missingField("update", "update_id")
	}
	var id int64
	if err := json.Unmarshal(rawID, &id); err != nil {
		return fmt.Errorf("decode update: update_id: %w", err)
	}
	delete(fields, "update_id")

	var known []string
	for _, k := range sortedKeys(fields) {
		if _, ok := updateDecoders[k]; ok {
			known = append(known, k)
		}
	}

	switch {
	case len(fields) == 0:
		return fmt.Errorf("decode update %d: %w", id, ErrEmptyUpdate)
	case len(known) > 1:
		return fmt.Errorf("decode update %d: %w: %s", id, ErrAmbiguousUpdate, strings.Join(known, ", "))
	case len(known) == 0:
		*u = Update{ID: id, Content: UnknownUpdate{Fields: fields}}
		return nil
	}

	content, err := updateDecoders[known[0]](fields[known[0]])
	if err != nil {
		return fmt.Errorf("decode update %d: %s: %w", id, known[0], err)
	}
	*u = Update{ID: id, Content: content}
	return nil
}
