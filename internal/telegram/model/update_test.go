package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testMessage = `{"message_id":5,"date":1600000000,"chat":{"id":1,"type":"private","first_name":"A"},"text":"hi"}`

func TestUpdateExclusivity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind string
		wantErr  error
	}{
		{
			name:    "only update_id",
			input:   `{"update_id":10}`,
			wantErr: ErrEmptyUpdate,
		},
		{
			name:    "null content",
			input:   `{"update_id":10,"message":null}`,
			wantErr: ErrEmptyUpdate,
		},
		{
			name:     "message",
			input:    `{"update_id":10,"message":` + testMessage + `}`,
			wantKind: "message",
		},
		{
			name:     "edited message next to null message",
			input:    `{"update_id":10,"message":null,"edited_message":` + testMessage + `}`,
			wantKind: "edited_message",
		},
		{
			name:     "callback query",
			input:    `{"update_id":10,"callback_query":{"id":"q","from":{"id":1,"is_bot":false,"first_name":"A"},"chat_instance":"ci","data":"x"}}`,
			wantKind: "callback_query",
		},
		{
			name:     "poll",
			input:    `{"update_id":10,"poll":{"id":"p","question":"?","options":[],"total_voter_count":0,"is_closed":false,"is_anonymous":true,"type":"regular","allows_multiple_answers":false}}`,
			wantKind: "poll",
		},
		{
			name:    "two known fields",
			input:   `{"update_id":10,"message":` + testMessage + `,"channel_post":` + testMessage + `}`,
			wantErr: ErrAmbiguousUpdate,
		},
		{
			name:     "unknown field only",
			input:    `{"update_id":10,"message_reaction":{"x":1}}`,
			wantKind: "message_reaction",
		},
		{
			name:     "known field wins over unknown",
			input:    `{"update_id":10,"message":` + testMessage + `,"business_connection":{}}`,
			wantKind: "message",
		},
		{
			name:    "missing update_id",
			input:   `{"message":` + testMessage + `}`,
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u Update
			err := json.Unmarshal([]byte(tt.input), &u)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if u.ID != 10 {
				t.Errorf("ID = %d, want 10", u.ID)
			}
			if got := u.Content.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", got, tt.wantKind)
			}
		})
	}
}

func TestUpdateAmbiguousNamesFields(t *testing.T) {
	input := `{"update_id":1,"poll_answer":{"poll_id":"p","user":{"id":1,"is_bot":false,"first_name":"A"},"option_ids":[0]},"message":` + testMessage + `}`
	var u Update
	err := json.Unmarshal([]byte(input), &u)
	if !errors.Is(err, ErrAmbiguousUpdate) {
		t.Fatalf("Unmarshal() error = %v, want ErrAmbiguousUpdate", err)
	}
	if !strings.Contains(err.Error(), "message, poll_answer") {
		t.Errorf("error %q does not name the fields in order", err)
	}
}

func TestUpdateMessageVariant(t *testing.T) {
	var u Update
	if err := json.Unmarshal([]byte(`{"update_id":3,"message":`+testMessage+`}`), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	mu, ok := u.Content.(MessageUpdate)
	if !ok {
		t.Fatalf("Content = %T, want MessageUpdate", u.Content)
	}
	if mu.Message.Text() != "hi" {
		t.Errorf("Text() = %q, want hi", mu.Message.Text())
	}
	if mu.Message.Chat.ID() != 1 {
		t.Errorf("Chat.ID() = %d, want 1", mu.Message.Chat.ID())
	}
	if !mu.Message.Date.Equal(Unix(1600000000)) {
		t.Errorf("Date = %v", mu.Message.Date)
	}
	msg, ok := u.Message()
	if !ok || msg.ID != 5 {
		t.Errorf("Message() = (%d, %v), want (5, true)", msg.ID, ok)
	}
}

func TestUpdateNestedDecodeError(t *testing.T) {
	var u Update
	err := json.Unmarshal([]byte(`{"update_id":3,"message":{"message_id":1,"date":1}}`), &u)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Unmarshal() error = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), `"chat"`) {
		t.Errorf("error %q does not name the missing field", err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	user := User{ID: 1, FirstName: "A"}
	chat := Chat{Variant: &SuperGroupChat{ID: -100, Title: "S"}}
	msg := Message{ID: 1, Date: Unix(1600000000), Chat: chat, From: &user, Content: TextContent{Text: "x"}}
	updates := []Update{
		{ID: 1, Content: MessageUpdate{Message: msg}},
		{ID: 2, Content: EditedChannelPostUpdate{Message: msg}},
		{ID: 3, Content: InlineQueryUpdate{Query: InlineQuery{ID: "i", From: user, Query: "q"}}},
		{ID: 4, Content: ChosenInlineResultUpdate{Result: ChosenInlineResult{ResultID: "r", From: user}}},
		{ID: 5, Content: ShippingQueryUpdate{Query: ShippingQuery{ID: "s", From: user, InvoicePayload: "p"}}},
		{ID: 6, Content: PreCheckoutQueryUpdate{Query: PreCheckoutQuery{ID: "c", From: user, Currency: "EUR", TotalAmount: 100}}},
		{ID: 7, Content: PollAnswerUpdate{Answer: PollAnswer{PollID: "p", User: user, OptionIDs: []int{1}}}},
		{ID: 8, Content: MyChatMemberUpdate{Change: ChatMemberUpdated{
			Chat: chat, From: user, Date: Unix(1600000001),
			OldChatMember: ChatMember{User: user, Status: LeftStatus{}},
			NewChatMember: ChatMember{User: user, Status: AdministratorStatus{CanPinMessages: true}},
		}}},
		{ID: 9, Content: UnknownUpdate{Fields: map[string]json.RawMessage{"chat_boost": json.RawMessage(`{"a":1}`)}}},
	}

	for _, u := range updates {
		t.Run(u.Content.Kind(), func(t *testing.T) {
			data, err := json.Marshal(u)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var got Update
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", data, err)
			}
			if diff := cmp.Diff(u, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateKinds(t *testing.T) {
	kinds := UpdateKinds()
	if len(kinds) != 13 {
		t.Fatalf("len(UpdateKinds()) = %d, want 13", len(kinds))
	}
	if kinds[0] != "callback_query" {
		t.Errorf("UpdateKinds()[0] = %q, want sorted order", kinds[0])
	}
}
