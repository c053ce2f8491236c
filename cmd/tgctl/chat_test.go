package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
	"github.com/spf13/pflag"
)

func TestPromoteRequest(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantJSON string
	}{
		{
			name:     "no flags sends only ids",
			argv:     []string{"--", "-100", "42"},
			wantJSON: `{"chat_id":-100,"user_id":42}`,
		},
		{
			name:     "granted rights",
			argv:     []string{"--can-pin-messages", "--can-delete-messages", "--", "-100", "42"},
			wantJSON: `{"chat_id":-100,"user_id":42,"can_delete_messages":true,"can_pin_messages":true}`,
		},
		{
			name:     "explicit false is sent",
			argv:     []string{"--can-promote-members=false", "--anonymous", "--", "-100", "42"},
			wantJSON: `{"chat_id":-100,"user_id":42,"is_anonymous":true,"can_promote_members":false}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("promote", pflag.ContinueOnError)
			addPromoteFlags(flags)
			if err := flags.Parse(tt.argv); err != nil {
				t.Fatal(err)
			}
			req, err := promoteRequest(flags, flags.Args())
			if err != nil {
				t.Fatalf("promoteRequest: %v", err)
			}
			got, err := json.Marshal(req)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("request = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

func TestKickRequest(t *testing.T) {
	now := time.Unix(1700000000, 0)
	week := model.Unix(1700000000 + 7*24*3600)

	tests := []struct {
		name string
		argv []string
		want telegram.KickChatMember
	}{
		{
			name: "forever",
			argv: []string{"--", "-100", "42"},
			want: telegram.KickChatMember{ChatID: -100, UserID: 42},
		},
		{
			name: "for a week with revoke",
			argv: []string{"--until", "168h", "--revoke", "--", "-100", "42"},
			want: telegram.KickChatMember{ChatID: -100, UserID: 42, UntilDate: &week, RevokeMessages: telegram.Ptr(true)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("kick", pflag.ContinueOnError)
			addKickFlags(flags)
			if err := flags.Parse(tt.argv); err != nil {
				t.Fatal(err)
			}
			got, err := kickRequest(flags, flags.Args(), now)
			if err != nil {
				t.Fatalf("kickRequest: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("kickRequest (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("@mods"); err == nil {
		t.Error("parseID(@mods) succeeded")
	}
	if id, err := parseID("-1001234"); err != nil || id != -1001234 {
		t.Errorf("parseID(-1001234) = %d, %v", id, err)
	}
}
