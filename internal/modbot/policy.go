package modbot

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy holds the defaults the bot applies when a command leaves them out.
type Policy struct {
	BanDays     int           `yaml:"ban_days"`
	MuteMinutes int           `yaml:"mute_minutes"`
	PinSilently bool          `yaml:"pin_silently"`
	Invite      InvitePolicy  `yaml:"invite"`
	Promote     PromoteRights `yaml:"promote"`
	// Welcome greets new members; {name} is replaced with each member's name.
	// Empty disables greetings.
	Welcome string `yaml:"welcome"`
}

type InvitePolicy struct {
	Expiry      time.Duration `yaml:"expiry"`
	MemberLimit int           `yaml:"member_limit"`
}

// PromoteRights lists the privileges /promote grants. Rights left out of
// the file are not sent, so Telegram keeps its own defaults for them.
type PromoteRights struct {
	CanManageChat       *bool `yaml:"can_manage_chat"`
	CanDeleteMessages   *bool `yaml:"can_delete_messages"`
	CanManageVoiceChats *bool `yaml:"can_manage_voice_chats"`
	CanRestrictMembers  *bool `yaml:"can_restrict_members"`
	CanPromoteMembers   *bool `yaml:"can_promote_members"`
	CanChangeInfo       *bool `yaml:"can_change_info"`
	CanInviteUsers      *bool `yaml:"can_invite_users"`
	CanPinMessages      *bool `yaml:"can_pin_messages"`
}

func DefaultPolicy() Policy {
	yes := true
	return Policy{
		MuteMinutes: 60,
		Invite: InvitePolicy{
			Expiry: 24 * time.Hour,
		},
		Promote: PromoteRights{
			CanDeleteMessages:  &yes,
			CanRestrictMembers: &yes,
			CanPinMessages:     &yes,
		},
		Welcome: "Welcome, {name}! Please read the pinned rules.",
	}
}

// LoadPolicy reads a YAML policy from path on top of DefaultPolicy. An empty
// path returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if policy.BanDays < 0 || policy.MuteMinutes < 0 || policy.Invite.MemberLimit < 0 {
		return policy, fmt.Errorf("parse policy %s: negative values are not allowed", path)
	}
	return policy, nil
}
