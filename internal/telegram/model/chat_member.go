package model

import (
	"encoding/json"
	"fmt"
)

// ChatMemberStatus is the "status" discriminant of a chat member.
type ChatMemberStatus string

const (
	StatusCreator       ChatMemberStatus = "creator"
	StatusAdministrator ChatMemberStatus = "administrator"
	StatusMember        ChatMemberStatus = "member"
	StatusRestricted    ChatMemberStatus = "restricted"
	StatusLeft          ChatMemberStatus = "left"
	StatusKicked        ChatMemberStatus = "kicked"
)

// MemberStatus is implemented by OwnerStatus, AdministratorStatus,
// RegularStatus, RestrictedStatus, LeftStatus, BannedStatus and
// UnknownStatus.
type MemberStatus interface {
	status() ChatMemberStatus
	fill(r *RawChatMember)
}

// ChatMember pairs a user with their status in one chat.
type ChatMember struct {
	User   User
	Status MemberStatus
}

type OwnerStatus struct {
	IsAnonymous bool
	CustomTitle string
}

type AdministratorStatus struct {
	CanBeEdited         bool
	IsAnonymous         bool
	CustomTitle         string
	CanManageChat       bool
	CanPostMessages     bool
	CanEditMessages     bool
	CanDeleteMessages   bool
	CanManageVoiceChats bool
	CanRestrictMembers  bool
	CanPromoteMembers   bool
	CanChangeInfo       bool
	CanInviteUsers      bool
	CanPinMessages      bool
}

type RegularStatus struct{}

type RestrictedStatus struct {
	IsMember              bool
	CanSendMessages       bool
	CanSendMediaMessages  bool
	CanSendPolls          bool
	CanSendOtherMessages  bool
	CanAddWebPagePreviews bool
	CanChangeInfo         bool
	CanInviteUsers        bool
	CanPinMessages        bool
	// UntilDate is nil when the restriction never expires.
	UntilDate *UnixTime
}

type LeftStatus struct{}

// BannedStatus is sent as "kicked" on the wire.
type BannedStatus struct {
	// UntilDate is nil when the ban never expires.
	UntilDate *UnixTime
}

// UnknownStatus keeps a member record with an unrecognized status.
type UnknownStatus struct {
	Raw RawChatMember
}

// RawChatMember is the flat wire form of a chat member.
type RawChatMember struct {
	User                  User             `json:"user"`
	Status                ChatMemberStatus `json:"status"`
	CustomTitle           string           `json:"custom_title,omitempty"`
	IsAnonymous           bool             `json:"is_anonymous,omitempty"`
	CanBeEdited           bool             `json:"can_be_edited,omitempty"`
	CanManageChat         bool             `json:"can_manage_chat,omitempty"`
	CanPostMessages       bool             `json:"can_post_messages,omitempty"`
	CanEditMessages       bool             `json:"can_edit_messages,omitempty"`
	CanDeleteMessages     bool             `json:"can_delete_messages,omitempty"`
	CanManageVoiceChats   bool             `json:"can_manage_voice_chats,omitempty"`
	CanRestrictMembers    bool             `json:"can_restrict_members,omitempty"`
	CanPromoteMembers     bool             `json:"can_promote_members,omitempty"`
	CanChangeInfo         bool             `json:"can_change_info,omitempty"`
	CanInviteUsers        bool             `json:"can_invite_users,omitempty"`
	CanPinMessages        bool             `json:"can_pin_messages,omitempty"`
	IsMember              bool             `json:"is_member,omitempty"`
	CanSendMessages       bool             `json:"can_send_messages,omitempty"`
	CanSendMediaMessages  bool             `json:"can_send_media_messages,omitempty"`
	CanSendPolls          bool             `json:"can_send_polls,omitempty"`
	CanSendOtherMessages  bool             `json:"can_send_other_messages,omitempty"`
	CanAddWebPagePreviews bool             `json:"can_add_web_page_previews,omitempty"`
	UntilDate             int64            `json:"until_date,omitempty"`
}

func (OwnerStatus) status() ChatMemberStatus         { return StatusCreator }
func (AdministratorStatus) status() ChatMemberStatus { return StatusAdministrator }
func (RegularStatus) status() ChatMemberStatus       { return StatusMember }
func (RestrictedStatus) status() ChatMemberStatus    { return StatusRestricted }
func (LeftStatus) status() ChatMemberStatus          { return StatusLeft }
func (BannedStatus) status() ChatMemberStatus        { return StatusKicked }
func (s UnknownStatus) status() ChatMemberStatus     { return s.Raw.Status }

func (s OwnerStatus) fill(r *RawChatMember) {
	r.IsAnonymous = s.IsAnonymous
	r.CustomTitle = s.CustomTitle
}

func (s AdministratorStatus) fill(r *RawChatMember) {
	r.CanBeEdited = s.CanBeEdited
	r.IsAnonymous = s.IsAnonymous
	r.CustomTitle = s.CustomTitle
	r.CanManageChat = s.CanManageChat
	r.CanPostMessages = s.CanPostMessages
	r.CanEditMessages = s.CanEditMessages
	r.CanDeleteMessages = s.CanDeleteMessages
	r.CanManageVoiceChats = s.CanManageVoiceChats
	r.CanRestrictMembers = s.CanRestrictMembers
	r.CanPromoteMembers = s.CanPromoteMembers
	r.CanChangeInfo = s.CanChangeInfo
	r.CanInviteUsers = s.CanInviteUsers
	r.CanPinMessages = s.CanPinMessages
}

func (RegularStatus) fill(*RawChatMember) {}

func (s RestrictedStatus) fill(r *RawChatMember) {
	r.IsMember = s.IsMember
	r.CanSendMessages = s.CanSendMessages
	r.CanSendMediaMessages = s.CanSendMediaMessages
	r.CanSendPolls = s.CanSendPolls
	r.CanSendOtherMessages = s.CanSendOtherMessages
	r.CanAddWebPagePreviews = s.CanAddWebPagePreviews
	r.CanChangeInfo = s.CanChangeInfo
	r.CanInviteUsers = s.CanInviteUsers
	r.CanPinMessages = s.CanPinMessages
	r.UntilDate = unixSeconds(s.UntilDate)
}

func (LeftStatus) fill(*RawChatMember) {}

func (s BannedStatus) fill(r *RawChatMember) {
	r.UntilDate = unixSeconds(s.UntilDate)
}

func (s UnknownStatus) fill(r *RawChatMember) {
	user := r.User
	*r = s.Raw
	r.User = user
}

// ChatMember selects the status variant named by r.Status.
func (r RawChatMember) ChatMember() ChatMember {
	m := ChatMember{User: r.User}
	switch r.Status {
	case StatusCreator:
		m.Status = OwnerStatus{IsAnonymous: r.IsAnonymous, CustomTitle: r.CustomTitle}
	case StatusAdministrator:
		m.Status = AdministratorStatus{
			CanBeEdited:         r.CanBeEdited,
			IsAnonymous:         r.IsAnonymous,
			CustomTitle:         r.CustomTitle,
			CanManageChat:       r.CanManageChat,
			CanPostMessages:     r.CanPostMessages,
			CanEditMessages:     r.CanEditMessages,
			CanDeleteMessages:   r.CanDeleteMessages,
			CanManageVoiceChats: r.CanManageVoiceChats,
			CanRestrictMembers:  r.CanRestrictMembers,
			CanPromoteMembers:   r.CanPromoteMembers,
			CanChangeInfo:       r.CanChangeInfo,
			CanInviteUsers:      r.CanInviteUsers,
			CanPinMessages:      r.CanPinMessages,
		}
	case StatusMember:
		m.Status = RegularStatus{}
	case StatusRestricted:
		m.Status = RestrictedStatus{
			IsMember:              r.IsMember,
			CanSendMessages:       r.CanSendMessages,
			CanSendMediaMessages:  r.CanSendMediaMessages,
			CanSendPolls:          r.CanSendPolls,
			CanSendOtherMessages:  r.CanSendOtherMessages,
			CanAddWebPagePreviews: r.CanAddWebPagePreviews,
			CanChangeInfo:         r.CanChangeInfo,
			CanInviteUsers:        r.CanInviteUsers,
			CanPinMessages:        r.CanPinMessages,
			UntilDate:             optionalUnix(r.UntilDate),
		}
	case StatusLeft:
		m.Status = LeftStatus{}
	case StatusKicked:
		m.Status = BannedStatus{UntilDate: optionalUnix(r.UntilDate)}
	default:
		m.Status = UnknownStatus{Raw: r}
	}
	return m
}

// Raw flattens the member back to its wire form.
func (m ChatMember) Raw() RawChatMember {
	r := RawChatMember{User: m.User}
	if m.Status != nil {
		m.Status.fill(&r)
		r.Status = m.Status.status()
	}
	return r
}

// StatusKind returns the wire discriminant, including unrecognized ones.
func (m ChatMember) StatusKind() ChatMemberStatus {
	if m.Status == nil {
		return ""
	}
	return m.Status.status()
}

// IsAdmin reports whether the member is the owner or an administrator.
func (m ChatMember) IsAdmin() bool {
	switch m.Status.(type) {
	case OwnerStatus, AdministratorStatus:
		return true
	}
	return false
}

// CanRestrict reports whether the member may ban and mute others.
func (m ChatMember) CanRestrict() bool {
	switch s := m.Status.(type) {
	case OwnerStatus:
		return true
	case AdministratorStatus:
		return s.CanRestrictMembers
	}
	return false
}

// InChat reports whether the user currently belongs to the chat.
func (m ChatMember) InChat() bool {
	switch s := m.Status.(type) {
	case OwnerStatus, AdministratorStatus, RegularStatus:
		return true
	case RestrictedStatus:
		return s.IsMember
	}
	return false
}

func (m ChatMember) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Raw())
}

func (m *ChatMember) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	fields, err := objectKeys(data)
	if err != nil {
		return fmt.Errorf("decode chat member: %w", err)
	}
	if err := requireKeys("chat member", fields, "user"); err != nil {
		return err
	}
	if _, ok := fields["status"]; !ok {
		return fmt.Errorf("decode chat member: %w \"status\"", ErrMissingDiscriminant)
	}
	var raw RawChatMember
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode chat member: %w", err)
	}
	*m = raw.ChatMember()
	return nil
}

// ChatMemberUpdated is delivered when a member's status changes.
type ChatMemberUpdated struct {
	Chat          Chat            `json:"chat"`
	From          User            `json:"from"`
	Date          UnixTime        `json:"date"`
	OldChatMember ChatMember      `json:"old_chat_member"`
	NewChatMember ChatMember      `json:"new_chat_member"`
	InviteLink    *ChatInviteLink `json:"invite_link,omitempty"`
}
