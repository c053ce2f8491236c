package model

import "encoding/json"

// MessageContent is what a message carries: text, one kind of media, or a
// service event. Implemented by the *Content types of this package.
type MessageContent interface {
	fill(r *RawMessage)
}

type TextContent struct {
	Text     string
	Entities []MessageEntity
}

type AnimationContent struct {
	Animation       Animation
	Caption         string
	CaptionEntities []MessageEntity
}

type AudioContent struct {
	Audio           Audio
	Caption         string
	CaptionEntities []MessageEntity
}

type DocumentContent struct {
	Document        Document
	Caption         string
	CaptionEntities []MessageEntity
}

type PhotoContent struct {
	Photo           []PhotoSize
	Caption         string
	CaptionEntities []MessageEntity
}

type StickerContent struct {
	Sticker Sticker
}

type VideoContent struct {
	Video           Video
	Caption         string
	CaptionEntities []MessageEntity
}

type VideoNoteContent struct {
	VideoNote VideoNote
}

type VoiceContent struct {
	Voice           Voice
	Caption         string
	CaptionEntities []MessageEntity
}

type ContactContent struct {
	Contact Contact
}

type DiceContent struct {
	Dice Dice
}

type LocationContent struct {
	Location Location
}

type VenueContent struct {
	Venue Venue
}

type PollContent struct {
	Poll Poll
}

type NewChatMembersContent struct {
	Members []User
}

type LeftChatMemberContent struct {
	Member User
}

type NewChatTitleContent struct {
	Title string
}

type NewChatPhotoContent struct {
	Photo []PhotoSize
}

type DeleteChatPhotoContent struct{}

type GroupChatCreatedContent struct{}

type SupergroupChatCreatedContent struct{}

type ChannelChatCreatedContent struct{}

type AutoDeleteTimerChangedContent struct {
	MessageAutoDeleteTime int
}

// MigrateToChatContent is posted in a group that became a supergroup.
type MigrateToChatContent struct {
	ChatID int64
}

// MigrateFromChatContent is posted in the supergroup a group became.
type MigrateFromChatContent struct {
	ChatID int64
}

type PinnedMessageContent struct {
	Message Message
}

type InvoiceContent struct {
	Invoice Invoice
}

type SuccessfulPaymentContent struct {
	Payment SuccessfulPayment
}

// UnknownContent is a message with no content field this package knows.
// Fields holds the unrecognized members of the wire object.
type UnknownContent struct {
	Fields map[string]json.RawMessage
}

// contentDecoders is ordered by precedence. Telegram sends animation
// together with document, and venue together with location, so the more
// specific field comes first.
var contentDecoders = []func(r *RawMessage) (MessageContent, bool){
	func(r *RawMessage) (MessageContent, bool) {
		return TextContent{Text: r.Text, Entities: r.Entities}, r.Text != ""
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Animation == nil {
			return nil, false
		}
		return AnimationContent{Animation: *r.Animation, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Audio == nil {
			return nil, false
		}
		return AudioContent{Audio: *r.Audio, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Document == nil {
			return nil, false
		}
		return DocumentContent{Document: *r.Document, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		return PhotoContent{Photo: r.Photo, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, len(r.Photo) > 0
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Sticker == nil {
			return nil, false
		}
		return StickerContent{Sticker: *r.Sticker}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Video == nil {
			return nil, false
		}
		return VideoContent{Video: *r.Video, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.VideoNote == nil {
			return nil, false
		}
		return VideoNoteContent{VideoNote: *r.VideoNote}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Voice == nil {
			return nil, false
		}
		return VoiceContent{Voice: *r.Voice, Caption: r.Caption, CaptionEntities: r.CaptionEntities}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Contact == nil {
			return nil, false
		}
		return ContactContent{Contact: *r.Contact}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Dice == nil {
			return nil, false
		}
		return DiceContent{Dice: *r.Dice}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Venue == nil {
			return nil, false
		}
		return VenueContent{Venue: *r.Venue}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Location == nil {
			return nil, false
		}
		return LocationContent{Location: *r.Location}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Poll == nil {
			return nil, false
		}
		return PollContent{Poll: *r.Poll}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		return NewChatMembersContent{Members: r.NewChatMembers}, len(r.NewChatMembers) > 0
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.LeftChatMember == nil {
			return nil, false
		}
		return LeftChatMemberContent{Member: *r.LeftChatMember}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		return NewChatTitleContent{Title: r.NewChatTitle}, r.NewChatTitle != ""
	},
	func(r *RawMessage) (MessageContent, bool) {
		return NewChatPhotoContent{Photo: r.NewChatPhoto}, len(r.NewChatPhoto) > 0
	},
	func(r *RawMessage) (MessageContent, bool) {
		return DeleteChatPhotoContent{}, r.DeleteChatPhoto
	},
	func(r *RawMessage) (MessageContent, bool) {
		return GroupChatCreatedContent{}, r.GroupChatCreated
	},
	func(r *RawMessage) (MessageContent, bool) {
		return SupergroupChatCreatedContent{}, r.SupergroupChatCreated
	},
	func(r *RawMessage) (MessageContent, bool) {
		return ChannelChatCreatedContent{}, r.ChannelChatCreated
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.MessageAutoDeleteTimerChanged == nil {
			return nil, false
		}
		return AutoDeleteTimerChangedContent{
			MessageAutoDeleteTime: r.MessageAutoDeleteTimerChanged.MessageAutoDeleteTime,
		}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		return MigrateToChatContent{ChatID: r.MigrateToChatID}, r.MigrateToChatID != 0
	},
	func(r *RawMessage) (MessageContent, bool) {
		return MigrateFromChatContent{ChatID: r.MigrateFromChatID}, r.MigrateFromChatID != 0
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.PinnedMessage == nil {
			return nil, false
		}
		return PinnedMessageContent{Message: *r.PinnedMessage}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.Invoice == nil {
			return nil, false
		}
		return InvoiceContent{Invoice: *r.Invoice}, true
	},
	func(r *RawMessage) (MessageContent, bool) {
		if r.SuccessfulPayment == nil {
			return nil, false
		}
		return SuccessfulPaymentContent{Payment: *r.SuccessfulPayment}, true
	},
}

func (r *RawMessage) content() (MessageContent, bool) {
	for _, decode := range contentDecoders {
		if c, ok := decode(r); ok {
			return c, true
		}
	}
	return nil, false
}

func (c TextContent) fill(r *RawMessage) {
	r.Text = c.Text
	r.Entities = c.Entities
}

func (c AnimationContent) fill(r *RawMessage) {
	a := c.Animation
	r.Animation = &a
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c AudioContent) fill(r *RawMessage) {
	a := c.Audio
	r.Audio = &a
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c DocumentContent) fill(r *RawMessage) {
	d := c.Document
	r.Document = &d
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c PhotoContent) fill(r *RawMessage) {
	r.Photo = c.Photo
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c StickerContent) fill(r *RawMessage) {
	s := c.Sticker
	r.Sticker = &s
}

func (c VideoContent) fill(r *RawMessage) {
	v := c.Video
	r.Video = &v
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c VideoNoteContent) fill(r *RawMessage) {
	v := c.VideoNote
	r.VideoNote = &v
}

func (c VoiceContent) fill(r *RawMessage) {
	v := c.Voice
	r.Voice = &v
	r.Caption = c.Caption
	r.CaptionEntities = c.CaptionEntities
}

func (c ContactContent) fill(r *RawMessage) {
	v := c.Contact
	r.Contact = &v
}

func (c DiceContent) fill(r *RawMessage) {
	v := c.Dice
	r.Dice = &v
}

// Venue messages also carry the venue location at the top level.
func (c VenueContent) fill(r *RawMessage) {
	v := c.Venue
	r.Venue = &v
	loc := v.Location
	r.Location = &loc
}

func (c LocationContent) fill(r *RawMessage) {
	v := c.Location
	r.Location = &v
}

func (c PollContent) fill(r *RawMessage) {
	v := c.Poll
	r.Poll = &v
}

func (c NewChatMembersContent) fill(r *RawMessage) { r.NewChatMembers = c.Members }

func (c LeftChatMemberContent) fill(r *RawMessage) {
	u := c.Member
	r.LeftChatMember = &u
}

func (c NewChatTitleContent) fill(r *RawMessage)        { r.NewChatTitle = c.Title }
func (c NewChatPhotoContent) fill(r *RawMessage)        { r.NewChatPhoto = c.Photo }
func (DeleteChatPhotoContent) fill(r *RawMessage)       { r.DeleteChatPhoto = true }
func (GroupChatCreatedContent) fill(r *RawMessage)      { r.GroupChatCreated = true }
func (SupergroupChatCreatedContent) fill(r *RawMessage) { r.SupergroupChatCreated = true }
func (ChannelChatCreatedContent) fill(r *RawMessage)    { r.ChannelChatCreated = true }
func (c MigrateToChatContent) fill(r *RawMessage)       { r.MigrateToChatID = c.ChatID }
func (c MigrateFromChatContent) fill(r *RawMessage)     { r.MigrateFromChatID = c.ChatID }
func (UnknownContent) fill(*RawMessage)                 {}

func (c AutoDeleteTimerChangedContent) fill(r *RawMessage) {
	r.MessageAutoDeleteTimerChanged = &MessageAutoDeleteTimerChanged{
		MessageAutoDeleteTime: c.MessageAutoDeleteTime,
	}
}

func (c PinnedMessageContent) fill(r *RawMessage) {
	m := c.Message
	r.PinnedMessage = &m
}

func (c InvoiceContent) fill(r *RawMessage) {
	v := c.Invoice
	r.Invoice = &v
}

func (c SuccessfulPaymentContent) fill(r *RawMessage) {
	v := c.Payment
	r.SuccessfulPayment = &v
}
