package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/naseer2426/mod-bot/internal/telegram/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRecord is a chat the bot has seen a message in.
type ChatRecord struct {
	ChatID    int64          `gorm:"primaryKey;autoIncrement:false"`
	Type      model.ChatType `gorm:"size:32;not null"`
	Title     string
	Username  string
	FirstSeen time.Time `gorm:"not null"`
	LastSeen  time.Time `gorm:"not null;index"`
}

func (ChatRecord) TableName() string {
	return "chats"
}

// NewChatRecord flattens chat into a record seen at now.
func NewChatRecord(chat model.Chat, now time.Time) ChatRecord {
	raw := chat.Raw()
	return ChatRecord{
		ChatID:    raw.ID,
		Type:      raw.Type,
		Title:     chat.Name(),
		Username:  raw.Username,
		FirstSeen: now,
		LastSeen:  now,
	}
}

type ChatRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db, now: time.Now}
}

// Upsert inserts chat or refreshes its name and last_seen, keeping first_seen.
func (r *ChatRepository) Upsert(chat model.Chat) error {
	record := NewChatRecord(chat, r.now().UTC())
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "title", "username", "last_seen"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("upsert chat %d: %w", record.ChatID, err)
	}
	return nil
}

func (r *ChatRepository) Get(chatID int64) (ChatRecord, error) {
	var record ChatRecord
	err := r.db.First(&record, "chat_id = ?", chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, fmt.Errorf("get chat %d: %w", chatID, ErrChatNotFound)
	}
	if err != nil {
		return record, fmt.Errorf("get chat %d: %w", chatID, err)
	}
	return record, nil
}

// List returns every recorded chat, most recently active first.
func (r *ChatRepository) List() ([]ChatRecord, error) {
	var records []ChatRecord
	if err := r.db.Order("last_seen desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return records, nil
}
