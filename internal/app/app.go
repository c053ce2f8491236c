// Package app assembles the moderation bot from the environment, for both
// the webhook server and tgctl poll.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/naseer2426/mod-bot/internal/config"
	"github.com/naseer2426/mod-bot/internal/db"
	"github.com/naseer2426/mod-bot/internal/modbot"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// NewModBot loads the policy, asks Telegram who the bot is and, when
// DATABASE_URL is set, migrates and attaches the chat registry.
func NewModBot(ctx context.Context, cfg *config.EnvConfig, api *telegram.TelegramAPI) (*modbot.Bot, model.User, error) {
	policy, err := modbot.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return nil, model.User{}, err
	}

	me, err := api.GetMe(ctx)
	if err != nil {
		return nil, model.User{}, fmt.Errorf("getMe: %w", err)
	}

	var chats modbot.ChatStore
	if cfg.DatabaseURL != "" {
		db.AutoMigrate()
		chats = db.NewChatRepository(db.GetDB())
	} else {
		log.Printf("app: DATABASE_URL is not set, chats will not be recorded")
	}

	return modbot.NewBot(api, policy, chats, me.Username), me, nil
}
