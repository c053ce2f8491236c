package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

// SecretHeader carries the secret_token given to setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update model.Update) (bool, error)
}

type TelegramWebhook struct {
	Bot UpdateHandler
	// Secret, when set, must match the SecretHeader of every request.
	Secret string
}

func (t *TelegramWebhook) TelegramWebhook(c *gin.Context) {
	requestID := requestid.Get(c)
	if !t.authorized(c) {
		log.Printf("telegram webhook: rejected request %s with a bad secret token", requestID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
		return
	}

	update, err := t.parseBody(c)
	if err != nil {
		log.Printf("telegram webhook: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := telegram.WithRequestID(c.Request.Context(), requestID)
	handled, err := t.Bot.HandleUpdate(ctx, update)
	if err != nil {
		log.Printf("telegram webhook: update %d failed: %v", update.ID, err)
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			if !apiErr.Temporary() {
				// Anything but 2xx makes Telegram deliver the update again,
				// and a refused call would be refused again.
				c.JSON(http.StatusOK, gin.H{"status": "refused", "error": apiErr.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to call telegram"})
		return
	}

	if !handled {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (t *TelegramWebhook) authorized(c *gin.Context) bool {
	if t.Secret == "" {
		return true
	}
	got := c.GetHeader(SecretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(t.Secret)) == 1
}

func (t *TelegramWebhook) parseBody(c *gin.Context) (model.Update, error) {
	var update model.Update
	bodyBytes, err := c.GetRawData()
	if err != nil {
		return update, errors.New("failed to read body")
	}
	if err := json.Unmarshal(bodyBytes, &update); err != nil {
		return update, fmt.Errorf("invalid payload: %w", err)
	}
	return update, nil
}
