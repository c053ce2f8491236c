package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/mod-bot/internal/api"
	"github.com/naseer2426/mod-bot/internal/app"
	"github.com/naseer2426/mod-bot/internal/config"
	"github.com/naseer2426/mod-bot/internal/telegram"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.LoadEnvConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	router := initRouter()
	t, err := initTelegramWebhook(cfg)
	if err != nil {
		log.Fatalf("failed to start bot: %v", err)
	}

	router.GET("/", api.HealthCheck)
	router.POST("/telegram/webhook", t.TelegramWebhook)

	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func initRouter() *gin.Engine {
	router := gin.Default()

	router.Use(requestid.New())
	// Allow CORS for all origins
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Accept", api.SecretHeader},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	return router
}

func initTelegramWebhook(cfg *config.EnvConfig) (*api.TelegramWebhook, error) {
	tg := telegram.NewTelegramAPI(cfg.TelegramBotToken)
	bot, me, err := app.NewModBot(context.Background(), cfg, tg)
	if err != nil {
		return nil, err
	}
	log.Printf("serving webhook for @%s", me.Username)
	return &api.TelegramWebhook{
		Bot:    bot,
		Secret: cfg.WebhookSecret,
	}, nil
}
