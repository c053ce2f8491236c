package main

import (
	"fmt"
	"os"

	"github.com/naseer2426/mod-bot/internal/config"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/spf13/cobra"
)

var (
	tokenFlag  string
	serverFlag string
)

var rootCmd = &cobra.Command{
	Use:   "tgctl",
	Short: "Operate the Telegram moderation bot",
	Long: `tgctl talks to the Telegram Bot API with the bot's token.

The token comes from --token, or from TELEGRAM_BOT_TOKEN (a .env file in the
working directory is loaded first).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bot API token (default $TELEGRAM_BOT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", telegram.DefaultServer, "Bot API server")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(webhookCmd)
}

func botToken() (string, error) {
	if tokenFlag != "" {
		return tokenFlag, nil
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no bot token: pass --token or set TELEGRAM_BOT_TOKEN")
}

func newAPI() (*telegram.TelegramAPI, error) {
	token, err := botToken()
	if err != nil {
		return nil, err
	}
	return telegram.NewTelegramAPIWithServer(token, serverFlag), nil
}
