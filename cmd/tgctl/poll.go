package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/naseer2426/mod-bot/internal/app"
	"github.com/naseer2426/mod-bot/internal/config"
	"github.com/naseer2426/mod-bot/internal/poller"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run the moderation bot with long polling",
	Long: `Run the moderation bot without a public webhook URL. Offsets are stored
in POLLER_DB (poller.db by default) so a restart does not replay updates.

Telegram refuses getUpdates while a webhook is set; run
"tgctl webhook delete" first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenFlag != "" {
			if err := os.Setenv("TELEGRAM_BOT_TOKEN", tokenFlag); err != nil {
				return err
			}
		}
		cfg, err := config.LoadEnvConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api := telegram.NewTelegramAPIWithServer(cfg.TelegramBotToken, serverFlag)
		bot, me, err := app.NewModBot(ctx, cfg, api)
		if err != nil {
			return err
		}

		offsets, err := poller.OpenOffsetStore(cfg.PollerDB)
		if err != nil {
			return err
		}
		defer offsets.Close()

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "polling as @%s (ctrl-c to stop)\n", me.Username)
		if err := poller.New(api, bot, offsets, me.ID).Run(ctx); err != nil {
			return fmt.Errorf("poller stopped: %w", err)
		}
		return nil
	},
}
