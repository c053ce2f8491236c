package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Point Telegram at the webhook server, or stop it",
}

var (
	webhookDropPending    bool
	webhookMaxConnections int
)

var webhookSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Register the webhook URL",
	Long: `Register the URL Telegram posts updates to. TELEGRAM_WEBHOOK_SECRET,
when set, is registered as the secret token the server checks.`,
	Example: `  tgctl webhook set https://bot.example.com/telegram/webhook`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		req := telegram.SetWebhook{
			URL:            args[0],
			AllowedUpdates: model.UpdateKinds(),
		}
		if secret := os.Getenv("TELEGRAM_WEBHOOK_SECRET"); secret != "" {
			req.SecretToken = telegram.Ptr(secret)
		}
		if cmd.Flags().Changed("drop-pending") {
			req.DropPendingUpdates = telegram.Ptr(webhookDropPending)
		}
		if cmd.Flags().Changed("max-connections") {
			req.MaxConnections = telegram.Ptr(webhookMaxConnections)
		}
		if err := api.SetWebhook(context.Background(), req); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "webhook set to %s\n", req.URL)
		return nil
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the webhook so getUpdates works again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		req := telegram.DeleteWebhook{}
		if cmd.Flags().Changed("drop-pending") {
			req.DropPendingUpdates = telegram.Ptr(webhookDropPending)
		}
		if err := api.DeleteWebhook(context.Background(), req); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "webhook deleted")
		return nil
	},
}

func init() {
	webhookSetCmd.Flags().BoolVar(&webhookDropPending, "drop-pending", false, "drop updates Telegram is holding")
	webhookSetCmd.Flags().IntVar(&webhookMaxConnections, "max-connections", 0, "maximum simultaneous webhook connections (1-100)")
	webhookDeleteCmd.Flags().BoolVar(&webhookDropPending, "drop-pending", false, "drop updates Telegram is holding")

	webhookCmd.AddCommand(webhookSetCmd)
	webhookCmd.AddCommand(webhookDeleteCmd)
}
