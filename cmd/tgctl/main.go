// Command tgctl is an operator tool for the moderation bot: it decodes
// update payloads, inspects and moderates chats, manages the webhook and can
// run the bot with long polling.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
