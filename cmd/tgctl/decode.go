package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode an update payload and show which variant it is",
	Long: `Decode a JSON update, as Telegram posts it to a webhook, and print the
variant it decodes to with its key fields. Reads stdin when no file is given.`,
	Example: `  # Decode a captured webhook body
  tgctl decode update.json

  # Decode from stdin
  cat update.json | tgctl decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}

		var update model.Update
		if err := json.Unmarshal(data, &update); err != nil {
			color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "decode failed: %v\n", err)
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), describeUpdate(update))
		return nil
	},
}

func describeUpdate(u model.Update) string {
	var sb strings.Builder
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintf(&sb, "update %d: ", u.ID)
	if _, unknown := u.Content.(model.UnknownUpdate); unknown {
		yellow.Fprintf(&sb, "unknown (%s)\n", u.Content.Kind())
		return sb.String()
	}
	green.Fprintln(&sb, u.Content.Kind())

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "  %-8s %s\n", name+":", value)
		}
	}

	switch c := u.Content.(type) {
	case model.CallbackQueryUpdate:
		field("from", c.Query.From.DisplayName())
		field("data", c.Query.Data)
	case model.InlineQueryUpdate:
		field("from", c.Query.From.DisplayName())
		field("query", c.Query.Query)
	case model.PollUpdate:
		field("poll", c.Poll.Question)
	case model.PollAnswerUpdate:
		field("from", c.Answer.User.DisplayName())
		field("poll", c.Answer.PollID)
	case model.MyChatMemberUpdate:
		describeMemberChange(field, c.Change)
	case model.ChatMemberUpdate:
		describeMemberChange(field, c.Change)
	}
	if msg, ok := u.Message(); ok {
		field("chat", fmt.Sprintf("%s %d (%s)", msg.Chat.Type(), msg.Chat.ID(), msg.Chat.Name()))
		if msg.From != nil {
			field("from", msg.From.DisplayName())
		}
		field("content", contentKind(msg.Content))
		field("text", msg.Text())
	}
	return sb.String()
}

func describeMemberChange(field func(name, value string), change model.ChatMemberUpdated) {
	field("chat", fmt.Sprintf("%s %d", change.Chat.Type(), change.Chat.ID()))
	field("member", change.NewChatMember.User.DisplayName())
	field("status", fmt.Sprintf("%s -> %s", change.OldChatMember.StatusKind(), change.NewChatMember.StatusKind()))
}

// contentKind names a message content variant, "photo" for PhotoContent.
func contentKind(c model.MessageContent) string {
	if unknown, ok := c.(model.UnknownContent); ok {
		keys := make([]string, 0, len(unknown.Fields))
		for k := range unknown.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "unknown " + strings.Join(keys, ",")
	}
	name := fmt.Sprintf("%T", c)
	name = strings.TrimPrefix(name, "model.")
	name = strings.TrimSuffix(name, "Content")
	return strings.ToLower(name)
}
