package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Inspect and moderate chats",
	Long: `Inspect and moderate chats. Group and channel ids are negative, so put
them after -- to keep them from being read as flags.`,
}

var chatGetCmd = &cobra.Command{
	Use:     "get <chat-id>",
	Short:   "Show a chat",
	Example: "  tgctl chat get -- -1001234",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseID(args[0])
		if err != nil {
			return err
		}
		api, err := newAPI()
		if err != nil {
			return err
		}
		chat, err := api.GetChat(context.Background(), telegram.GetChat{ChatID: chatID})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintf(out, "%s ", chat.Name())
		color.New(color.FgCyan).Fprintf(out, "(%s %d)\n", chat.Type(), chat.ID())
		switch c := chat.Variant.(type) {
		case *model.PrivateChat:
			printField(out, "username", c.Username)
			printField(out, "bio", c.Bio)
		case *model.GroupChat:
			printField(out, "about", c.Description)
			printField(out, "invite", c.InviteLink)
		case *model.SuperGroupChat:
			printField(out, "username", c.Username)
			printField(out, "about", c.Description)
			printField(out, "invite", c.InviteLink)
			if c.SlowModeDelay > 0 {
				printField(out, "slowmode", fmt.Sprintf("%ds", c.SlowModeDelay))
			}
		case *model.ChannelChat:
			printField(out, "username", c.Username)
			printField(out, "about", c.Description)
		case *model.UnknownChat:
			color.New(color.FgYellow).Fprintln(out, "  chat type not recognized")
		}
		return nil
	},
}

// promoteRights maps each --can-* flag to the request field it sets.
var promoteRights = []struct {
	flag  string
	usage string
	field func(*telegram.PromoteChatMember) **bool
}{
	{"anonymous", "hide the administrator in the member list", func(r *telegram.PromoteChatMember) **bool { return &r.IsAnonymous }},
	{"can-manage-chat", "access the event log and statistics", func(r *telegram.PromoteChatMember) **bool { return &r.CanManageChat }},
	{"can-post-messages", "post in the channel", func(r *telegram.PromoteChatMember) **bool { return &r.CanPostMessages }},
	{"can-edit-messages", "edit other users' channel posts", func(r *telegram.PromoteChatMember) **bool { return &r.CanEditMessages }},
	{"can-delete-messages", "delete other users' messages", func(r *telegram.PromoteChatMember) **bool { return &r.CanDeleteMessages }},
	{"can-manage-voice-chats", "manage voice chats", func(r *telegram.PromoteChatMember) **bool { return &r.CanManageVoiceChats }},
	{"can-restrict-members", "restrict, ban and unban members", func(r *telegram.PromoteChatMember) **bool { return &r.CanRestrictMembers }},
	{"can-promote-members", "add administrators", func(r *telegram.PromoteChatMember) **bool { return &r.CanPromoteMembers }},
	{"can-change-info", "change the title, photo and settings", func(r *telegram.PromoteChatMember) **bool { return &r.CanChangeInfo }},
	{"can-invite-users", "invite new users", func(r *telegram.PromoteChatMember) **bool { return &r.CanInviteUsers }},
	{"can-pin-messages", "pin messages", func(r *telegram.PromoteChatMember) **bool { return &r.CanPinMessages }},
}

var chatPromoteCmd = &cobra.Command{
	Use:   "promote <chat-id> <user-id>",
	Short: "Promote or demote a chat member",
	Long: `Promote a member. Only the rights passed as flags are sent; Telegram
decides the rest. Pass --flag=false to revoke a right. Promoting with every
right false demotes the member.`,
	Example: `  tgctl chat promote --can-pin-messages --can-delete-messages -- -1001234 42
  tgctl chat promote --can-promote-members=false -- -1001234 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := promoteRequest(cmd.Flags(), args)
		if err != nil {
			return err
		}
		api, err := newAPI()
		if err != nil {
			return err
		}
		if err := api.PromoteChatMember(context.Background(), req); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "promoted %d in %d\n", req.UserID, req.ChatID)
		return nil
	},
}

func promoteRequest(flags *pflag.FlagSet, args []string) (telegram.PromoteChatMember, error) {
	chatID, err := parseID(args[0])
	if err != nil {
		return telegram.PromoteChatMember{}, err
	}
	userID, err := parseID(args[1])
	if err != nil {
		return telegram.PromoteChatMember{}, err
	}
	req := telegram.NewPromoteChatMember(chatID, userID)
	for _, right := range promoteRights {
		if !flags.Changed(right.flag) {
			continue
		}
		v, err := flags.GetBool(right.flag)
		if err != nil {
			return req, err
		}
		*right.field(&req) = telegram.Ptr(v)
	}
	return req, nil
}

var chatKickCmd = &cobra.Command{
	Use:   "kick <chat-id> <user-id>",
	Short: "Ban a user from a chat",
	Example: `  # Ban forever
  tgctl chat kick -- -1001234 42

  # Ban for a week and delete their messages
  tgctl chat kick --until 168h --revoke -- -1001234 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := kickRequest(cmd.Flags(), args, time.Now())
		if err != nil {
			return err
		}
		api, err := newAPI()
		if err != nil {
			return err
		}
		if err := api.KickChatMember(context.Background(), req); err != nil {
			return err
		}
		msg := fmt.Sprintf("banned %d from %d", req.UserID, req.ChatID)
		if req.UntilDate != nil {
			msg += " until " + req.UntilDate.Format(time.RFC3339)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func kickRequest(flags *pflag.FlagSet, args []string, now time.Time) (telegram.KickChatMember, error) {
	chatID, err := parseID(args[0])
	if err != nil {
		return telegram.KickChatMember{}, err
	}
	userID, err := parseID(args[1])
	if err != nil {
		return telegram.KickChatMember{}, err
	}
	req := telegram.NewKickChatMember(chatID, userID)
	if until, _ := flags.GetDuration("until"); until > 0 {
		t := model.At(now.Add(until))
		req.UntilDate = &t
	}
	if flags.Changed("revoke") {
		revoke, _ := flags.GetBool("revoke")
		req.RevokeMessages = telegram.Ptr(revoke)
	}
	return req, nil
}

func addPromoteFlags(flags *pflag.FlagSet) {
	for _, right := range promoteRights {
		flags.Bool(right.flag, false, right.usage)
	}
}

func addKickFlags(flags *pflag.FlagSet) {
	flags.Duration("until", 0, "ban duration, forever when unset")
	flags.Bool("revoke", false, "delete all messages from the user")
}

func init() {
	addPromoteFlags(chatPromoteCmd.Flags())
	addKickFlags(chatKickCmd.Flags())

	chatCmd.AddCommand(chatGetCmd)
	chatCmd.AddCommand(chatPromoteCmd)
	chatCmd.AddCommand(chatKickCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

func printField(out io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "  %-9s %s\n", name+":", value)
}
