package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/naseer2426/mod-bot/internal/db"
	"github.com/spf13/cobra"
)

var databaseURLFlag string

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Read the registry of chats the bot has seen",
	Long: `Read the chat registry the bot keeps in Postgres. The database comes
from --database-url, or from DATABASE_URL.`,
}

var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded chats, most recently active first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		chats, err := openRegistry()
		if err != nil {
			return err
		}
		return listChats(cmd.OutOrStdout(), chats)
	},
}

var chatsGetCmd = &cobra.Command{
	Use:     "get <chat-id>",
	Short:   "Show one recorded chat",
	Example: "  tgctl chats get -- -1001234",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseID(args[0])
		if err != nil {
			return err
		}
		chats, err := openRegistry()
		if err != nil {
			return err
		}
		return showChat(cmd.OutOrStdout(), chats, chatID)
	},
}

func init() {
	chatsCmd.PersistentFlags().StringVar(&databaseURLFlag, "database-url", "", "Postgres DSN (default $DATABASE_URL)")
	chatsCmd.AddCommand(chatsListCmd)
	chatsCmd.AddCommand(chatsGetCmd)
}

// chatRegistry is the read side of *db.ChatRepository.
type chatRegistry interface {
	Get(chatID int64) (db.ChatRecord, error)
	List() ([]db.ChatRecord, error)
}

func openRegistry() (*db.ChatRepository, error) {
	dsn := databaseURLFlag
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, fmt.Errorf("no database: pass --database-url or set DATABASE_URL")
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return nil, err
	}
	return db.NewChatRepository(conn), nil
}

func listChats(out io.Writer, chats chatRegistry) error {
	records, err := chats.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		color.New(color.FgYellow).Fprintln(out, "no chats recorded yet")
		return nil
	}
	bold := color.New(color.Bold)
	for _, r := range records {
		bold.Fprintf(out, "%-16d", r.ChatID)
		color.New(color.FgCyan).Fprintf(out, " %-10s", r.Type)
		fmt.Fprintf(out, " %s  (last seen %s)\n", r.Title, r.LastSeen.UTC().Format(time.DateTime))
	}
	return nil
}

func showChat(out io.Writer, chats chatRegistry, chatID int64) error {
	r, err := chats.Get(chatID)
	if err != nil {
		return err
	}
	color.New(color.Bold).Fprintf(out, "%s ", r.Title)
	color.New(color.FgCyan).Fprintf(out, "(%s %d)\n", r.Type, r.ChatID)
	if r.Username != "" {
		printField(out, "username", "@"+r.Username)
	}
	printField(out, "first", r.FirstSeen.UTC().Format(time.DateTime))
	printField(out, "last", r.LastSeen.UTC().Format(time.DateTime))
	return nil
}
