// Package model holds the Telegram Bot API objects a bot receives. Chats,
// chat member statuses, message contents and updates are closed sets of
// variants decoded by their discriminant; everything else is a plain struct.
package model
