package commands

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command handles one slash command. chatID is where replies go; groupID is
// the group the command acts on.
type Command interface {
	CanHandle(command string) bool
	Handle(arguments string, chatID, groupID int64) []tgbotapi.Chattable
}
