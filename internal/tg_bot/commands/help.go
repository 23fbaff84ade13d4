package commands

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpCommandName = "/help"

const helpText = `📋 Attendance poll commands:
/poll <title> - create a new attendance poll
/endpoll [poll id] - close a poll and post the results
/help - show this message`

type helpCommand struct{}

func NewHelpCommand() Command {
	return &helpCommand{}
}

func (c *helpCommand) CanHandle(command string) bool {
	return command == helpCommandName
}

func (c *helpCommand) Handle(_ string, chatID, _ int64) []tgbotapi.Chattable {
	return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, helpText)}
}
