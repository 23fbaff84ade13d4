package commands

import (
	"context"
	"strings"
	"time"

	"attendance_poll_bot/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	createPollCommandName = "/poll"

	commandTimeout = 30 * time.Second
)

type createPollCommand struct {
	pollService services.PollService
	logger      *zap.SugaredLogger
}

func NewCreatePollCommand(pollService services.PollService, logger *zap.SugaredLogger) Command {
	return &createPollCommand{
		pollService: pollService,
		logger:      logger,
	}
}

func (c *createPollCommand) CanHandle(command string) bool {
	return command == createPollCommandName
}

func (c *createPollCommand) Handle(arguments string, chatID, groupID int64) []tgbotapi.Chattable {
	title := strings.TrimSpace(arguments)
	if title == "" {
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(chatID, "Please provide a title, format: /poll <title>"),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if _, err := c.pollService.Create(ctx, title, groupID); err != nil {
		c.logger.Errorw("failed to create poll", "title", title, "error", err)
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(chatID, "Failed to create the poll, please try again."),
		}
	}

	// The poll card itself is pushed to the group by the service.
	return nil
}
