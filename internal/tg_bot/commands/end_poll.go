package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance_poll_bot/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const endPollCommandName = "/endpoll"

type endPollCommand struct {
	pollService services.PollService
	logger      *zap.SugaredLogger
}

func NewEndPollCommand(pollService services.PollService, logger *zap.SugaredLogger) Command {
	return &endPollCommand{
		pollService: pollService,
		logger:      logger,
	}
}

func (c *endPollCommand) CanHandle(command string) bool {
	return command == endPollCommandName
}

func (c *endPollCommand) Handle(arguments string, chatID, groupID int64) []tgbotapi.Chattable {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var err error
	if pollID := strings.TrimSpace(arguments); pollID != "" {
		_, err = c.pollService.Close(ctx, pollID)
		if errors.Is(err, services.ErrPollNotFound) {
			return []tgbotapi.Chattable{
				tgbotapi.NewMessage(chatID, fmt.Sprintf("Poll not found: %s", pollID)),
			}
		}
	} else {
		// Without an id the most recent active poll of the group is closed.
		_, err = c.pollService.CloseNewest(ctx, groupID)
	}

	switch {
	case err == nil:
		// Results are pushed to the group by the service.
		return nil
	case errors.Is(err, services.ErrNoActivePolls):
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(chatID, "No active polls found. Provide an id, format: /endpoll <poll id>"),
		}
	case errors.Is(err, services.ErrPollClosed):
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(chatID, "That poll is already closed."),
		}
	default:
		c.logger.Errorw("failed to end poll", "error", err)
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(chatID, "Failed to end the poll, please try again."),
		}
	}
}
