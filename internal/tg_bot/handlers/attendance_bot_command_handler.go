package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"attendance_poll_bot/internal/db/models"
	"attendance_poll_bot/internal/services"
	"attendance_poll_bot/internal/tg_bot/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const voteTimeout = 30 * time.Second

type attendanceBotCommandHandler struct {
	commands       []commands.Command
	pollService    services.PollService
	defaultGroupID int64
	logger         *zap.SugaredLogger
}

func NewAttendanceBotCommandHandler(
	botCommands []commands.Command,
	pollService services.PollService,
	defaultGroupID int64,
	logger *zap.SugaredLogger,
) CommandHandler {
	return &attendanceBotCommandHandler{
		commands:       botCommands,
		pollService:    pollService,
		defaultGroupID: defaultGroupID,
		logger:         logger,
	}
}

func (h *attendanceBotCommandHandler) Handle(update tgbotapi.Update) []tgbotapi.Chattable {
	switch {
	case update.CallbackQuery != nil:
		return h.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		return h.handleMessage(update.Message)
	}
	return nil
}

func (h *attendanceBotCommandHandler) handleMessage(message *tgbotapi.Message) []tgbotapi.Chattable {
	text := strings.TrimSpace(message.Text)
	if text == "" || !strings.HasPrefix(text, "/") {
		return []tgbotapi.Chattable{
			tgbotapi.NewMessage(message.Chat.ID, "Use /help to see the available commands."),
		}
	}

	command, arguments := splitCommand(text)
	h.logger.Infow("received command", "command", command, "chatID", message.Chat.ID)

	// Direct messages act on the preconfigured group, group messages on the
	// group they came from.
	groupID := h.defaultGroupID
	if message.Chat.IsGroup() || message.Chat.IsSuperGroup() {
		groupID = message.Chat.ID
	}

	for _, botCommand := range h.commands {
		if botCommand.CanHandle(command) {
			return botCommand.Handle(arguments, message.Chat.ID, groupID)
		}
	}

	return []tgbotapi.Chattable{
		tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see the available commands."),
	}
}

func (h *attendanceBotCommandHandler) handleCallback(query *tgbotapi.CallbackQuery) []tgbotapi.Chattable {
	pollID, option, err := parseVoteCallback(query.Data)
	if err != nil {
		h.logger.Warnw("malformed vote payload", "data", query.Data, "error", err)
		return []tgbotapi.Chattable{tgbotapi.NewCallback(query.ID, "This vote button is not valid.")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), voteTimeout)
	defer cancel()

	userID := strconv.FormatInt(query.From.ID, 10)
	_, err = h.pollService.Vote(ctx, pollID, userID, option)

	var text string
	switch {
	case err == nil:
		text = "Vote recorded."
	case errors.Is(err, services.ErrPollNotFound):
		text = "Poll not found."
	case errors.Is(err, services.ErrPollClosed):
		text = "This poll is already closed."
	default:
		h.logger.Errorw("failed to process vote", "pollID", pollID, "userID", userID, "error", err)
		text = "Something went wrong, please try again."
	}

	return []tgbotapi.Chattable{tgbotapi.NewCallback(query.ID, text)}
}

func splitCommand(text string) (command, arguments string) {
	parts := strings.SplitN(text, " ", 2)
	command = strings.ToLower(parts[0])
	// Commands in groups may arrive as /poll@bot_name.
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	if len(parts) > 1 {
		arguments = parts[1]
	}
	return command, arguments
}

// parseVoteCallback validates a vote_<poll_id>_<option> payload. Anything
// with fewer than three parts or an option outside the closed set is
// rejected.
func parseVoteCallback(data string) (string, models.OptionKey, error) {
	parts := strings.Split(data, "_")
	if len(parts) < 3 || parts[0] != "vote" {
		return "", "", fmt.Errorf("unexpected payload shape: %q", data)
	}

	option, ok := models.ParseOptionKey(parts[len(parts)-1])
	if !ok {
		return "", "", fmt.Errorf("unknown option: %q", parts[len(parts)-1])
	}

	pollID := strings.Join(parts[1:len(parts)-1], "_")
	if pollID == "" {
		return "", "", fmt.Errorf("empty poll id: %q", data)
	}

	return pollID, option, nil
}
