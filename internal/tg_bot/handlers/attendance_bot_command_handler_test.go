package handlers

import (
	"testing"

	"attendance_poll_bot/internal/db/models"
	"attendance_poll_bot/internal/services"
	mock_services "attendance_poll_bot/internal/services/mocks"
	"attendance_poll_bot/internal/tg_bot/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestParseVoteCallback_Valid(t *testing.T) {
	pollID, option, err := parseVoteCallback("vote_3f2a_attend")

	assert.NoError(t, err)
	assert.Equal(t, "3f2a", pollID)
	assert.Equal(t, models.OptionKeyAttend, option)
}

func TestParseVoteCallback_PollIDWithUnderscores(t *testing.T) {
	pollID, option, err := parseVoteCallback("vote_legacy_poll_7_absent")

	assert.NoError(t, err)
	assert.Equal(t, "legacy_poll_7", pollID)
	assert.Equal(t, models.OptionKeyAbsent, option)
}

func TestParseVoteCallback_Malformed(t *testing.T) {
	for _, data := range []string{
		"",
		"vote",
		"vote_attend",
		"ballot_3f2a_attend",
		"vote_3f2a_maybe",
		"vote__attend",
	} {
		_, _, err := parseVoteCallback(data)
		assert.Error(t, err, "payload %q", data)
	}
}

func TestSplitCommand(t *testing.T) {
	command, arguments := splitCommand("/poll Saturday practice")
	assert.Equal(t, "/poll", command)
	assert.Equal(t, "Saturday practice", arguments)

	command, arguments = splitCommand("/ENDPOLL@attendance_bot 3f2a")
	assert.Equal(t, "/endpoll", command)
	assert.Equal(t, "3f2a", arguments)

	command, arguments = splitCommand("/help")
	assert.Equal(t, "/help", command)
	assert.Empty(t, arguments)
}

func newTestHandler(t *testing.T) (CommandHandler, *mock_services.MockPollService) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)

	handler := NewAttendanceBotCommandHandler(
		[]commands.Command{commands.NewHelpCommand()},
		pollService,
		int64(100),
		zap.NewNop().Sugar(),
	)

	return handler, pollService
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			Data: data,
			From: &tgbotapi.User{ID: 111},
		},
	}
}

func TestHandle_VoteCallback(t *testing.T) {
	handler, pollService := newTestHandler(t)

	pollService.EXPECT().Vote(gomock.Any(), "3f2a", "111", models.OptionKeyAttend).
		Return(services.NewVoteConfirmation(services.VoteKindNew, "", models.OptionKeyAttend), nil)

	replies := handler.Handle(callbackUpdate("vote_3f2a_attend"))

	assert.Len(t, replies, 1)
	callback, ok := replies[0].(tgbotapi.CallbackConfig)
	assert.True(t, ok)
	assert.Equal(t, "Vote recorded.", callback.Text)
}

func TestHandle_VoteCallback_PollClosed(t *testing.T) {
	handler, pollService := newTestHandler(t)

	pollService.EXPECT().Vote(gomock.Any(), "3f2a", "111", models.OptionKeyAbsent).
		Return(services.VoteConfirmation{}, services.ErrPollClosed)

	replies := handler.Handle(callbackUpdate("vote_3f2a_absent"))

	assert.Len(t, replies, 1)
	callback, ok := replies[0].(tgbotapi.CallbackConfig)
	assert.True(t, ok)
	assert.Equal(t, "This poll is already closed.", callback.Text)
}

func TestHandle_VoteCallback_MalformedPayload(t *testing.T) {
	handler, _ := newTestHandler(t)

	replies := handler.Handle(callbackUpdate("vote_bogus"))

	assert.Len(t, replies, 1)
	callback, ok := replies[0].(tgbotapi.CallbackConfig)
	assert.True(t, ok)
	assert.Equal(t, "This vote button is not valid.", callback.Text)
}

func TestHandle_NonCommandMessage(t *testing.T) {
	handler, _ := newTestHandler(t)

	replies := handler.Handle(tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "hello",
			Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
		},
	})

	assert.Len(t, replies, 1)
	message, ok := replies[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
	assert.Equal(t, "Use /help to see the available commands.", message.Text)
}

func TestHandle_UnknownCommand(t *testing.T) {
	handler, _ := newTestHandler(t)

	replies := handler.Handle(tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "/unknown",
			Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
		},
	})

	assert.Len(t, replies, 1)
	message, ok := replies[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
	assert.Equal(t, "Unknown command. Use /help to see the available commands.", message.Text)
}
