package commands

import (
	"errors"
	"testing"

	"attendance_poll_bot/internal/db/models"
	"attendance_poll_bot/internal/services"
	mock_services "attendance_poll_bot/internal/services/mocks"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	testChatID  = int64(7)
	testGroupID = int64(100)
)

func messageText(t *testing.T, chattable tgbotapi.Chattable) string {
	t.Helper()
	message, ok := chattable.(tgbotapi.MessageConfig)
	assert.True(t, ok)
	return message.Text
}

func TestCreatePollCommand_CanHandle(t *testing.T) {
	command := NewCreatePollCommand(nil, zap.NewNop().Sugar())

	assert.True(t, command.CanHandle("/poll"))
	assert.False(t, command.CanHandle("/endpoll"))
}

func TestCreatePollCommand_EmptyTitle(t *testing.T) {
	command := NewCreatePollCommand(nil, zap.NewNop().Sugar())

	replies := command.Handle("   ", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Equal(t, "Please provide a title, format: /poll <title>", messageText(t, replies[0]))
}

func TestCreatePollCommand_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().Create(gomock.Any(), "Saturday practice", testGroupID).
		Return(&models.Poll{ID: "p1"}, nil)

	command := NewCreatePollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("Saturday practice", testChatID, testGroupID)

	assert.Empty(t, replies)
}

func TestCreatePollCommand_ServiceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().Create(gomock.Any(), "Saturday practice", testGroupID).
		Return(nil, errors.New("connection reset"))

	command := NewCreatePollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("Saturday practice", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Equal(t, "Failed to create the poll, please try again.", messageText(t, replies[0]))
}

func TestEndPollCommand_WithID(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().Close(gomock.Any(), "p1").Return(&services.PollResult{}, nil)

	command := NewEndPollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("p1", testChatID, testGroupID)

	assert.Empty(t, replies)
}

func TestEndPollCommand_WithID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().Close(gomock.Any(), "missing").Return(nil, services.ErrPollNotFound)

	command := NewEndPollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("missing", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Equal(t, "Poll not found: missing", messageText(t, replies[0]))
}

func TestEndPollCommand_WithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().CloseNewest(gomock.Any(), testGroupID).Return(&services.PollResult{}, nil)

	command := NewEndPollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("", testChatID, testGroupID)

	assert.Empty(t, replies)
}

func TestEndPollCommand_WithoutID_NoActivePolls(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().CloseNewest(gomock.Any(), testGroupID).Return(nil, services.ErrNoActivePolls)

	command := NewEndPollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Equal(t, "No active polls found. Provide an id, format: /endpoll <poll id>", messageText(t, replies[0]))
}

func TestEndPollCommand_AlreadyClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	pollService := mock_services.NewMockPollService(ctrl)
	pollService.EXPECT().Close(gomock.Any(), "p1").Return(nil, services.ErrPollClosed)

	command := NewEndPollCommand(pollService, zap.NewNop().Sugar())

	replies := command.Handle("p1", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Equal(t, "That poll is already closed.", messageText(t, replies[0]))
}

func TestHelpCommand(t *testing.T) {
	command := NewHelpCommand()

	assert.True(t, command.CanHandle("/help"))

	replies := command.Handle("", testChatID, testGroupID)

	assert.Len(t, replies, 1)
	assert.Contains(t, messageText(t, replies[0]), "/poll <title>")
	assert.Contains(t, messageText(t, replies[0]), "/endpoll")
}
