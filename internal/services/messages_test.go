package services

import (
	"testing"
	"time"

	"attendance_poll_bot/internal/db/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestVoteCallbackData(t *testing.T) {
	assert.Equal(t, "vote_3f2a_attend", VoteCallbackData("3f2a", models.OptionKeyAttend))
	assert.Equal(t, "vote_3f2a_absent", VoteCallbackData("3f2a", models.OptionKeyAbsent))
}

func TestNewPollMessage(t *testing.T) {
	poll := models.NewPoll("3f2a", "Saturday practice", 100, time.Now())

	message, ok := NewPollMessage(poll).(tgbotapi.MessageConfig)

	assert.True(t, ok)
	assert.Equal(t, int64(100), message.ChatID)
	assert.Contains(t, message.Text, "Saturday practice")

	markup, ok := message.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(t, ok)
	assert.Len(t, markup.InlineKeyboard, 1)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "✅ Attend", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "vote_3f2a_attend", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "❌ Absent", markup.InlineKeyboard[0][1].Text)
	assert.Equal(t, "vote_3f2a_absent", *markup.InlineKeyboard[0][1].CallbackData)
}

func TestNewVoteConfirmationMessage_Changed(t *testing.T) {
	confirmation := NewVoteConfirmation(VoteKindChanged, models.OptionKeyAttend, models.OptionKeyAbsent)

	message, ok := NewVoteConfirmationMessage(7, "Saturday practice", confirmation).(tgbotapi.MessageConfig)

	assert.True(t, ok)
	assert.Equal(t, int64(7), message.ChatID)
	assert.Contains(t, message.Text, "Previous choice: ✅ Attend")
	assert.Contains(t, message.Text, "❌ Absent")
}

func TestNewVoteConfirmationMessage_New(t *testing.T) {
	confirmation := NewVoteConfirmation(VoteKindNew, "", models.OptionKeyAttend)

	message, ok := NewVoteConfirmationMessage(7, "Saturday practice", confirmation).(tgbotapi.MessageConfig)

	assert.True(t, ok)
	assert.NotContains(t, message.Text, "Previous choice")
}

func TestNewPollResultsMessage(t *testing.T) {
	poll := models.NewPoll("3f2a", "Saturday practice", 100, time.Now())
	poll.Options[models.OptionKeyAttend] = []string{"u1", "u2", "u3"}
	poll.Options[models.OptionKeyAbsent] = []string{"u4"}
	poll.Voters = map[string]models.OptionKey{
		"u1": models.OptionKeyAttend,
		"u2": models.OptionKeyAttend,
		"u3": models.OptionKeyAttend,
		"u4": models.OptionKeyAbsent,
	}

	result := &PollResult{
		Poll:  poll,
		Tally: TallyPoll(poll),
		Roster: map[models.OptionKey][]string{
			models.OptionKeyAttend: {"@Alice", "@Bob", "@Carol"},
			models.OptionKeyAbsent: {"@Dave"},
		},
	}

	message, ok := NewPollResultsMessage(result).(tgbotapi.MessageConfig)

	assert.True(t, ok)
	assert.Equal(t, int64(100), message.ChatID)
	assert.Contains(t, message.Text, "Saturday practice")
	assert.Contains(t, message.Text, "Total votes: 4")
	assert.Contains(t, message.Text, "3 (75.0%)")
	assert.Contains(t, message.Text, "1 (25.0%)")
	assert.Contains(t, message.Text, "@Alice")
	assert.Contains(t, message.Text, "@Dave")
	assert.Contains(t, message.Text, "Attendance rate: *75.0%*")
}

func TestNewPollResultsMessage_NoVoters(t *testing.T) {
	poll := models.NewPoll("3f2a", "Saturday practice", 100, time.Now())

	result := &PollResult{
		Poll:   poll,
		Tally:  TallyPoll(poll),
		Roster: map[models.OptionKey][]string{},
	}

	message, ok := NewPollResultsMessage(result).(tgbotapi.MessageConfig)

	assert.True(t, ok)
	assert.Contains(t, message.Text, "Total votes: 0")
	assert.NotContains(t, message.Text, "Participants")
	assert.Contains(t, message.Text, "Attendance rate: *0.0%*")
}

func TestPercentBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", percentBar(0))
	assert.Equal(t, "█████░░░░░", percentBar(50))
	assert.Equal(t, "████████░░", percentBar(75))
	assert.Equal(t, "██████████", percentBar(100))
}
