package services

import (
	"fmt"
	"strings"

	"attendance_poll_bot/internal/db/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const percentBarWidth = 10

// VoteCallbackData encodes a vote button payload as vote_<poll_id>_<option>.
func VoteCallbackData(pollID string, option models.OptionKey) string {
	return fmt.Sprintf("vote_%s_%s", pollID, option)
}

// NewPollMessage is the group-facing poll card with one vote button per option.
func NewPollMessage(poll *models.Poll) tgbotapi.Chattable {
	message := tgbotapi.NewMessage(poll.GroupID, fmt.Sprintf("📊 *%s*\n\nPlease pick your attendance:", poll.Title))
	message.ParseMode = tgbotapi.ModeMarkdown

	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(models.OptionKeys()))
	for _, option := range models.OptionKeys() {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			option.Label(),
			VoteCallbackData(poll.ID, option),
		))
	}
	message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))

	return message
}

// NewVoteConfirmationMessage is the personal confirmation pushed to a voter.
func NewVoteConfirmationMessage(chatID int64, pollTitle string, confirmation VoteConfirmation) tgbotapi.Chattable {
	lines := []string{
		fmt.Sprintf("*%s*", confirmation.Header),
		pollTitle,
		"",
	}

	if confirmation.Kind == VoteKindChanged {
		lines = append(lines, fmt.Sprintf("Previous choice: %s", confirmation.Previous.Label()))
	}

	lines = append(lines,
		fmt.Sprintf("%s %s", confirmation.StatusLine, confirmation.Option.Label()),
		"",
		fmt.Sprintf("_%s_", confirmation.Body),
	)

	message := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	message.ParseMode = tgbotapi.ModeMarkdown
	return message
}

// NewPollResultsMessage is the group-facing results card: per-option bars and
// percentages, participant rosters and the attendance rate.
func NewPollResultsMessage(result *PollResult) tgbotapi.Chattable {
	var builder strings.Builder

	fmt.Fprintf(&builder, "📊 *Poll results*\n%s\nTotal votes: %d\n", result.Poll.Title, result.Tally.Total)

	for _, tally := range result.Tally.Options {
		fmt.Fprintf(&builder, "\n%s  %d (%s)\n`%s`\n",
			tally.Option.Label(), tally.Count, FormatPercent(tally.Percent), percentBar(tally.Percent))
	}

	if result.Tally.Total > 0 {
		builder.WriteString("\nParticipants:\n")
		for _, option := range models.OptionKeys() {
			names := result.Roster[option]
			if len(names) == 0 {
				continue
			}
			fmt.Fprintf(&builder, "%s\n%s\n", option.Label(), strings.Join(names, "\n"))
		}
	}

	fmt.Fprintf(&builder, "\nAttendance rate: *%s*", FormatPercent(result.Tally.AttendanceRate))

	message := tgbotapi.NewMessage(result.Poll.GroupID, builder.String())
	message.ParseMode = tgbotapi.ModeMarkdown
	return message
}

func percentBar(percent float64) string {
	filled := int(percent/100*percentBarWidth + 0.5)
	if filled > percentBarWidth {
		filled = percentBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", percentBarWidth-filled)
}
