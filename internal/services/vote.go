package services

import (
	"fmt"

	"attendance_poll_bot/internal/db/models"
)

type VoteKind int

const (
	// VoteKindNew is a voter's first vote on a poll.
	VoteKindNew VoteKind = iota
	// VoteKindUnchanged is a repeat of the voter's current option.
	VoteKindUnchanged
	// VoteKindChanged moves the voter to the other option.
	VoteKindChanged
)

// ClassifyVote decides what a cast vote did, given the option the voter held
// before (empty when none) and the option requested.
func ClassifyVote(previous, requested models.OptionKey) VoteKind {
	switch previous {
	case "":
		return VoteKindNew
	case requested:
		return VoteKindUnchanged
	}
	return VoteKindChanged
}

// VoteConfirmation is the rendering decision for a personal confirmation,
// derived purely from the vote classification and the option labels.
type VoteConfirmation struct {
	Kind       VoteKind
	Option     models.OptionKey
	Previous   models.OptionKey
	Header     string
	Body       string
	StatusLine string
}

func NewVoteConfirmation(kind VoteKind, previous, requested models.OptionKey) VoteConfirmation {
	confirmation := VoteConfirmation{
		Kind:     kind,
		Option:   requested,
		Previous: previous,
	}

	switch kind {
	case VoteKindUnchanged:
		confirmation.Header = "Vote unchanged"
		confirmation.Body = "You already picked this option."
		confirmation.StatusLine = "Your choice stays:"
	case VoteKindChanged:
		confirmation.Header = "Vote updated"
		confirmation.Body = "Your choice has been updated."
		confirmation.StatusLine = "Your new choice:"
	default:
		confirmation.Header = "Vote confirmed"
		confirmation.Body = "Thanks for taking part!"
		confirmation.StatusLine = "Your choice:"
	}

	return confirmation
}

type OptionTally struct {
	Option  models.OptionKey
	Count   int
	Percent float64
}

type Tally struct {
	Total   int
	Options []OptionTally
	// AttendanceRate equals the attend option's percentage.
	AttendanceRate float64
}

// TallyPoll computes per-option counts and percentages. A poll with no voters
// tallies to 0% everywhere rather than dividing by zero.
func TallyPoll(poll *models.Poll) Tally {
	tally := Tally{Total: poll.VoterCount()}

	for _, option := range models.OptionKeys() {
		count := len(poll.OptionVoters(option))

		percent := 0.0
		if tally.Total > 0 {
			percent = float64(count) / float64(tally.Total) * 100
		}

		if option == models.OptionKeyAttend {
			tally.AttendanceRate = percent
		}

		tally.Options = append(tally.Options, OptionTally{
			Option:  option,
			Count:   count,
			Percent: percent,
		})
	}

	return tally
}

// FormatPercent renders a percentage to one decimal place.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}
