package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	PollStatus string
	OptionKey  string
)

const (
	PollStatusActive PollStatus = "active"
	PollStatusClosed PollStatus = "closed"

	OptionKeyAttend OptionKey = "attend"
	OptionKeyAbsent OptionKey = "absent"
)

func (s PollStatus) String() string {
	return string(s)
}

func (o OptionKey) String() string {
	return string(o)
}

func (o OptionKey) CapitalizedString() string {
	return cases.Title(language.English).String(o.String())
}

// Label is the user-facing button/roster label for the option.
func (o OptionKey) Label() string {
	switch o {
	case OptionKeyAttend:
		return "✅ " + o.CapitalizedString()
	case OptionKeyAbsent:
		return "❌ " + o.CapitalizedString()
	}
	return o.CapitalizedString()
}

// OptionKeys lists the two fixed options in display order.
func OptionKeys() []OptionKey {
	return []OptionKey{OptionKeyAttend, OptionKeyAbsent}
}

// ParseOptionKey validates a raw option token against the closed set.
func ParseOptionKey(raw string) (OptionKey, bool) {
	switch OptionKey(raw) {
	case OptionKeyAttend:
		return OptionKeyAttend, true
	case OptionKeyAbsent:
		return OptionKeyAbsent, true
	}
	return "", false
}

type Poll struct {
	ID        string                `json:"poll_id" bson:"poll_id"`
	Title     string                `json:"title" bson:"title"`
	GroupID   int64                 `json:"group_id" bson:"group_id"`
	Status    PollStatus            `json:"status" bson:"status"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time             `json:"updated_at" bson:"updated_at"`
	Options   map[OptionKey][]string `json:"options" bson:"options"`
	Voters    map[string]OptionKey  `json:"voters" bson:"voters"`
}

// NewPoll builds an active poll with empty option sets.
func NewPoll(id, title string, groupID int64, now time.Time) *Poll {
	return &Poll{
		ID:        id,
		Title:     title,
		GroupID:   groupID,
		Status:    PollStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		Options: map[OptionKey][]string{
			OptionKeyAttend: {},
			OptionKeyAbsent: {},
		},
		Voters: map[string]OptionKey{},
	}
}

func (p *Poll) IsActive() bool {
	return p.Status == PollStatusActive
}

// VoterCount is the number of users with a current vote on the poll.
func (p *Poll) VoterCount() int {
	return len(p.Voters)
}

func (p *Poll) OptionVoters(option OptionKey) []string {
	return p.Options[option]
}
