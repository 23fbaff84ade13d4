package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOptionKey(t *testing.T) {
	option, ok := ParseOptionKey("attend")
	assert.True(t, ok)
	assert.Equal(t, OptionKeyAttend, option)

	option, ok = ParseOptionKey("absent")
	assert.True(t, ok)
	assert.Equal(t, OptionKeyAbsent, option)

	_, ok = ParseOptionKey("maybe")
	assert.False(t, ok)

	_, ok = ParseOptionKey("")
	assert.False(t, ok)
}

func TestOptionKeyLabel(t *testing.T) {
	assert.Equal(t, "✅ Attend", OptionKeyAttend.Label())
	assert.Equal(t, "❌ Absent", OptionKeyAbsent.Label())
}

func TestNewPoll(t *testing.T) {
	now := time.Now().UTC()
	poll := NewPoll("p1", "Saturday practice", 100, now)

	assert.True(t, poll.IsActive())
	assert.Equal(t, now, poll.CreatedAt)
	assert.Equal(t, now, poll.UpdatedAt)
	assert.Equal(t, 0, poll.VoterCount())
	assert.NotNil(t, poll.OptionVoters(OptionKeyAttend))
	assert.NotNil(t, poll.OptionVoters(OptionKeyAbsent))
}

func TestMaskedName(t *testing.T) {
	assert.Equal(t, "User_6789", MaskedName("123456789"))
	assert.Equal(t, "User_42", MaskedName("42"))
}
