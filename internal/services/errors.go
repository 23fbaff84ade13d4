package services

import "errors"

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrPollClosed    = errors.New("poll is closed")
	ErrNoActivePolls = errors.New("no active polls")
)
