package scheduler

import (
	"context"
	"fmt"
	"time"

	"attendance_poll_bot/configs"
	"attendance_poll_bot/internal"
	"attendance_poll_bot/internal/db/models"
	"attendance_poll_bot/internal/db/repositories"
	"attendance_poll_bot/internal/services"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// Scheduler drives the weekly poll lifecycle without human intervention:
// auto-create, auto-close and a retention sweep. Jobs are registered once at
// start and run for the process lifetime.
type Scheduler struct {
	config         configs.Scheduler
	pollService    services.PollService
	pollRepository repositories.PollRepository
	cron           *gocron.Scheduler
	logger         *zap.SugaredLogger
}

func New(
	config configs.Scheduler,
	pollService services.PollService,
	pollRepository repositories.PollRepository,
	logger *zap.SugaredLogger,
) *Scheduler {
	return &Scheduler{
		config:         config,
		pollService:    pollService,
		pollRepository: pollRepository,
		cron:           gocron.NewScheduler(time.Local),
		logger:         logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.Cron(s.config.CreateCronSpec).Do(s.createWeeklyPoll); err != nil {
		return fmt.Errorf("schedule poll creation: %w", err)
	}
	if _, err := s.cron.Cron(s.config.CloseCronSpec).Do(s.closeActivePolls); err != nil {
		return fmt.Errorf("schedule poll closing: %w", err)
	}
	if _, err := s.cron.Cron(s.config.CleanupCronSpec).Do(s.purgeExpiredPolls); err != nil {
		return fmt.Errorf("schedule poll cleanup: %w", err)
	}

	s.cron.StartAsync()
	s.logger.Infow("scheduler started",
		"create", s.config.CreateCronSpec,
		"close", s.config.CloseCronSpec,
		"cleanup", s.config.CleanupCronSpec,
	)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) createWeeklyPoll() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	target := NextOccurrence(time.Now(), time.Weekday(s.config.TargetWeekday))
	title := fmt.Sprintf("%s %s attendance check", internal.Format(target), target.Weekday())

	poll, err := s.pollService.Create(ctx, title, s.config.GroupID)
	if err != nil {
		s.logger.Errorw("failed to auto-create poll", "title", title, "error", err)
		return
	}

	s.logger.Infow("auto-created weekly poll", "pollID", poll.ID, "title", title)
}

// closeActivePolls closes every active poll of the group. A failure on one
// poll does not stop the rest, and each poll runs under its own deadline so a
// slow closure cannot starve the tail of the backlog.
func (s *Scheduler) closeActivePolls() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	polls, err := s.pollRepository.GetManyByStatus(ctx, models.PollStatusActive, s.config.GroupID)
	cancel()
	if err != nil {
		s.logger.Errorw("failed to list active polls", "error", err)
		return
	}

	for _, poll := range polls {
		s.closePoll(poll.ID)
	}
}

func (s *Scheduler) closePoll(pollID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.pollService.Close(ctx, pollID); err != nil {
		s.logger.Errorw("failed to auto-close poll", "pollID", pollID, "error", err)
		return
	}
	s.logger.Infow("auto-closed poll", "pollID", pollID)
}

// purgeExpiredPolls deletes closed polls that left the retention window. A
// failed deletion is logged and skipped; each deletion runs under its own
// deadline.
func (s *Scheduler) purgeExpiredPolls() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	polls, err := s.pollRepository.GetManyByStatus(ctx, models.PollStatusClosed, s.config.GroupID)
	cancel()
	if err != nil {
		s.logger.Errorw("failed to list closed polls", "error", err)
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.config.RetentionDays)
	for _, poll := range polls {
		if !expired(poll, cutoff) {
			continue
		}
		s.deleteExpiredPoll(poll.ID)
	}
}

func (s *Scheduler) deleteExpiredPoll(pollID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := s.pollRepository.Delete(ctx, pollID)
	if err != nil {
		s.logger.Errorw("failed to delete expired poll", "pollID", pollID, "error", err)
		return
	}
	if deleted {
		s.logger.Infow("purged expired poll", "pollID", pollID)
	}
}

// expired reports whether a closed poll left the retention window. updated_at
// is the closing timestamp, set by the terminal status update.
func expired(poll *models.Poll, cutoff time.Time) bool {
	return poll.UpdatedAt.Before(cutoff)
}

// NextOccurrence computes the next date of the weekly target weekday at
// midnight. When today already is the target weekday the occurrence is pushed
// a full week out, regardless of time-of-day.
func NextOccurrence(now time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	next := now.AddDate(0, 0, days)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}
