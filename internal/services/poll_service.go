package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"attendance_poll_bot/internal/db/models"
	"attendance_poll_bot/internal/db/repositories"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a single message; delivery is fire-and-forget beyond the
// returned error.
type Notifier interface {
	Send(message tgbotapi.Chattable) error
}

// NameResolver looks up a member's display name. Implementations must bound
// the lookup; callers always have a masked fallback.
type NameResolver interface {
	DisplayName(groupID int64, userID string) (string, error)
}

type PollResult struct {
	Poll  *models.Poll
	Tally Tally
	// Roster maps each option to the resolved participant display names.
	Roster map[models.OptionKey][]string
}

type PollService interface {
	Create(ctx context.Context, title string, groupID int64) (*models.Poll, error)
	Vote(ctx context.Context, pollID, userID string, option models.OptionKey) (VoteConfirmation, error)
	Close(ctx context.Context, pollID string) (*PollResult, error)
	CloseNewest(ctx context.Context, groupID int64) (*PollResult, error)
}

type pollService struct {
	pollRepository   repositories.PollRepository
	memberRepository repositories.MemberRepository
	resolver         NameResolver
	notifier         Notifier
	operatorChatID   int64
	logger           *zap.SugaredLogger
}

func NewPollService(
	pollRepository repositories.PollRepository,
	memberRepository repositories.MemberRepository,
	resolver NameResolver,
	notifier Notifier,
	operatorChatID int64,
	logger *zap.SugaredLogger,
) PollService {
	return &pollService{
		pollRepository:   pollRepository,
		memberRepository: memberRepository,
		resolver:         resolver,
		notifier:         notifier,
		operatorChatID:   operatorChatID,
		logger:           logger,
	}
}

func (s *pollService) Create(ctx context.Context, title string, groupID int64) (*models.Poll, error) {
	poll := models.NewPoll(uuid.NewString(), title, groupID, time.Now().UTC())

	if err := s.pollRepository.Upsert(ctx, poll); err != nil {
		s.logger.Errorw("failed to save poll", "pollID", poll.ID, "error", err)
		s.notifyOperator(fmt.Sprintf("Failed to create poll %q: storage error.", title))
		return nil, err
	}

	if err := s.notifier.Send(NewPollMessage(poll)); err != nil {
		s.logger.Errorw("failed to send poll card", "pollID", poll.ID, "error", err)
	}

	s.notifyOperator(fmt.Sprintf(
		"📊 Created a new poll: %s\n\nPoll ID: %s\n\nUse /endpoll to see results when ready.",
		poll.Title, poll.ID,
	))

	s.logger.Infow("created poll", "pollID", poll.ID, "title", title, "groupID", groupID)
	return poll, nil
}

func (s *pollService) Vote(ctx context.Context, pollID, userID string, option models.OptionKey) (VoteConfirmation, error) {
	poll, err := s.pollRepository.GetOne(ctx, pollID)
	if err != nil {
		s.logger.Errorw("failed to get poll", "pollID", pollID, "error", err)
		return VoteConfirmation{}, err
	}
	if poll == nil {
		return VoteConfirmation{}, ErrPollNotFound
	}
	if !poll.IsActive() {
		return VoteConfirmation{}, ErrPollClosed
	}

	name := s.rememberMember(ctx, poll.GroupID, userID)

	found, previous, err := s.pollRepository.CastVote(ctx, pollID, userID, option)
	if err != nil {
		s.logger.Errorw("failed to cast vote", "pollID", pollID, "userID", userID, "error", err)
		return VoteConfirmation{}, err
	}
	if !found {
		return VoteConfirmation{}, ErrPollNotFound
	}

	confirmation := NewVoteConfirmation(ClassifyVote(previous, option), previous, option)
	s.sendConfirmation(pollID, userID, poll.Title, confirmation)

	s.logger.Infow("vote cast", "pollID", pollID, "voter", name, "option", option, "previous", previous)
	return confirmation, nil
}

// Close tallies the poll, marks it closed and delivers the results card. A
// poll that is already closed is rejected with ErrPollClosed. The poll stays
// closed even when result delivery fails; the failure is only logged.
func (s *pollService) Close(ctx context.Context, pollID string) (*PollResult, error) {
	poll, err := s.pollRepository.GetOne(ctx, pollID)
	if err != nil {
		s.logger.Errorw("failed to get poll", "pollID", pollID, "error", err)
		return nil, err
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}
	if !poll.IsActive() {
		return nil, ErrPollClosed
	}

	result := &PollResult{
		Poll:   poll,
		Tally:  TallyPoll(poll),
		Roster: s.buildRoster(ctx, poll),
	}

	updated, err := s.pollRepository.UpdateStatus(ctx, poll.ID, models.PollStatusClosed)
	if err != nil {
		s.logger.Errorw("failed to close poll", "pollID", poll.ID, "error", err)
		return nil, err
	}
	if !updated {
		return nil, ErrPollNotFound
	}
	poll.Status = models.PollStatusClosed

	if err := s.notifier.Send(NewPollResultsMessage(result)); err != nil {
		s.logger.Errorw("failed to deliver poll results", "pollID", poll.ID, "error", err)
	}

	s.logger.Infow("closed poll", "pollID", poll.ID, "totalVotes", result.Tally.Total)
	return result, nil
}

// CloseNewest resolves a close request without an explicit id: the most
// recently created active poll of the group wins. Poll ids carry no ordering.
func (s *pollService) CloseNewest(ctx context.Context, groupID int64) (*PollResult, error) {
	polls, err := s.pollRepository.GetManyByStatus(ctx, models.PollStatusActive, groupID)
	if err != nil {
		s.logger.Errorw("failed to list active polls", "groupID", groupID, "error", err)
		return nil, err
	}
	if len(polls) == 0 {
		return nil, ErrNoActivePolls
	}

	sort.Slice(polls, func(i, j int) bool {
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})

	return s.Close(ctx, polls[0].ID)
}

// rememberMember resolves the voter's display name and upserts the member
// record. Everything here is best-effort: a failed lookup falls back to a
// masked placeholder and keeps any name already stored.
func (s *pollService) rememberMember(ctx context.Context, groupID int64, userID string) string {
	name, err := s.resolver.DisplayName(groupID, userID)
	if err != nil {
		s.logger.Warnw("failed to resolve display name", "userID", userID, "error", err)
		name = ""
	}

	if err := s.memberRepository.Save(ctx, groupID, userID, name); err != nil {
		s.logger.Errorw("failed to save member", "groupID", groupID, "userID", userID, "error", err)
	}

	if name == "" {
		return models.MaskedName(userID)
	}
	return name
}

// buildRoster resolves display names per option, preferring the names stored
// at vote time over a live lookup. A single failed lookup masks that one name
// and never aborts the closure.
func (s *pollService) buildRoster(ctx context.Context, poll *models.Poll) map[models.OptionKey][]string {
	stored := s.storedNames(ctx, poll.GroupID, poll.VoterCount())
	roster := make(map[models.OptionKey][]string)

	for _, option := range models.OptionKeys() {
		voters := poll.OptionVoters(option)
		names := make([]string, 0, len(voters))

		for _, userID := range voters {
			name := stored[userID]
			if name == "" {
				var err error
				name, err = s.resolver.DisplayName(poll.GroupID, userID)
				if err != nil {
					s.logger.Warnw("failed to resolve participant name", "pollID", poll.ID, "userID", userID, "error", err)
					name = models.MaskedName(userID)
				}
			}
			names = append(names, "@"+name)
		}

		roster[option] = names
	}

	return roster
}

func (s *pollService) storedNames(ctx context.Context, groupID int64, voterCount int) map[string]string {
	if voterCount == 0 {
		return nil
	}

	members, err := s.memberRepository.GetManyByGroup(ctx, groupID)
	if err != nil {
		s.logger.Warnw("failed to list members", "groupID", groupID, "error", err)
		return nil
	}

	stored := make(map[string]string, len(members))
	for _, member := range members {
		stored[member.UserID] = member.Name
	}
	return stored
}

// sendConfirmation pushes the personal confirmation to the voter's direct
// chat. A user id that is not a chat id gets no confirmation; the vote itself
// already succeeded.
func (s *pollService) sendConfirmation(pollID, userID, pollTitle string, confirmation VoteConfirmation) {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		s.logger.Warnw("cannot derive chat from user id", "pollID", pollID, "userID", userID, "error", err)
		return
	}

	if err := s.notifier.Send(NewVoteConfirmationMessage(chatID, pollTitle, confirmation)); err != nil {
		s.logger.Errorw("failed to send vote confirmation", "pollID", pollID, "userID", userID, "error", err)
	}
}

func (s *pollService) notifyOperator(text string) {
	if err := s.notifier.Send(tgbotapi.NewMessage(s.operatorChatID, text)); err != nil {
		s.logger.Errorw("failed to notify operator", "error", err)
	}
}
