package tgbot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"attendance_poll_bot/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type notifier struct {
	api *tgbotapi.BotAPI
}

func NewNotifier(api *tgbotapi.BotAPI) services.Notifier {
	return &notifier{api: api}
}

func (n *notifier) Send(message tgbotapi.Chattable) error {
	_, err := n.api.Send(message)
	return err
}

// nameResolver resolves display names through the chat member API. Lookup
// time is bounded by the bot client's HTTP timeout.
type nameResolver struct {
	api *tgbotapi.BotAPI
}

func NewNameResolver(api *tgbotapi.BotAPI) services.NameResolver {
	return &nameResolver{api: api}
}

func (r *nameResolver) DisplayName(groupID int64, userID string) (string, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse user id: %w", err)
	}

	member, err := r.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: groupID,
			UserID: id,
		},
	})
	if err != nil {
		return "", err
	}
	if member.User == nil {
		return "", errors.New("chat member has no user")
	}

	name := strings.TrimSpace(member.User.FirstName + " " + member.User.LastName)
	if name == "" {
		name = member.User.UserName
	}
	if name == "" {
		return "", errors.New("chat member has no display name")
	}

	return name, nil
}
