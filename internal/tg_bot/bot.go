package tgbot

import (
	"attendance_poll_bot/configs"
	"attendance_poll_bot/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type bot struct {
	api     *tgbotapi.BotAPI
	handler handlers.CommandHandler
}

type Bot interface {
	Start(config configs.AttendanceBotConfig, logger *zap.SugaredLogger)
}

func NewBot(api *tgbotapi.BotAPI, handler handlers.CommandHandler) Bot {
	return &bot{api: api, handler: handler}
}

func (b *bot) Start(config configs.AttendanceBotConfig, logger *zap.SugaredLogger) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = config.Bot.UpdateTimeout

	logger.Info("bot started")
	for update := range b.api.GetUpdatesChan(u) {
		for _, message := range b.handler.Handle(update) {
			b.deliver(message, logger)
		}
	}
}

func (b *bot) deliver(message tgbotapi.Chattable, logger *zap.SugaredLogger) {
	// Callback answers are plain API requests, not messages.
	if callback, ok := message.(tgbotapi.CallbackConfig); ok {
		if _, err := b.api.Request(callback); err != nil {
			logger.Errorf("failed to answer callback: %v", err)
		}
		return
	}

	if _, err := b.api.Send(message); err != nil {
		logger.Errorf("failed to send message: %v", err)
	}
}
