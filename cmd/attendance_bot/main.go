package main

import (
	"net/http"
	"time"

	"attendance_poll_bot/configs"
	"attendance_poll_bot/internal/db"
	"attendance_poll_bot/internal/db/repositories"
	"attendance_poll_bot/internal/di"
	"attendance_poll_bot/internal/scheduler"
	"attendance_poll_bot/internal/services"
	tgbot "attendance_poll_bot/internal/tg_bot"
	"attendance_poll_bot/internal/tg_bot/commands"
	"attendance_poll_bot/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewProduction()).Sugar()

	logger.Info("loading config")
	config, err := configs.LoadAttendanceBotConfig()
	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger = di.NewLogger(config.App, config.Logger)
	logger.Info("config loaded")

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	logger.Info("db started")

	pollRepository := repositories.NewPollRepository(database)
	memberRepository := repositories.NewMemberRepository(database)

	logger.Info("creating bot api client")
	// The client timeout bounds every outbound call, display-name lookups
	// included.
	client := &http.Client{Timeout: time.Duration(config.Bot.RequestTimeout) * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(config.Bot.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		logger.Fatalw("failed to create bot api client", "error", err)
	}
	api.Debug = config.App.IsDevEnvironment()

	pollService := services.NewPollService(
		pollRepository,
		memberRepository,
		tgbot.NewNameResolver(api),
		tgbot.NewNotifier(api),
		config.App.OperatorChatID,
		logger,
	)

	logger.Info("starting scheduler")
	pollScheduler := scheduler.New(config.Scheduler, pollService, pollRepository, logger)
	if err := pollScheduler.Start(); err != nil {
		logger.Fatalw("failed to start scheduler", "error", err)
	}
	defer pollScheduler.Stop()

	logger.Info("starting bot")
	tgbot.NewBot(
		api,
		handlers.NewAttendanceBotCommandHandler(
			[]commands.Command{
				commands.NewCreatePollCommand(pollService, logger),
				commands.NewEndPollCommand(pollService, logger),
				commands.NewHelpCommand(),
			},
			pollService,
			config.Scheduler.GroupID,
			logger,
		),
	).Start(config, logger)
}
