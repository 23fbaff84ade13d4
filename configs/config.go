package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type AttendanceBotConfig struct {
	App       App
	Bot       Bot
	DB        DB
	Logger    Logger
	Scheduler Scheduler
}

func LoadAttendanceBotConfig() (AttendanceBotConfig, error) {
	var config AttendanceBotConfig

	if err := env.Parse(&config); err != nil {
		return AttendanceBotConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
