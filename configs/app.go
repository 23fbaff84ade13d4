package configs

type App struct {
	Environment string `env:"ENVIRONMENT,notEmpty"`
	// OperatorChatID receives creation acknowledgments and diagnostics.
	OperatorChatID int64 `env:"OPERATOR_CHAT_ID,notEmpty"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}
