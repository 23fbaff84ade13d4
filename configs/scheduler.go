package configs

type Scheduler struct {
	GroupID int64 `env:"GROUP_ID,notEmpty"`
	// Cron specs are five-field, in the scheduler's local time.
	CreateCronSpec  string `env:"POLL_CREATE_CRON" envDefault:"0 18 * * 6"`
	CloseCronSpec   string `env:"POLL_CLOSE_CRON" envDefault:"0 0 * * 6"`
	CleanupCronSpec string `env:"POLL_CLEANUP_CRON" envDefault:"0 3 * * *"`
	// TargetWeekday is the weekday the poll asks about, 0 = Sunday.
	TargetWeekday int `env:"POLL_TARGET_WEEKDAY" envDefault:"6"`
	RetentionDays int `env:"POLL_RETENTION_DAYS" envDefault:"30"`
}
