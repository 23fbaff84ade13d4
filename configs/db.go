package configs

type DB struct {
	URL  string `env:"MONGODB_URI,notEmpty"`
	Name string `env:"MONGODB_DB" envDefault:"attendance_poll_db"`
}
