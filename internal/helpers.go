package internal

import "time"

const (
	formatMMDD = "01/02"
)

func Format(date time.Time) string {
	return date.Format(formatMMDD)
}
