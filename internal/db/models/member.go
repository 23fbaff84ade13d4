package models

import "time"

// MaskedName derives a placeholder display name from the identifier's
// trailing characters, used whenever profile lookup fails.
func MaskedName(userID string) string {
	if len(userID) > 4 {
		userID = userID[len(userID)-4:]
	}
	return "User_" + userID
}

// Member is a group participant remembered for result rendering. Members are
// upserted on every vote and never deleted.
type Member struct {
	GroupID   int64     `json:"group_id" bson:"group_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
