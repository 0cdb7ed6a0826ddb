package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id                    uuid.UUID `json:"id"`
	User_ID               uuid.UUID `json:"user_id"`
	Channel_ID            uuid.UUID `json:"channel_id"`
	Notifications_Enabled bool      `json:"notifications_enabled"`
	Created_At            time.Time `json:"created_at"`
	Updated_At            time.Time `json:"updated_at"`
}
