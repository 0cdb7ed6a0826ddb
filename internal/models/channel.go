package models

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	Id                uuid.UUID `json:"id"`
	User_ID           uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	Avatar            string    `json:"avatar"`
	Banner            string    `json:"banner"`
	Subscribers_Count int       `json:"subscribers_count"`
	Videos_Count      int       `json:"videos_count"`
	Is_Verified       bool      `json:"is_verified"`
	Allow_NSFW        bool      `json:"allow_nsfw"`
	Created_At        time.Time `json:"created_at"`
	Updated_At        time.Time `json:"updated_at"`
}
