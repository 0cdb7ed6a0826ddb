package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id             uuid.UUID  `json:"id"`
	Video_ID       uuid.UUID  `json:"video_id"`
	User_ID        uuid.UUID  `json:"user_id"`
	Parent_ID      *uuid.UUID `json:"parent_id"`
	Content        string     `json:"content"`
	Likes_Count    int        `json:"likes_count"`
	Dislikes_Count int        `json:"dislikes_count"`
	Is_Pinned      bool       `json:"is_pinned"`
	Created_At     time.Time  `json:"created_at"`
	Updated_At     time.Time  `json:"updated_at"`
}
