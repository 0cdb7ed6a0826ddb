package models

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

type Video struct {
	Id             uuid.UUID  `json:"id"`
	Channel_ID     uuid.UUID  `json:"channel_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Video_Path     string     `json:"video_path"`
	Thumbnail      string     `json:"thumbnail"`
	Duration       int        `json:"duration"`
	Views_Count    int64      `json:"views_count"`
	Likes_Count    int        `json:"likes_count"`
	Dislikes_Count int        `json:"dislikes_count"`
	Comments_Count int        `json:"comments_count"`
	Is_NSFW        bool       `json:"is_nsfw"`
	Is_Published   bool       `json:"is_published"`
	Visibility     Visibility `json:"visibility"`
	Tags           []string   `json:"tags"`
	Created_At     time.Time  `json:"created_at"`
	Updated_At     time.Time  `json:"updated_at"`
}
