package models

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
)

// Reaction is one like/dislike row, either on a video or on a comment
// depending on which table it came from.
type Reaction struct {
	Id         uuid.UUID    `json:"id"`
	User_ID    uuid.UUID    `json:"user_id"`
	Target_ID  uuid.UUID    `json:"target_id"`
	Type       ReactionType `json:"type"`
	Created_At time.Time    `json:"created_at"`
	Updated_At time.Time    `json:"updated_at"`
}
