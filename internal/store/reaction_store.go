package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

// ReactionState is what the like endpoint returns: the actor's reaction after
// the toggle (nil when it was cleared) plus the target's updated counters.
type ReactionState struct {
	Reaction      *models.ReactionType `json:"reaction"`
	LikesCount    int                  `json:"likes_count"`
	DislikesCount int                  `json:"dislikes_count"`
}

type reactionAction int

const (
	reactionCreate reactionAction = iota
	reactionDelete
	reactionSwitch
)

// resolveReaction decides the toggle transition: no existing reaction creates
// one, repeating the same type clears it, the opposite type switches it.
// The returned deltas are applied to likes_count/dislikes_count.
func resolveReaction(existing *models.ReactionType, requested models.ReactionType) (reactionAction, int, int) {
	if existing == nil {
		if requested == models.ReactionLike {
			return reactionCreate, 1, 0
		}
		return reactionCreate, 0, 1
	}

	if *existing == requested {
		if requested == models.ReactionLike {
			return reactionDelete, -1, 0
		}
		return reactionDelete, 0, -1
	}

	if requested == models.ReactionLike {
		return reactionSwitch, 1, -1
	}
	return reactionSwitch, -1, 1
}

type PostgresReactionStore struct {
	db *sql.DB
}

func NewPostgresReactionStore(db *sql.DB) *PostgresReactionStore {
	return &PostgresReactionStore{db: db}
}

type ReactionStore interface {
	React(actorID uuid.UUID, targetID uuid.UUID, kind models.TargetKind, reactionType models.ReactionType) (*ReactionState, error)
	GetVideoReaction(actorID uuid.UUID, videoID uuid.UUID) (*models.ReactionType, error)
}

// React runs the whole toggle as one transaction: the reaction row change and
// the denormalized counter change commit together or not at all. The row-level
// lock on the existing reaction serializes concurrent toggles from the same
// actor; the unique (user, target) constraint closes the create race.
func (pg *PostgresReactionStore) React(actorID uuid.UUID, targetID uuid.UUID, kind models.TargetKind, reactionType models.ReactionType) (*ReactionState, error) {
	likeTable, targetColumn, targetTable, err := reactionTables(kind)
	if err != nil {
		return nil, err
	}

	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, targetTable), targetID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reaction target: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var existing *models.ReactionType
	var current models.ReactionType
	err = tx.QueryRow(fmt.Sprintf(`
		SELECT type FROM %s
		WHERE user_id = $1 AND %s = $2
		FOR UPDATE
	`, likeTable, targetColumn), actorID, targetID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up existing reaction: %w", err)
	}
	if err == nil {
		existing = &current
	}

	action, likeDelta, dislikeDelta := resolveReaction(existing, reactionType)

	switch action {
	case reactionCreate:
		_, err = tx.Exec(fmt.Sprintf(`
			INSERT INTO %s (user_id, %s, type)
			VALUES ($1, $2, $3)
		`, likeTable, targetColumn), actorID, targetID, reactionType)
	case reactionDelete:
		_, err = tx.Exec(fmt.Sprintf(`
			DELETE FROM %s
			WHERE user_id = $1 AND %s = $2
		`, likeTable, targetColumn), actorID, targetID)
	case reactionSwitch:
		_, err = tx.Exec(fmt.Sprintf(`
			UPDATE %s
			SET type = $3, updated_at = now()
			WHERE user_id = $1 AND %s = $2
		`, likeTable, targetColumn), actorID, targetID, reactionType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply reaction change: %w", err)
	}

	state := &ReactionState{}
	err = tx.QueryRow(fmt.Sprintf(`
		UPDATE %s
		SET likes_count = likes_count + $2,
			dislikes_count = dislikes_count + $3
		WHERE id = $1
		RETURNING likes_count, dislikes_count
	`, targetTable), targetID, likeDelta, dislikeDelta).Scan(&state.LikesCount, &state.DislikesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to update reaction counters: %w", err)
	}

	if action != reactionDelete {
		state.Reaction = &reactionType
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return state, nil
}

// GetVideoReaction reports the actor's current reaction on a video, nil when
// there is none. The detail page uses it to highlight the like buttons.
func (pg *PostgresReactionStore) GetVideoReaction(actorID uuid.UUID, videoID uuid.UUID) (*models.ReactionType, error) {
	var reaction models.ReactionType

	query := `
		SELECT type FROM video_likes
		WHERE user_id = $1 AND video_id = $2
	`

	err := pg.db.QueryRow(query, actorID, videoID).Scan(&reaction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up video reaction: %w", err)
	}

	return &reaction, nil
}

func reactionTables(kind models.TargetKind) (string, string, string, error) {
	switch kind {
	case models.TargetVideo:
		return "video_likes", "video_id", "videos", nil
	case models.TargetComment:
		return "comment_likes", "comment_id", "comments", nil
	default:
		return "", "", "", fmt.Errorf("unknown reaction target kind: %s", kind)
	}
}
