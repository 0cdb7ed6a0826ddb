package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

type CommentWithAuthor struct {
	models.Comment
	Author_Name  string `json:"author_name"`
	Author_Image string `json:"author_image"`
}

// CommentThread is one top-level comment with its direct replies. Replies are
// one level deep: a reply never has replies of its own.
type CommentThread struct {
	CommentWithAuthor
	Replies []CommentWithAuthor `json:"replies"`
}

type PostgresCommentStore struct {
	db *sql.DB
}

func NewPostgresCommentStore(db *sql.DB) *PostgresCommentStore {
	return &PostgresCommentStore{db: db}
}

type CommentStore interface {
	CreateComment(videoID uuid.UUID, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error)
	UpdateComment(actorID uuid.UUID, commentID uuid.UUID, content string) (*models.Comment, error)
	DeleteComment(actorID uuid.UUID, commentID uuid.UUID) error
	GetCommentTree(videoID uuid.UUID) ([]CommentThread, error)
}

// CreateComment posts a comment or a reply and bumps the video's comment
// counter in the same transaction. A reply's parent must belong to the same
// video and must itself be top-level.
func (pg *PostgresCommentStore) CreateComment(videoID uuid.UUID, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up video: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	if parentID != nil {
		var parentVideoID uuid.UUID
		var grandparentID *uuid.UUID
		err = tx.QueryRow(`SELECT video_id, parent_id FROM comments WHERE id = $1`, *parentID).
			Scan(&parentVideoID, &grandparentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidParent
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent comment: %w", err)
		}
		if parentVideoID != videoID || grandparentID != nil {
			return nil, ErrInvalidParent
		}
	}

	comment := &models.Comment{
		Video_ID:  videoID,
		User_ID:   authorID,
		Parent_ID: parentID,
		Content:   content,
	}

	query := `
		INSERT INTO comments (video_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, likes_count, dislikes_count, is_pinned, created_at, updated_at
	`
	err = tx.QueryRow(query, videoID, authorID, parentID, content).
		Scan(&comment.Id, &comment.Likes_Count, &comment.Dislikes_Count, &comment.Is_Pinned, &comment.Created_At, &comment.Updated_At)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	_, err = tx.Exec(`UPDATE videos SET comments_count = comments_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return comment, nil
}

func (pg *PostgresCommentStore) UpdateComment(actorID uuid.UUID, commentID uuid.UUID, content string) (*models.Comment, error) {
	comment := &models.Comment{Id: commentID, Content: content}

	query := `
		UPDATE comments
		SET content = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING video_id, user_id, parent_id, likes_count, dislikes_count, is_pinned, created_at, updated_at
	`

	err := pg.db.QueryRow(query, commentID, actorID, content).Scan(
		&comment.Video_ID,
		&comment.User_ID,
		&comment.Parent_ID,
		&comment.Likes_Count,
		&comment.Dislikes_Count,
		&comment.Is_Pinned,
		&comment.Created_At,
		&comment.Updated_At,
	)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the comment is gone or the actor is not the author.
		var exists bool
		if checkErr := pg.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, commentID).Scan(&exists); checkErr == nil && exists {
			return nil, ErrNotOwner
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment, cascading to its replies, and decrements
// the video's comment counter by everything removed.
func (pg *PostgresCommentStore) DeleteComment(actorID uuid.UUID, commentID uuid.UUID) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var videoID, authorID uuid.UUID
	err = tx.QueryRow(`SELECT video_id, user_id FROM comments WHERE id = $1 FOR UPDATE`, commentID).
		Scan(&videoID, &authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up comment: %w", err)
	}

	if authorID != actorID {
		return ErrNotOwner
	}

	// One statement removes the comment and its replies, so the counter
	// decrement always matches what was actually deleted even when a reply
	// lands concurrently.
	res, err := tx.Exec(`DELETE FROM comments WHERE id = $1 OR parent_id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted comments: %w", err)
	}

	_, err = tx.Exec(`UPDATE videos SET comments_count = comments_count - $2 WHERE id = $1`, videoID, removed)
	if err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetCommentTree fetches every comment on a video in one query and assembles
// the two-level thread structure in memory, newest first on both levels.
func (pg *PostgresCommentStore) GetCommentTree(videoID uuid.UUID) ([]CommentThread, error) {
	query := `
		SELECT
			c.id,
			c.video_id,
			c.user_id,
			c.parent_id,
			c.content,
			c.likes_count,
			c.dislikes_count,
			c.is_pinned,
			c.created_at,
			c.updated_at,
			u.name,
			u.image
		FROM comments c
		INNER JOIN users u ON c.user_id = u.id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := pg.db.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor

		err := rows.Scan(
			&c.Id,
			&c.Video_ID,
			&c.User_ID,
			&c.Parent_ID,
			&c.Content,
			&c.Likes_Count,
			&c.Dislikes_Count,
			&c.Is_Pinned,
			&c.Created_At,
			&c.Updated_At,
			&c.Author_Name,
			&c.Author_Image,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over comment rows: %w", err)
	}

	return assembleCommentTree(comments), nil
}

// assembleCommentTree groups a newest-first flat list into top-level threads
// with their direct replies, preserving the incoming order on both levels.
func assembleCommentTree(comments []CommentWithAuthor) []CommentThread {
	threads := []CommentThread{}
	index := make(map[uuid.UUID]int)

	for _, c := range comments {
		if c.Parent_ID == nil {
			index[c.Id] = len(threads)
			threads = append(threads, CommentThread{CommentWithAuthor: c, Replies: []CommentWithAuthor{}})
		}
	}

	for _, c := range comments {
		if c.Parent_ID == nil {
			continue
		}
		if i, ok := index[*c.Parent_ID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}

	return threads
}
