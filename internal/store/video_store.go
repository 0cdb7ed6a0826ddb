package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

type VideosResponse struct {
	Videos  []models.Video `json:"videos"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

type PlatformStats struct {
	TotalVideos   int `json:"total_videos"`
	SfwVideos     int `json:"sfw_videos"`
	NsfwVideos    int `json:"nsfw_videos"`
	TotalChannels int `json:"total_channels"`
}

type CreateVideoParams struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoPath   string   `json:"video_path"`
	Thumbnail   string   `json:"thumbnail"`
	Duration    int      `json:"duration"`
	IsNSFW      bool     `json:"is_nsfw"`
	Tags        []string `json:"tags"`
}

type UpdateVideoParams struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	IsNSFW      bool              `json:"is_nsfw"`
	Tags        []string          `json:"tags"`
	Visibility  models.Visibility `json:"visibility"`
}

type PostgresVideoStore struct {
	db *sql.DB
}

func NewPostgresVideoStore(db *sql.DB) *PostgresVideoStore {
	if db == nil {
		panic("db cannot be nil for PostgresVideoStore")
	}
	return &PostgresVideoStore{db: db}
}

type VideoStore interface {
	GetFeed(params FeedParams) (*VideosResponse, error)
	GetVideoByID(videoID uuid.UUID) (*models.Video, error)
	ViewVideo(videoID uuid.UUID) (*models.Video, error)
	GetRelatedVideos(video *models.Video) ([]models.Video, error)
	CreateVideo(ownerID uuid.UUID, params CreateVideoParams) (*models.Video, error)
	UpdateVideo(actorID uuid.UUID, videoID uuid.UUID, params UpdateVideoParams) (*models.Video, error)
	DeleteVideo(actorID uuid.UUID, videoID uuid.UUID) error
	GetPlatformStats() (*PlatformStats, error)
}

const videoColumns = `
	v.id,
	v.channel_id,
	v.title,
	v.description,
	v.video_path,
	v.thumbnail,
	v.duration,
	v.views_count,
	v.likes_count,
	v.dislikes_count,
	v.comments_count,
	v.is_nsfw,
	v.is_published,
	v.visibility,
	v.tags,
	v.created_at,
	v.updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVideo(row rowScanner) (*models.Video, error) {
	var v models.Video
	var tags []byte

	err := row.Scan(
		&v.Id,
		&v.Channel_ID,
		&v.Title,
		&v.Description,
		&v.Video_Path,
		&v.Thumbnail,
		&v.Duration,
		&v.Views_Count,
		&v.Likes_Count,
		&v.Dislikes_Count,
		&v.Comments_Count,
		&v.Is_NSFW,
		&v.Is_Published,
		&v.Visibility,
		&tags,
		&v.Created_At,
		&v.Updated_At,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &v.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode video tags: %w", err)
		}
	}

	return &v, nil
}

// GetFeed powers the home feed, the video listing page and channel pages.
// The candidate set, search and sort composition all live in buildFeedQuery.
func (pg *PostgresVideoStore) GetFeed(params FeedParams) (*VideosResponse, error) {
	offset := (params.Page - 1) * params.Limit

	whereSQL, orderSQL, args := buildFeedQuery(params, time.Now())

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM videos v
		WHERE %s
	`, whereSQL)

	var total int
	if err := pg.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to get total video count: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		WHERE %s
		%s
		LIMIT %d OFFSET %d
	`, videoColumns, whereSQL, orderSQL, params.Limit, offset)

	rows, err := pg.db.Query(selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video rows: %w", err)
	}

	hasMore := offset+len(videos) < total

	return &VideosResponse{
		Videos:  videos,
		Page:    params.Page,
		Limit:   params.Limit,
		Total:   total,
		HasMore: hasMore,
	}, nil
}

func (pg *PostgresVideoStore) GetVideoByID(videoID uuid.UUID) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		WHERE v.id = $1
	`, videoColumns)

	video, err := scanVideo(pg.db.QueryRow(query, videoID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	return video, nil
}

// ViewVideo bumps the view counter and returns the updated row in one
// transaction. Every detail-page load counts as a view, no dedup.
func (pg *PostgresVideoStore) ViewVideo(videoID uuid.UUID) (*models.Video, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE videos
		SET views_count = views_count + 1
		WHERE id = $1
	`

	res, err := tx.Exec(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to update video views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	query = fmt.Sprintf(`
		SELECT %s
		FROM videos v
		WHERE v.id = $1
	`, videoColumns)

	video, err := scanVideo(tx.QueryRow(query, videoID))
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return video, nil
}

// GetRelatedVideos lists other public videos with the same content rating,
// newest first, capped at RelatedVideosLimit.
func (pg *PostgresVideoStore) GetRelatedVideos(video *models.Video) ([]models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		WHERE v.is_published = true
			AND v.visibility = 'public'
			AND v.id != $1
			AND v.is_nsfw = $2
		ORDER BY v.created_at DESC
		LIMIT %d
	`, videoColumns, RelatedVideosLimit)

	rows, err := pg.db.Query(query, video.Id, video.Is_NSFW)
	if err != nil {
		return nil, fmt.Errorf("failed to get related videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan related video: %w", err)
		}
		videos = append(videos, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over related video rows: %w", err)
	}

	return videos, nil
}

// CreateVideo uploads into the actor's channel. NSFW uploads require the
// channel to allow NSFW content; the channel video counter moves with the row.
func (pg *PostgresVideoStore) CreateVideo(ownerID uuid.UUID, params CreateVideoParams) (*models.Video, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var channelID uuid.UUID
	var allowNSFW bool
	err = tx.QueryRow(`SELECT id, allow_nsfw FROM channels WHERE user_id = $1`, ownerID).
		Scan(&channelID, &allowNSFW)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoChannel
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel: %w", err)
	}

	if params.IsNSFW && !allowNSFW {
		return nil, ErrNSFWNotAllowed
	}

	tags, err := json.Marshal(params.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode video tags: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO videos (channel_id, title, description, video_path, thumbnail, duration, is_nsfw, is_published, visibility, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, 'public', $8)
		RETURNING %s
	`, strings.ReplaceAll(videoColumns, "v.", ""))

	video, err := scanVideo(tx.QueryRow(query,
		channelID,
		params.Title,
		params.Description,
		params.VideoPath,
		params.Thumbnail,
		params.Duration,
		params.IsNSFW,
		tags,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert video: %w", err)
	}

	_, err = tx.Exec(`UPDATE channels SET videos_count = videos_count + 1 WHERE id = $1`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to update channel video count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return video, nil
}

func (pg *PostgresVideoStore) UpdateVideo(actorID uuid.UUID, videoID uuid.UUID, params UpdateVideoParams) (*models.Video, error) {
	ownerID, err := videoOwner(pg.db, videoID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, ErrNotOwner
	}

	tags, err := json.Marshal(params.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode video tags: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE videos v
		SET title = $2,
			description = $3,
			is_nsfw = $4,
			tags = $5,
			visibility = $6,
			updated_at = now()
		WHERE v.id = $1
		RETURNING %s
	`, videoColumns)

	video, err := scanVideo(pg.db.QueryRow(query,
		videoID,
		params.Title,
		params.Description,
		params.IsNSFW,
		tags,
		params.Visibility,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return video, nil
}

func (pg *PostgresVideoStore) DeleteVideo(actorID uuid.UUID, videoID uuid.UUID) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	ownerID, err := videoOwner(tx, videoID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return ErrNotOwner
	}

	var channelID uuid.UUID
	err = tx.QueryRow(`DELETE FROM videos WHERE id = $1 RETURNING channel_id`, videoID).Scan(&channelID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	_, err = tx.Exec(`UPDATE channels SET videos_count = videos_count - 1 WHERE id = $1`, channelID)
	if err != nil {
		return fmt.Errorf("failed to update channel video count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPlatformStats feeds the home-page sidebar.
func (pg *PostgresVideoStore) GetPlatformStats() (*PlatformStats, error) {
	var stats PlatformStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE is_published = true) as total_videos,
			(SELECT COUNT(*) FROM videos WHERE is_published = true AND is_nsfw = false) as sfw_videos,
			(SELECT COUNT(*) FROM videos WHERE is_published = true AND is_nsfw = true) as nsfw_videos,
			(SELECT COUNT(*) FROM channels) as total_channels;
	`

	err := pg.db.QueryRow(query).Scan(&stats.TotalVideos, &stats.SfwVideos, &stats.NsfwVideos, &stats.TotalChannels)
	if err != nil {
		return nil, fmt.Errorf("error getting platform stats: %w", err)
	}

	return &stats, nil
}

type queryRower interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

func videoOwner(q queryRower, videoID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID

	query := `
		SELECT c.user_id
		FROM videos v
		INNER JOIN channels c ON v.channel_id = c.id
		WHERE v.id = $1
	`

	err := q.QueryRow(query, videoID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up video owner: %w", err)
	}

	return ownerID, nil
}
