package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/google/uuid"
)

type ChannelsResponse struct {
	Channels []models.Channel `json:"channels"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int              `json:"total"`
	HasMore  bool             `json:"has_more"`
}

type ChannelParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AllowNSFW   bool   `json:"allow_nsfw"`
}

type PostgresChannelStore struct {
	db *sql.DB
}

func NewPostgresChannelStore(db *sql.DB) *PostgresChannelStore {
	return &PostgresChannelStore{db: db}
}

type ChannelStore interface {
	CreateChannel(ownerID uuid.UUID, params ChannelParams) (*models.Channel, error)
	GetChannelByID(channelID uuid.UUID) (*models.Channel, error)
	GetChannelBySlug(slug string) (*models.Channel, error)
	GetChannelByUserID(userID uuid.UUID) (*models.Channel, error)
	GetChannels(search string, page int) (*ChannelsResponse, error)
	GetTrendingChannels(limit int) ([]models.Channel, error)
	UpdateChannel(actorID uuid.UUID, channelID uuid.UUID, params ChannelParams) (*models.Channel, error)
	DeleteChannel(actorID uuid.UUID, channelID uuid.UUID) error
}

const channelColumns = `
	c.id,
	c.user_id,
	c.name,
	c.slug,
	c.description,
	c.avatar,
	c.banner,
	c.subscribers_count,
	c.videos_count,
	c.is_verified,
	c.allow_nsfw,
	c.created_at,
	c.updated_at`

func scanChannel(row rowScanner) (*models.Channel, error) {
	var c models.Channel

	err := row.Scan(
		&c.Id,
		&c.User_ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Avatar,
		&c.Banner,
		&c.Subscribers_Count,
		&c.Videos_Count,
		&c.Is_Verified,
		&c.Allow_NSFW,
		&c.Created_At,
		&c.Updated_At,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateChannel creates the user's single channel with a unique slug derived
// from the name. Slug collisions resolve by suffixing -1, -2, ... in order.
func (pg *PostgresChannelStore) CreateChannel(ownerID uuid.UUID, params ChannelParams) (*models.Channel, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM channels WHERE user_id = $1)`, ownerID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing channel: %w", err)
	}
	if exists {
		return nil, ErrChannelExists
	}

	base := utils.Slugify(params.Name)
	if base == "" {
		base = "channel"
	}

	slug := base
	for attempt := 0; ; attempt++ {
		slug = utils.SlugCandidate(base, attempt)

		var taken bool
		err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM channels WHERE slug = $1)`, slug).Scan(&taken)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			break
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO channels (user_id, name, slug, description, allow_nsfw)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, strings.ReplaceAll(channelColumns, "c.", ""))

	channel, err := scanChannel(tx.QueryRow(query, ownerID, params.Name, slug, params.Description, params.AllowNSFW))
	if err != nil {
		return nil, fmt.Errorf("failed to insert channel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return channel, nil
}

func (pg *PostgresChannelStore) GetChannelByID(channelID uuid.UUID) (*models.Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM channels c WHERE c.id = $1`, channelColumns)
	return pg.getChannel(query, channelID)
}

func (pg *PostgresChannelStore) GetChannelBySlug(slug string) (*models.Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM channels c WHERE c.slug = $1`, channelColumns)
	return pg.getChannel(query, slug)
}

func (pg *PostgresChannelStore) GetChannelByUserID(userID uuid.UUID) (*models.Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM channels c WHERE c.user_id = $1`, channelColumns)
	return pg.getChannel(query, userID)
}

func (pg *PostgresChannelStore) getChannel(query string, arg interface{}) (*models.Channel, error) {
	channel, err := scanChannel(pg.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan channel: %w", err)
	}

	return channel, nil
}

// GetChannels lists channels ordered by subscriber count, optionally matching
// a search term against name or description.
func (pg *PostgresChannelStore) GetChannels(search string, page int) (*ChannelsResponse, error) {
	limit := ListingLimit
	offset := (page - 1) * limit

	whereClause := "TRUE"
	args := []interface{}{}

	if strings.TrimSpace(search) != "" {
		likeQuery := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
		whereClause = "(LOWER(c.name) LIKE $1 OR LOWER(c.description) LIKE $1)"
		args = append(args, likeQuery)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM channels c WHERE %s`, whereClause)

	var total int
	if err := pg.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to get total channel count: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM channels c
		WHERE %s
		ORDER BY c.subscribers_count DESC, c.created_at DESC
		LIMIT %d OFFSET %d
	`, channelColumns, whereClause, limit, offset)

	rows, err := pg.db.Query(selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over channel rows: %w", err)
	}

	hasMore := offset+len(channels) < total

	return &ChannelsResponse{
		Channels: channels,
		Page:     page,
		Limit:    limit,
		Total:    total,
		HasMore:  hasMore,
	}, nil
}

func (pg *PostgresChannelStore) GetTrendingChannels(limit int) ([]models.Channel, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM channels c
		ORDER BY c.subscribers_count DESC, c.created_at DESC
		LIMIT %d
	`, channelColumns, limit)

	rows, err := pg.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trending channel: %w", err)
		}
		channels = append(channels, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trending channel rows: %w", err)
	}

	return channels, nil
}

func (pg *PostgresChannelStore) UpdateChannel(actorID uuid.UUID, channelID uuid.UUID, params ChannelParams) (*models.Channel, error) {
	channel, err := pg.GetChannelByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.User_ID != actorID {
		return nil, ErrNotOwner
	}

	// The slug stays stable once assigned, even when the name changes.
	query := fmt.Sprintf(`
		UPDATE channels c
		SET name = $2,
			description = $3,
			allow_nsfw = $4,
			updated_at = now()
		WHERE c.id = $1
		RETURNING %s
	`, channelColumns)

	updated, err := scanChannel(pg.db.QueryRow(query, channelID, params.Name, params.Description, params.AllowNSFW))
	if err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}

	return updated, nil
}

func (pg *PostgresChannelStore) DeleteChannel(actorID uuid.UUID, channelID uuid.UUID) error {
	channel, err := pg.GetChannelByID(channelID)
	if err != nil {
		return err
	}
	if channel.User_ID != actorID {
		return ErrNotOwner
	}

	// Videos, their reactions and comments go with the channel via FK cascade.
	_, err = pg.db.Exec(`DELETE FROM channels WHERE id = $1`, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return nil
}
