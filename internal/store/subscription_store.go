package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

type SubscriptionWithChannel struct {
	models.Subscription
	Channel models.Channel `json:"channel"`
}

type PostgresSubscriptionStore struct {
	db *sql.DB
}

func NewPostgresSubscriptionStore(db *sql.DB) *PostgresSubscriptionStore {
	return &PostgresSubscriptionStore{db: db}
}

type SubscriptionStore interface {
	Subscribe(userID uuid.UUID, channelID uuid.UUID) (*models.Subscription, error)
	Unsubscribe(userID uuid.UUID, channelID uuid.UUID) error
	GetSubscriptionsByUserID(userID uuid.UUID) ([]SubscriptionWithChannel, error)
	IsSubscribed(userID uuid.UUID, channelID uuid.UUID) (bool, error)
}

// Subscribe creates the subscription row and bumps the channel's subscriber
// counter in one transaction. Subscribing twice is an error, not a no-op, and
// owners cannot subscribe to themselves.
func (pg *PostgresSubscriptionStore) Subscribe(userID uuid.UUID, channelID uuid.UUID) (*models.Subscription, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID uuid.UUID
	err = tx.QueryRow(`SELECT user_id FROM channels WHERE id = $1`, channelID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel: %w", err)
	}

	if ownerID == userID {
		return nil, ErrSelfSubscription
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id = $1 AND channel_id = $2)
	`, userID, channelID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	sub := &models.Subscription{User_ID: userID, Channel_ID: channelID}

	query := `
		INSERT INTO subscriptions (user_id, channel_id, notifications_enabled)
		VALUES ($1, $2, true)
		RETURNING id, notifications_enabled, created_at, updated_at
	`
	err = tx.QueryRow(query, userID, channelID).
		Scan(&sub.Id, &sub.Notifications_Enabled, &sub.Created_At, &sub.Updated_At)
	if isUniqueViolation(err) {
		// The unique (user_id, channel_id) constraint backstops the
		// existence check under concurrent identical requests.
		return nil, ErrAlreadySubscribed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}

	_, err = tx.Exec(`UPDATE channels SET subscribers_count = subscribers_count + 1 WHERE id = $1`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscriber count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sub, nil
}

func (pg *PostgresSubscriptionStore) Unsubscribe(userID uuid.UUID, channelID uuid.UUID) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM subscriptions
		WHERE user_id = $1 AND channel_id = $2
	`, userID, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotSubscribed
	}

	_, err = tx.Exec(`UPDATE channels SET subscribers_count = subscribers_count - 1 WHERE id = $1`, channelID)
	if err != nil {
		return fmt.Errorf("failed to update subscriber count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (pg *PostgresSubscriptionStore) GetSubscriptionsByUserID(userID uuid.UUID) ([]SubscriptionWithChannel, error) {
	query := `
		SELECT
			s.id,
			s.user_id,
			s.channel_id,
			s.notifications_enabled,
			s.created_at,
			s.updated_at,
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
			c.updated_at
		FROM subscriptions s
		INNER JOIN channels c ON s.channel_id = c.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := pg.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []SubscriptionWithChannel
	for rows.Next() {
		var s SubscriptionWithChannel

		err := rows.Scan(
			&s.Id,
			&s.User_ID,
			&s.Channel_ID,
			&s.Notifications_Enabled,
			&s.Created_At,
			&s.Updated_At,
			&s.Channel.Id,
			&s.Channel.User_ID,
			&s.Channel.Name,
			&s.Channel.Slug,
			&s.Channel.Description,
			&s.Channel.Avatar,
			&s.Channel.Banner,
			&s.Channel.Subscribers_Count,
			&s.Channel.Videos_Count,
			&s.Channel.Is_Verified,
			&s.Channel.Allow_NSFW,
			&s.Channel.Created_At,
			&s.Channel.Updated_At,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over subscription rows: %w", err)
	}

	return subs, nil
}

func (pg *PostgresSubscriptionStore) IsSubscribed(userID uuid.UUID, channelID uuid.UUID) (bool, error) {
	var subscribed bool

	query := `
		SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id = $1 AND channel_id = $2)
	`

	if err := pg.db.QueryRow(query, userID, channelID).Scan(&subscribed); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	return subscribed, nil
}
