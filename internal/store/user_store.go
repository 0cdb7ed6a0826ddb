package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/google/uuid"
)

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

type UserStore interface {
	CreateUser(*models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByGoogleID(id string) (*models.User, error)
	DeleteUser(id uuid.UUID) error
}

func (pg *PostgresUserStore) CreateUser(user *models.User) error {

	query := `
	INSERT INTO users (google_id, name, email, image, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`
	err := pg.db.QueryRow(query, user.GoogleID, user.Name, user.Email, user.ImageSrc, user.Role).Scan(&user.ID)

	if err != nil {
		return fmt.Errorf("error running create user query: %w", err)
	}

	return nil
}

func (pg *PostgresUserStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := `
	SELECT id, google_id, name, email, image, role
	FROM users
	WHERE id = $1;
	`

	err := pg.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.GoogleID,
		&user.Name,
		&user.Email,
		&user.ImageSrc,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error running get user by id query: %w", err)
	}

	return user, nil
}

func (pg *PostgresUserStore) GetUserByGoogleID(id string) (*models.User, error) {
	user := &models.User{}

	query := `
	SELECT id, google_id, name, email, image, role
	FROM users
	WHERE google_id = $1
	`

	err := pg.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.GoogleID,
		&user.Name,
		&user.Email,
		&user.ImageSrc,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error running get user by google id query: %w", err)
	}

	return user, nil
}

// DeleteUser removes the account; the owned channel, comments, reactions and
// subscriptions all cascade at the storage layer.
func (pg *PostgresUserStore) DeleteUser(id uuid.UUID) error {
	res, err := pg.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error running delete user query: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}
