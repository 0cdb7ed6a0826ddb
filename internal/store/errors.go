package store

import (
	"errors"

	"github.com/jackc/pgconn"
)

// Sentinel errors surfaced to handlers. Anything else coming out of a store
// is treated as a storage failure and mapped to a 500.
var (
	ErrNotFound          = errors.New("record not found")
	ErrNotOwner          = errors.New("actor does not own this record")
	ErrChannelExists     = errors.New("user already has a channel")
	ErrNoChannel         = errors.New("user has no channel")
	ErrSelfSubscription  = errors.New("cannot subscribe to your own channel")
	ErrAlreadySubscribed = errors.New("already subscribed to this channel")
	ErrNotSubscribed     = errors.New("not subscribed to this channel")
	ErrInvalidParent     = errors.New("parent comment is invalid for this video")
	ErrNSFWNotAllowed    = errors.New("channel does not allow NSFW uploads")
)

// isUniqueViolation reports whether err came from a Postgres unique
// constraint. Existence checks run first, but under concurrent identical
// requests the constraint is what actually closes the race.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
