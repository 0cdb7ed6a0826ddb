package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "subscriptions_user_id_channel_id_key"}

	if !isUniqueViolation(unique) {
		t.Error("expected unique violation to be detected")
	}
	if !isUniqueViolation(fmt.Errorf("failed to insert subscription: %w", unique)) {
		t.Error("wrapped unique violation must still be detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation must not match")
	}
	if isUniqueViolation(errors.New("db on fire")) {
		t.Error("plain error must not match")
	}
	if isUniqueViolation(nil) {
		t.Error("nil must not match")
	}
}
