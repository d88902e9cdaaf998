package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestPgCodes(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_phone_number_key"}
	wrapped := fmt.Errorf("insert user: %w", unique)

	assert.True(t, isUniqueViolation(wrapped))
	assert.Equal(t, "users_phone_number_key", uniqueConstraint(wrapped))
	assert.False(t, isForeignKeyViolation(wrapped))

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestIsNoRow_IDNoUUIDEquivaleAInexistente(t *testing.T) {
	assert.True(t, isNoRow(pgx.ErrNoRows))
	assert.True(t, isNoRow(fmt.Errorf("scan: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, isNoRow(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRow(errors.New("connection reset")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("boom")))
}

func TestMapUserWriteError(t *testing.T) {
	phone := &pgconn.PgError{Code: "23505", ConstraintName: "users_phone_number_key"}
	email := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.ErrorIs(t, mapUserWriteError("insert user", phone), domain.ErrPhoneAlreadyExists)
	assert.ErrorIs(t, mapUserWriteError("insert user", email), domain.ErrEmailAlreadyExists)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/pos?sslmode=disable", migrateURL("postgres://u:p@db:5432/pos?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/pos", migrateURL("postgresql://u:p@db/pos"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
