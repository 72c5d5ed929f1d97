package database

import (
	"database/sql"
	"errors"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// TranslateGorm maps gorm errors onto the storage sentinels.
func TranslateGorm(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return internal.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), IsUniqueViolation(err):
		return internal.ErrDuplicateRecord
	}
	return err
}

// TranslateSQL maps database/sql and driver errors onto the storage sentinels.
func TranslateSQL(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return internal.ErrRecordNotFound
	case IsUniqueViolation(err):
		return internal.ErrDuplicateRecord
	}
	return err
}

// IsUniqueViolation reports a unique constraint failure from postgres or sqlite.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
