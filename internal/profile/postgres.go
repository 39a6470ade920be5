package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/language"
)

const (
	queryFetch = `SELECT id, language_id, phone FROM users WHERE id = $1`

	querySetLanguage = `UPDATE users SET language_id = $2, updated_at = now()
WHERE id = $1 AND language_id IS DISTINCT FROM $2`

	querySetPhone = `UPDATE users SET phone = $2, updated_at = now() WHERE id = $1`

	queryProvision = `INSERT INTO users (id, username, first_name)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name, updated_at = now()
WHERE users.username IS DISTINCT FROM EXCLUDED.username OR users.first_name IS DISTINCT FROM EXCLUDED.first_name`
)

type row struct {
	ID         int64         `db:"id"`
	LanguageID sql.NullInt64 `db:"language_id"`
	Phone      string        `db:"phone"`
}

// PostgresStore keeps profiles in the users table.
type PostgresStore struct {
	db  *sqlx.DB
	reg *language.Registry
}

// NewPostgresStore returns a store backed by db. reg validates language ids.
func NewPostgresStore(db *sqlx.DB, reg *language.Registry) *PostgresStore {
	return &PostgresStore{db: db, reg: reg}
}

// Fetch returns the stored profile. Unsupported stored languages read as Unset.
func (s *PostgresStore) Fetch(ctx context.Context, userID int64) (Profile, error) {
	var r row
	if err := s.db.GetContext(ctx, &r, queryFetch, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, s.fail(ctx, "fetch", userID, err)
	}
	p := Profile{ID: r.ID, Phone: r.Phone}
	if r.LanguageID.Valid {
		p.LanguageID = s.reg.Effective(language.ID(r.LanguageID.Int64))
	}
	return p, nil
}

// SetLanguage stores id when it is supported and differs from the stored value.
// Unsupported ids return Unset without touching storage.
func (s *PostgresStore) SetLanguage(ctx context.Context, userID int64, id language.ID) (language.ID, error) {
	if !s.reg.IsSupported(id) {
		logger.Debug(ctx, logger.ComponentProfiles, "language.rejected",
			slog.Int("lang", int(id)),
		)
		return language.Unset, nil
	}
	start := time.Now()
	res, err := s.db.ExecContext(ctx, querySetLanguage, userID, int64(id))
	if err != nil {
		return language.Unset, s.fail(ctx, "set_language", userID, err)
	}
	n, _ := res.RowsAffected()
	logger.Info(ctx, logger.ComponentProfiles, "language.set",
		slog.Int("lang", int(id)),
		slog.Bool("changed", n > 0),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// SetPhone normalizes raw and stores it. It reports whether exactly one row was updated.
func (s *PostgresStore) SetPhone(ctx context.Context, userID int64, raw string) (bool, error) {
	phone, ok := NormalizePhone(raw)
	if !ok {
		logger.Debug(ctx, logger.ComponentProfiles, "phone.rejected")
		return false, nil
	}
	start := time.Now()
	res, err := s.db.ExecContext(ctx, querySetPhone, userID, phone)
	if err != nil {
		return false, s.fail(ctx, "set_phone", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail(ctx, "set_phone", userID, err)
	}
	logger.Info(ctx, logger.ComponentProfiles, "phone.set",
		slog.Int64("rows", n),
		slog.Duration("duration", logger.Took(start)),
	)
	return n == 1, nil
}

// Provision creates the row for u or refreshes its Telegram names.
// Language and phone are left untouched.
func (s *PostgresStore) Provision(ctx context.Context, u User) error {
	if _, err := s.db.ExecContext(ctx, queryProvision, u.ID, u.Username, u.FirstName); err != nil {
		return s.fail(ctx, "provision", u.ID, err)
	}
	return nil
}

func (s *PostgresStore) fail(ctx context.Context, op string, userID int64, err error) error {
	storageErrors.WithLabelValues(op).Inc()
	logger.Error(ctx, logger.ComponentProfiles, op+".fail",
		slog.Int64("user_id", userID),
		slog.String("op", op),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	return fmt.Errorf("profile: %s: %w: %w", op, ErrStorageUnavailable, err)
}
