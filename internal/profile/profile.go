// Package profile persists the per-user onboarding state: language and phone.
package profile

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/m3rciful/shopbot/internal/language"
)

var (
	// ErrNotFound is returned when no user row exists.
	ErrNotFound = errors.New("profile: not found")
	// ErrStorageUnavailable wraps every failure of the backing database.
	ErrStorageUnavailable = errors.New("profile: storage unavailable")
)

var storageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shopbot",
	Subsystem: "profiles",
	Name:      "storage_errors_total",
	Help:      "Profile storage failures by operation.",
}, []string{"op"})

// Profile is the stored onboarding state of one user.
// LanguageID is language.Unset and Phone is empty until the user provides them.
type Profile struct {
	ID         int64       `json:"id"`
	LanguageID language.ID `json:"language_id"`
	Phone      string      `json:"phone"`
}

// User carries the Telegram identity used to provision a row.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Store is the contract the onboarding flow relies on.
type Store interface {
	Fetch(ctx context.Context, userID int64) (Profile, error)
	SetLanguage(ctx context.Context, userID int64, id language.ID) (language.ID, error)
	SetPhone(ctx context.Context, userID int64, raw string) (bool, error)
}
