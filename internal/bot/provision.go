package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m3rciful/shopbot/core/logger"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/profile"

	tele "gopkg.in/telebot.v4"
)

// maxProvisioned bounds the set of senders remembered as already provisioned.
const maxProvisioned = 50_000

// Provisioner creates or refreshes the row of a Telegram user.
type Provisioner interface {
	Provision(ctx context.Context, u profile.User) error
}

// provisionedSet remembers provisioned senders. When full it starts over;
// forgotten senders are upserted again on their next update.
type provisionedSet struct {
	mu    sync.Mutex
	users map[int64]profile.User
	limit int
}

func (s *provisionedSet) has(u profile.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.users[u.ID]
	return ok && prev == u
}

func (s *provisionedSet) add(u profile.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok && len(s.users) >= s.limit {
		clear(s.users)
	}
	s.users[u.ID] = u
}

// ProvisionMiddleware makes sure every sender has a users row before handlers run.
// Senders already provisioned with the same names are skipped. Failures are logged
// and the update continues; the handler then reports the storage error itself.
func ProvisionMiddleware(p Provisioner) tele.MiddlewareFunc {
	return provisionMiddleware(p, maxProvisioned)
}

func provisionMiddleware(p Provisioner, limit int) tele.MiddlewareFunc {
	seen := &provisionedSet{users: make(map[int64]profile.User), limit: limit}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.IsBot {
				return next(c)
			}
			u := profile.User{ID: sender.ID, Username: sender.Username, FirstName: sender.FirstName}
			if seen.has(u) {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)
			if err := p.Provision(ctx, u); err != nil {
				logger.Warn(ctx, logger.ComponentProfiles, "provision",
					slog.String("status", "fail"),
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
				return next(c)
			}
			seen.add(u)
			return next(c)
		}
	}
}
