// Package onboarding drives the first conversation with a user: pick a language,
// share a phone number, then land in the main menu.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/language"
	"github.com/m3rciful/shopbot/internal/menu"
	"github.com/m3rciful/shopbot/internal/profile"
)

var responsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shopbot",
	Subsystem: "onboarding",
	Name:      "responses_total",
	Help:      "Onboarding responses by menu kind.",
}, []string{"menu"})

// Contact is a phone number shared through the client's contact button.
type Contact struct {
	Phone string
}

// Inbound is one message from a user.
type Inbound struct {
	ChatID  int64
	UserID  int64
	Text    string
	Contact *Contact
}

// Response is the single reply produced for an Inbound.
type Response struct {
	ChatID int64
	Text   string
	Menu   menu.Menu
}

// Controller decides the next screen from the message and the stored profile.
// It keeps no per-user state; every call re-reads the store.
type Controller struct {
	store profile.Store
	reg   *language.Registry
	tr    menu.Translator
	menus *menu.Builder
}

// NewController wires a Controller.
func NewController(store profile.Store, reg *language.Registry, tr menu.Translator) *Controller {
	return &Controller{
		store: store,
		reg:   reg,
		tr:    tr,
		menus: menu.NewBuilder(tr, reg),
	}
}

// Handle processes one inbound message. Storage errors abort the turn and no
// response is produced.
func (c *Controller) Handle(ctx context.Context, in Inbound) (Response, error) {
	return c.turn(ctx, in, menu.KindMain)
}

// Others runs the same gates as Handle but answers a ready user with the others menu.
func (c *Controller) Others(ctx context.Context, in Inbound) (Response, error) {
	return c.turn(ctx, in, menu.KindOthers)
}

func (c *Controller) turn(ctx context.Context, in Inbound, ready menu.Kind) (Response, error) {
	start := time.Now()
	text := strings.TrimSpace(in.Text)

	if id, ok := parseLanguageID(text); ok {
		if _, err := c.store.SetLanguage(ctx, in.UserID, id); err != nil {
			return Response{}, fmt.Errorf("onboarding: set language: %w", err)
		}
	}

	contactJustSet := false
	if hasToken(text, TokenSetContact) && in.Contact != nil {
		ok, err := c.store.SetPhone(ctx, in.UserID, in.Contact.Phone)
		if err != nil {
			return Response{}, fmt.Errorf("onboarding: set phone: %w", err)
		}
		contactJustSet = ok
	}

	p, err := c.store.Fetch(ctx, in.UserID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			return Response{}, fmt.Errorf("onboarding: fetch profile: %w", err)
		}
		logger.Warn(ctx, logger.ComponentOnboarding, "profile.missing")
		p = profile.Profile{ID: in.UserID}
	}
	lang := c.reg.Effective(p.LanguageID)

	var (
		resp Response
		gate string
	)
	switch {
	case lang == language.Unset || hasToken(text, TokenChooseLanguage):
		gate = "language"
		def := c.reg.Default()
		resp = c.reply(in, c.tr.T(def, "choose_language"), c.menus.LanguagePicker(def))
	case p.Phone == "" || hasToken(text, TokenChangePhone):
		gate = "contact"
		resp = c.reply(in, c.tr.T(lang, "send_your_contacts"), c.menus.ContactPrompt(lang))
	default:
		gate = "ready"
		msg := c.tr.T(lang, "choose_action")
		if contactJustSet {
			msg = c.tr.T(lang, "phone_number_saved") + "\n" + msg
		}
		resp = c.reply(in, msg, c.menus.Build(ready, lang))
	}

	responsesTotal.WithLabelValues(resp.Menu.Kind.String()).Inc()
	logger.Info(ctx, logger.ComponentOnboarding, "turn",
		slog.String("gate", gate),
		slog.String("menu", resp.Menu.Kind.String()),
		slog.Int("lang", int(lang)),
		slog.Bool("contact_saved", contactJustSet),
		slog.Duration("duration", logger.Took(start)),
	)
	return resp, nil
}

func (c *Controller) reply(in Inbound, text string, m menu.Menu) Response {
	return Response{ChatID: in.ChatID, Text: text, Menu: m}
}
