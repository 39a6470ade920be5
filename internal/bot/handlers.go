// Package bot adapts Telegram updates to the onboarding controller.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/i18n"
	"github.com/m3rciful/shopbot/internal/language"
	"github.com/m3rciful/shopbot/internal/onboarding"
	"github.com/m3rciful/shopbot/internal/profile"

	tele "gopkg.in/telebot.v4"
)

// Controller is the part of onboarding.Controller used by the handlers.
type Controller interface {
	Handle(ctx context.Context, in onboarding.Inbound) (onboarding.Response, error)
	Others(ctx context.Context, in onboarding.Inbound) (onboarding.Response, error)
}

// Fetcher reads stored profiles for the admin command.
type Fetcher interface {
	Fetch(ctx context.Context, userID int64) (profile.Profile, error)
}

// Handlers holds the Telegram handlers of the bot.
type Handlers struct {
	ctrl    Controller
	catalog *i18n.Catalog
	langs   *language.Registry
	fetcher Fetcher
}

// NewHandlers wires Handlers.
func NewHandlers(ctrl Controller, catalog *i18n.Catalog, langs *language.Registry, fetcher Fetcher) *Handlers {
	return &Handlers{ctrl: ctrl, catalog: catalog, langs: langs, fetcher: fetcher}
}

// Register installs commands, keyboard labels, the contact handler and the
// free-text fallback on reg. Labels are registered in every language so a
// keyboard keeps working after the user switches language.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start",
	})
	reg.RegisterCommand("/profile", commands.Command{
		Handler:     h.Profile,
		Description: "Show a stored profile",
		AdminOnly:   true,
		Hidden:      true,
	})

	bind := func(key string, fn tele.HandlerFunc) error {
		for _, label := range h.catalog.Variants(key) {
			if err := reg.RegisterLabel(label, fn); err != nil {
				return fmt.Errorf("bot: label %q for %s: %w", label, key, err)
			}
		}
		return nil
	}

	for _, e := range h.langs.Entries() {
		if err := bind(e.PickerKey, h.command(onboarding.SetLanguageToken(e.ID))); err != nil {
			return err
		}
	}
	labels := []struct {
		key string
		fn  tele.HandlerFunc
	}{
		{"button_change_language", h.command(onboarding.TokenChooseLanguage)},
		{"button_change_phone", h.command(onboarding.TokenChangePhone)},
		{"button_main_page", h.command("")},
		{"button_others", h.Others},
	}
	for _, l := range labels {
		if err := bind(l.key, l.fn); err != nil {
			return err
		}
	}

	reg.SetContactHandler(h.Contact)
	reg.SetTextFallback(h.Text)
	return nil
}

// Start handles /start. The deep-link payload is treated as the message text.
func (h *Handlers) Start(c tele.Context) error {
	payload := ""
	if msg := c.Message(); msg != nil {
		payload = msg.Payload
	}
	return h.handle(c, payload, nil)
}

// Text passes free text to the controller unchanged.
func (h *Handlers) Text(c tele.Context) error {
	return h.handle(c, c.Text(), nil)
}

// Contact stores the phone shared with the contact button. Contacts of other
// people are ignored.
func (h *Handlers) Contact(c tele.Context) error {
	var contact *onboarding.Contact
	if msg := c.Message(); msg != nil && msg.Contact != nil {
		sender := c.Sender()
		own := msg.Contact.UserID == 0 || (sender != nil && msg.Contact.UserID == sender.ID)
		if own {
			contact = &onboarding.Contact{Phone: msg.Contact.PhoneNumber}
		}
	}
	return h.handle(c, onboarding.TokenSetContact, contact)
}

// Others shows the others menu to a ready user.
func (h *Handlers) Others(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	resp, err := h.ctrl.Others(ctx, inbound(c, "", nil))
	if err != nil {
		return err
	}
	return send(c, resp)
}

// Profile prints the stored profile of the user id given as argument.
func (h *Handlers) Profile(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return tghelpers.SendText(c, "usage: /profile <user_id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, "usage: /profile <user_id>")
	}
	p, err := h.fetcher.Fetch(tghelpers.BuildContext(c), id)
	if err != nil {
		return tghelpers.SendText(c, fmt.Sprintf("profile %d: %v", id, err))
	}
	return tghelpers.SendText(c, formatProfile(p, h.langs))
}

func formatProfile(p profile.Profile, langs *language.Registry) string {
	lang := "unset"
	if code := langs.Code(p.LanguageID); code != "" {
		lang = code + " (" + p.LanguageID.String() + ")"
	}
	phone := p.Phone
	if phone == "" {
		phone = "none"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\n", p.ID)
	fmt.Fprintf(&b, "language: %s\n", lang)
	fmt.Fprintf(&b, "phone: %s", phone)
	return b.String()
}

func (h *Handlers) command(token string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.handle(c, token, nil)
	}
}

func (h *Handlers) handle(c tele.Context, text string, contact *onboarding.Contact) error {
	ctx := tghelpers.BuildContext(c)
	resp, err := h.ctrl.Handle(ctx, inbound(c, text, contact))
	if err != nil {
		return err
	}
	return send(c, resp)
}

func inbound(c tele.Context, text string, contact *onboarding.Contact) onboarding.Inbound {
	in := onboarding.Inbound{Text: text, Contact: contact}
	if chat := c.Chat(); chat != nil {
		in.ChatID = chat.ID
	}
	if sender := c.Sender(); sender != nil {
		in.UserID = sender.ID
	}
	return in
}

func send(c tele.Context, resp onboarding.Response) error {
	return tghelpers.SendWithMarkup(c, resp.Text, Markup(resp.Menu))
}
