// Package menu builds the fixed reply keyboards shown during onboarding.
package menu

import (
	"fmt"

	"github.com/m3rciful/shopbot/internal/language"
)

// Kind enumerates the layouts the bot can show.
type Kind int

const (
	KindMain Kind = iota + 1
	KindLanguagePicker
	KindContactPrompt
	KindOthers
)

// String returns a stable name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindLanguagePicker:
		return "language_picker"
	case KindContactPrompt:
		return "contact_prompt"
	case KindOthers:
		return "others"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

const uzbekPickerKey = "set_uzbek"

// Translator resolves catalog keys to localized text.
type Translator interface {
	T(lang language.ID, key string) string
}

// Button is one reply-keyboard key.
type Button struct {
	Label          string
	RequestContact bool
}

// Menu is a reply keyboard layout. It is a plain value rebuilt per response.
type Menu struct {
	Kind      Kind
	Rows      [][]Button
	Resize    bool
	OneTime   bool
	Selective bool
}

// Builder renders menus through a Translator.
type Builder struct {
	tr  Translator
	reg *language.Registry
}

// NewBuilder returns a Builder. reg supplies the picker buttons in registration order.
func NewBuilder(tr Translator, reg *language.Registry) *Builder {
	return &Builder{tr: tr, reg: reg}
}

func (b *Builder) layout(kind Kind, lang language.ID, keys ...[]string) Menu {
	rows := make([][]Button, 0, len(keys))
	for _, row := range keys {
		r := make([]Button, 0, len(row))
		for _, key := range row {
			r = append(r, Button{Label: b.tr.T(lang, key)})
		}
		rows = append(rows, r)
	}
	return Menu{Kind: kind, Rows: rows, Resize: true}
}

// Main is the landing menu: [products, cart], [about, others].
func (b *Builder) Main(lang language.ID) Menu {
	return b.layout(KindMain, lang,
		[]string{"button_products", "button_cart"},
		[]string{"button_about", "button_others"},
	)
}

// LanguagePicker shows one button per language in a single row. Uzbek, when
// registered, leads; the rest follow in registration order.
func (b *Builder) LanguagePicker(lang language.ID) Menu {
	entries := b.reg.Entries()
	keys := make([]string, 0, len(entries))
	uz, hasUz := b.reg.ByPickerKey(uzbekPickerKey)
	if hasUz {
		keys = append(keys, uzbekPickerKey)
	}
	for _, e := range entries {
		if hasUz && e.ID == uz {
			continue
		}
		keys = append(keys, e.PickerKey)
	}
	return b.layout(KindLanguagePicker, lang, keys)
}

// ContactPrompt holds a single button that shares the user's phone number.
func (b *Builder) ContactPrompt(lang language.ID) Menu {
	m := b.layout(KindContactPrompt, lang, []string{"send_my_number"})
	m.Rows[0][0].RequestContact = true
	return m
}

// Others is the settings menu reached from the main menu.
func (b *Builder) Others(lang language.ID) Menu {
	return b.layout(KindOthers, lang,
		[]string{"button_change_language", "button_change_phone"},
		[]string{"button_news", "button_view_contacts"},
		[]string{"button_main_page"},
	)
}

// Build dispatches on kind. Unknown kinds yield the main menu.
func (b *Builder) Build(kind Kind, lang language.ID) Menu {
	switch kind {
	case KindLanguagePicker:
		return b.LanguagePicker(lang)
	case KindContactPrompt:
		return b.ContactPrompt(lang)
	case KindOthers:
		return b.Others(lang)
	default:
		return b.Main(lang)
	}
}
