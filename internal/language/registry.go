// Package language holds the fixed set of languages the bot can talk in.
package language

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ID identifies a supported language. Unset is the zero value.
type ID int

// Unset marks a profile that has not picked a language.
const Unset ID = 0

// Entry describes one supported language.
type Entry struct {
	ID  ID
	Tag language.Tag
	// PickerKey is the catalog key of the language picker button.
	PickerKey string
}

// Code returns the base language subtag, e.g. "ru".
func (e Entry) Code() string {
	base, _ := e.Tag.Base()
	return base.String()
}

// Spec is the configuration form of an Entry.
type Spec struct {
	ID        int    `yaml:"id"`
	Code      string `yaml:"code"`
	PickerKey string `yaml:"picker_key"`
}

// Defaults returns the stock languages: Russian (1) and Uzbek (2).
func Defaults() []Spec {
	return []Spec{
		{ID: 1, Code: "ru", PickerKey: "set_russian"},
		{ID: 2, Code: "uz", PickerKey: "set_uzbek"},
	}
}

// Registry is the immutable set of supported languages. Safe for concurrent use.
type Registry struct {
	entries []Entry
	byID    map[ID]Entry
	def     ID
}

// NewRegistry validates specs and builds a registry. The default language is
// defaultID when non-zero, otherwise the first spec.
func NewRegistry(specs []Spec, defaultID int) (*Registry, error) {
	if len(specs) == 0 {
		return nil, errors.New("language: at least one language is required")
	}
	r := &Registry{byID: make(map[ID]Entry, len(specs))}
	for _, s := range specs {
		if s.ID <= 0 {
			return nil, fmt.Errorf("language: invalid id %d for %q", s.ID, s.Code)
		}
		tag, err := language.Parse(strings.TrimSpace(s.Code))
		if err != nil {
			return nil, fmt.Errorf("language: invalid code %q: %w", s.Code, err)
		}
		id := ID(s.ID)
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("language: duplicate id %d", s.ID)
		}
		key := strings.TrimSpace(s.PickerKey)
		if key == "" {
			return nil, fmt.Errorf("language: picker_key is required for %q", s.Code)
		}
		e := Entry{ID: id, Tag: tag, PickerKey: key}
		r.entries = append(r.entries, e)
		r.byID[id] = e
	}

	r.def = r.entries[0].ID
	if defaultID != 0 {
		if _, ok := r.byID[ID(defaultID)]; !ok {
			return nil, fmt.Errorf("language: default id %d is not registered", defaultID)
		}
		r.def = ID(defaultID)
	}
	return r, nil
}

// MustDefault returns the registry built from Defaults.
func MustDefault() *Registry {
	r, err := NewRegistry(Defaults(), 0)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSupported reports whether id belongs to the registry.
func (r *Registry) IsSupported(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Default returns the fallback language.
func (r *Registry) Default() ID {
	return r.def
}

// Effective returns id when supported and Unset otherwise.
func (r *Registry) Effective(id ID) ID {
	if r.IsSupported(id) {
		return id
	}
	return Unset
}

// Entry returns the entry for id.
func (r *Registry) Entry(id ID) (Entry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Entries returns the languages in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Code returns the language code for id, or "" when unsupported.
func (r *Registry) Code(id ID) string {
	if e, ok := r.byID[id]; ok {
		return e.Code()
	}
	return ""
}

// ByPickerKey finds the language selected by a picker button key.
func (r *Registry) ByPickerKey(key string) (ID, bool) {
	for _, e := range r.entries {
		if e.PickerKey == key {
			return e.ID, true
		}
	}
	return Unset, false
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}
