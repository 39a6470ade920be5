// Package i18n serves localized response texts loaded from YAML files.
package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/language"
)

// Keys used by the onboarding flow. Every locale file must define them.
var Keys = []string{
	"choose_language",
	"send_your_contacts",
	"phone_number_saved",
	"choose_action",
	"button_products",
	"button_cart",
	"button_about",
	"button_others",
	"set_uzbek",
	"set_russian",
	"send_my_number",
	"button_change_language",
	"button_change_phone",
	"button_news",
	"button_view_contacts",
	"button_main_page",
}

// Catalog maps (language, key) to text. It is immutable after construction.
type Catalog struct {
	reg   *language.Registry
	texts map[language.ID]map[string]string
}

// New builds a catalog from in-memory texts.
func New(reg *language.Registry, texts map[language.ID]map[string]string) *Catalog {
	c := &Catalog{reg: reg, texts: make(map[language.ID]map[string]string, len(texts))}
	for id, m := range texts {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		c.texts[id] = cp
	}
	return c
}

// Load reads <dir>/<code>.yaml for every registered language.
// A file is a flat mapping of key to text. Missing keys are logged, not fatal.
func Load(dir string, reg *language.Registry) (*Catalog, error) {
	texts := make(map[language.ID]map[string]string)
	for _, e := range reg.Entries() {
		path := filepath.Join(dir, e.Code()+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}
		m := make(map[string]string)
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", path, err)
		}
		if missing := missingKeys(m); len(missing) > 0 {
			summary, truncated := logger.SummarizeStrings(missing, 5)
			logger.Warn(context.Background(), logger.ComponentI18N, "catalog.missing_keys",
				slog.String("lang", e.Code()),
				slog.String("keys", summary),
				slog.Bool("truncated", truncated),
			)
		}
		texts[e.ID] = m
	}
	logger.Info(context.Background(), logger.ComponentI18N, "catalog.loaded",
		slog.String("dir", dir),
		slog.Int("languages", len(texts)),
	)
	return New(reg, texts), nil
}

func missingKeys(m map[string]string) []string {
	var missing []string
	for _, k := range Keys {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// T returns the text for key in lang, falling back to the default language
// and then to the key itself.
func (c *Catalog) T(lang language.ID, key string) string {
	if s, ok := c.texts[lang][key]; ok {
		return s
	}
	if s, ok := c.texts[c.reg.Default()][key]; ok {
		return s
	}
	return key
}

// Variants returns the distinct texts of key across all languages, sorted.
// Keyboard labels are matched against them.
func (c *Catalog) Variants(key string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range c.reg.Entries() {
		s := c.T(e.ID, key)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
