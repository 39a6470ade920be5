package menu

import (
	"testing"

	"github.com/m3rciful/shopbot/internal/language"
)

// keyTranslator renders "<lang>:<key>" so tests can see which key and language were used.
type keyTranslator struct{}

func (keyTranslator) T(lang language.ID, key string) string {
	return lang.String() + ":" + key
}

func labels(m Menu) [][]string {
	out := make([][]string, len(m.Rows))
	for i, row := range m.Rows {
		for _, b := range row {
			out[i] = append(out[i], b.Label)
		}
	}
	return out
}

func assertRows(t *testing.T, m Menu, want [][]string) {
	t.Helper()
	got := labels(m)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("rows = %v, want %v", got, want)
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("rows = %v, want %v", got, want)
			}
		}
	}
}

func assertLayoutFlags(t *testing.T, m Menu) {
	t.Helper()
	if !m.Resize || m.OneTime || m.Selective {
		t.Fatalf("%s: flags resize=%v one_time=%v selective=%v", m.Kind, m.Resize, m.OneTime, m.Selective)
	}
}

func TestBuilders(t *testing.T) {
	b := NewBuilder(keyTranslator{}, language.MustDefault())

	cases := []struct {
		kind Kind
		menu Menu
		want [][]string
	}{
		{KindMain, b.Main(2), [][]string{
			{"2:button_products", "2:button_cart"},
			{"2:button_about", "2:button_others"},
		}},
		{KindLanguagePicker, b.LanguagePicker(1), [][]string{
			{"1:set_uzbek", "1:set_russian"},
		}},
		{KindContactPrompt, b.ContactPrompt(1), [][]string{
			{"1:send_my_number"},
		}},
		{KindOthers, b.Others(2), [][]string{
			{"2:button_change_language", "2:button_change_phone"},
			{"2:button_news", "2:button_view_contacts"},
			{"2:button_main_page"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if tc.menu.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", tc.menu.Kind, tc.kind)
			}
			assertRows(t, tc.menu, tc.want)
			assertLayoutFlags(t, tc.menu)
		})
	}
}

func TestOnlyContactPromptRequestsContact(t *testing.T) {
	b := NewBuilder(keyTranslator{}, language.MustDefault())
	if !b.ContactPrompt(1).Rows[0][0].RequestContact {
		t.Fatalf("contact prompt button must request contact")
	}
	for _, m := range []Menu{b.Main(1), b.LanguagePicker(1), b.Others(1)} {
		for _, row := range m.Rows {
			for _, btn := range row {
				if btn.RequestContact {
					t.Fatalf("%s: %q must not request contact", m.Kind, btn.Label)
				}
			}
		}
	}
}

func TestBuildDispatch(t *testing.T) {
	b := NewBuilder(keyTranslator{}, language.MustDefault())
	for _, k := range []Kind{KindMain, KindLanguagePicker, KindContactPrompt, KindOthers} {
		if got := b.Build(k, 1).Kind; got != k {
			t.Fatalf("Build(%v).Kind = %v", k, got)
		}
	}
	if got := b.Build(Kind(42), 1).Kind; got != KindMain {
		t.Fatalf("unknown kind must fall back to main, got %v", got)
	}
	if Kind(42).String() != "kind(42)" {
		t.Fatalf("unexpected String for unknown kind: %q", Kind(42).String())
	}
}

func TestPickerFollowsRegistry(t *testing.T) {
	reg, err := language.NewRegistry([]language.Spec{
		{ID: 1, Code: "ru", PickerKey: "set_russian"},
		{ID: 3, Code: "en", PickerKey: "set_english"},
	}, 0)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	m := NewBuilder(keyTranslator{}, reg).LanguagePicker(1)
	assertRows(t, m, [][]string{{"1:set_russian", "1:set_english"}})
}

func TestPickerPutsUzbekFirst(t *testing.T) {
	reg, err := language.NewRegistry([]language.Spec{
		{ID: 1, Code: "ru", PickerKey: "set_russian"},
		{ID: 3, Code: "en", PickerKey: "set_english"},
		{ID: 2, Code: "uz", PickerKey: "set_uzbek"},
	}, 0)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	m := NewBuilder(keyTranslator{}, reg).LanguagePicker(1)
	assertRows(t, m, [][]string{{"1:set_uzbek", "1:set_russian", "1:set_english"}})
}
