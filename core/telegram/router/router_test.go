package router

import (
	"errors"
	"testing"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, userID int64, text string) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Token: "test", Offline: true})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return bot.NewContext(tele.Update{ID: 1, Message: &tele.Message{
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		Text:   text,
	}})
}

func routeFor(routes []tg.Route, endpoint any) tele.HandlerFunc {
	for _, r := range routes {
		if r.Endpoint == endpoint {
			return r.Handler
		}
	}
	return nil
}

func TestTextRoutesOrder(t *testing.T) {
	var hits []string
	record := func(name string) tele.HandlerFunc {
		return func(tele.Context) error { hits = append(hits, name); return nil }
	}

	reg := tg.NewRegistry()
	if err := reg.RegisterLabel("Русский", record("label")); err != nil {
		t.Fatalf("register label: %v", err)
	}
	reg.RegisterCommand("/start", commands.Command{Handler: record("start"), Description: "Start"})
	reg.RegisterCommand("/profile", commands.Command{Handler: record("profile"), Description: "Profile", AdminOnly: true})
	reg.SetTextFallback(record("fallback"))

	h := routeFor(TextRoutes(reg, TextOptions{}), tele.OnText)
	if h == nil {
		t.Fatalf("OnText route missing")
	}
	for _, text := range []string{"Русский", "/start x", "/profile 1", "hello"} {
		if err := h(newContext(t, 1, text)); err != nil {
			t.Fatalf("handle %q: %v", text, err)
		}
	}
	want := []string{"label", "start", "fallback", "fallback"}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Fatalf("hits = %v, want %v", hits, want)
		}
	}
}

func TestTextRoutesUnknown(t *testing.T) {
	called := false
	h := routeFor(TextRoutes(tg.NewRegistry(), TextOptions{
		UnknownText: func(tele.Context) error { called = true; return nil },
	}), tele.OnText)
	_ = h(newContext(t, 1, "hello"))
	if !called {
		t.Fatalf("UnknownText not invoked")
	}
}

func TestContactRoute(t *testing.T) {
	want := errors.New("contact handled")
	reg := tg.NewRegistry()
	reg.SetContactHandler(func(tele.Context) error { return want })

	h := routeFor(TextRoutes(reg, TextOptions{}), tele.OnContact)
	if err := h(newContext(t, 1, "")); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestCommandRoutesAdminGate(t *testing.T) {
	calls := 0
	rejected := 0
	reg := tg.NewRegistry()
	reg.RegisterCommand("/profile", commands.Command{
		Handler:     func(tele.Context) error { calls++; return nil },
		Description: "Profile",
		AdminOnly:   true,
	})
	routes := CommandRoutes(reg, CommandRouteOptions{
		AdminID:       99,
		OnAdminReject: func(tele.Context) error { rejected++; return nil },
	})
	h := routeFor(routes, "/profile")
	if h == nil {
		t.Fatalf("/profile route missing")
	}
	_ = h(newContext(t, 1, "/profile 5"))
	_ = h(newContext(t, 99, "/profile 5"))
	if calls != 1 || rejected != 1 {
		t.Fatalf("calls=%d rejected=%d", calls, rejected)
	}
}

func TestNormalizeHandlerName(t *testing.T) {
	cases := map[string]string{
		"/Start":        "start",
		"":              "unknown",
		" change name ": "change_name",
	}
	for in, want := range cases {
		if got := normalizeHandlerName(in); got != want {
			t.Fatalf("normalizeHandlerName(%q) = %q, want %q", in, got, want)
		}
	}
}
