package helpers

import (
	"testing"

	"github.com/m3rciful/shopbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

type recordingContext struct {
	tele.Context
	sent []any
	opts []any
}

func (r *recordingContext) Send(what any, opts ...any) error {
	r.sent = append(r.sent, what)
	r.opts = append(r.opts, opts...)
	return nil
}

func newContext(t *testing.T) *recordingContext {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Token: "test", Offline: true})
	if err != nil {
		t.Fatalf("bot: %v", err)
	}
	msg := &tele.Message{
		Text:   "hi",
		Sender: &tele.User{ID: 11},
		Chat:   &tele.Chat{ID: 22},
	}
	return &recordingContext{Context: bot.NewContext(tele.Update{ID: 33, Message: msg})}
}

func TestBuildContextCarriesUpdateMeta(t *testing.T) {
	c := newContext(t)
	ctx := BuildContext(c)

	if logger.UserIDFrom(ctx) != 11 || logger.ChatIDFrom(ctx) != 22 || logger.UpdateIDFrom(ctx) != 33 {
		t.Fatalf("meta = user %d chat %d update %d", logger.UserIDFrom(ctx), logger.ChatIDFrom(ctx), logger.UpdateIDFrom(ctx))
	}
	if logger.RIDFrom(ctx) == "" {
		t.Fatalf("rid not set")
	}
	if again := BuildContext(c); logger.RIDFrom(again) != logger.RIDFrom(ctx) {
		t.Fatalf("context was rebuilt")
	}

	ctx = WithHandler(c, "start")
	if logger.HandlerFrom(BuildContext(c)) != "start" {
		t.Fatalf("handler = %q", logger.HandlerFrom(ctx))
	}
}

func TestSendWithMarkupWithoutDispatcher(t *testing.T) {
	SetDispatcher(nil)
	c := newContext(t)
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}

	if err := SendWithMarkup(c, "hello", markup); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := SendWithMarkup(c, "plain", nil); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(c.sent) != 2 || c.sent[0] != "hello" || c.sent[1] != "plain" {
		t.Fatalf("sent = %v", c.sent)
	}
	if len(c.opts) != 1 {
		t.Fatalf("opts = %v", c.opts)
	}
	so, ok := c.opts[0].(*tele.SendOptions)
	if !ok || so.ReplyMarkup != markup {
		t.Fatalf("markup not attached: %#v", c.opts[0])
	}
}
