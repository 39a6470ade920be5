package telegram

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"
	"time"

	coreconfig "github.com/m3rciful/shopbot/core/config"

	tele "gopkg.in/telebot.v4"
)

type flakyTransport struct {
	failures int
	err      error
	calls    int
	bodies   []string
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(b))
	}
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Request:    req,
	}, nil
}

func resetErr() error {
	return &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}
}

func TestHTTPClientRetriesTransientErrors(t *testing.T) {
	base := &flakyTransport{failures: 2, err: resetErr()}
	client := BuildHTTPClient(HTTPClientOptions{Base: base, Retries: 2, Backoff: time.Millisecond})

	resp, err := client.Post("http://bot.invalid/sendMessage", "application/json", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if base.calls != 3 {
		t.Fatalf("calls = %d, want 3", base.calls)
	}
	for i, b := range base.bodies {
		if b != `{"a":1}` {
			t.Fatalf("attempt %d body = %q", i+1, b)
		}
	}
}

func TestHTTPClientGivesUpAfterRetries(t *testing.T) {
	base := &flakyTransport{failures: 10, err: resetErr()}
	client := BuildHTTPClient(HTTPClientOptions{Base: base, Retries: 1, Backoff: time.Millisecond})

	if _, err := client.Get("http://bot.invalid/getMe"); err == nil {
		t.Fatalf("expected error")
	}
	if base.calls != 2 {
		t.Fatalf("calls = %d, want 2", base.calls)
	}
}

func TestHTTPClientDoesNotRetryPermanentErrors(t *testing.T) {
	base := &flakyTransport{failures: 1, err: errors.New("certificate rejected")}
	client := BuildHTTPClient(HTTPClientOptions{Base: base, Backoff: time.Millisecond})

	if _, err := client.Get("http://bot.invalid/getMe"); err == nil {
		t.Fatalf("expected error")
	}
	if base.calls != 1 {
		t.Fatalf("calls = %d, want 1", base.calls)
	}
}

func TestDefaultMiddlewaresOrder(t *testing.T) {
	extra := Middleware{Name: "provision", Use: func(next tele.HandlerFunc) tele.HandlerFunc { return next }}

	got := MiddlewareNames(DefaultMiddlewares(&coreconfig.Config{}, ChainOptions{Extra: []Middleware{extra, {Name: "nil"}}}))
	want := []string{"recover", "logger", "metrics", "provision"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("chain = %v, want %v", got, want)
	}

	cfg := &coreconfig.Config{RateLimit: coreconfig.RateLimitConfig{IntervalMS: 500, ExcludeUpdates: []string{"Contact"}}}
	got = MiddlewareNames(DefaultMiddlewares(cfg, ChainOptions{}))
	want = []string{"recover", "rate_limit", "logger", "metrics"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("chain = %v, want %v", got, want)
	}
}
