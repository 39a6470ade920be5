package logger

import (
	"context"
	"testing"
)

func TestCompactRID(t *testing.T) {
	cases := map[string]string{
		"35:10:1":    "z.a.1",
		"1:2":        "1:2",
		"a:b:c":      "a:b:c",
		"":           "",
		" 36:36:36 ": "10.10.10",
	}
	for in, want := range cases {
		if got := CompactRID(in); got != want {
			t.Fatalf("CompactRID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "héllo\x00\u200b wor\tld\x7f"
	if got := Sanitize(in); got != "héllo wor\tld" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := SanitizeLimit(in, 3); got != "hél" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit(in, 0); got != "" {
		t.Fatalf("SanitizeLimit(0) = %q", got)
	}
}

func TestContextMeta(t *testing.T) {
	ctx := WithUpdateMeta(context.Background(), 5, 100, 200)
	ctx = WithHandler(ctx, "start")
	if UpdateIDFrom(ctx) != 5 || UserIDFrom(ctx) != 100 || ChatIDFrom(ctx) != 200 {
		t.Fatalf("unexpected meta: %d %d %d", UpdateIDFrom(ctx), UserIDFrom(ctx), ChatIDFrom(ctx))
	}
	if HandlerFrom(ctx) != "start" {
		t.Fatalf("handler = %q", HandlerFrom(ctx))
	}
	if FromContext(nil) != L {
		t.Fatal("FromContext(nil) should return L")
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(2, 5)
	allowed := 0
	for i := 0; i < 10; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 4 {
		t.Fatalf("allowed = %d, want 4", allowed)
	}

	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		in       string
		num, den int
	}{
		{"1/10", 1, 10},
		{"25", 1, 25},
		{"0", 0, 0},
		{"x/2", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.in)
		if num != tc.num || den != tc.den {
			t.Fatalf("parseRatioSpec(%q) = %d/%d, want %d/%d", tc.in, num, den, tc.num, tc.den)
		}
	}
}
