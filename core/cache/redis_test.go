package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnectPings(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := Connect(Config{Addr: srv.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()
}

func TestConnectFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	if _, err := Connect(Config{Addr: addr}); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Addr: "  localhost:6379 "}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Addr != "localhost:6379" || !cfg.Enabled() {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.TTL() != 5*time.Minute {
		t.Fatalf("default ttl = %v", cfg.TTL())
	}
	if (Config{TTLSeconds: 30}).TTL() != 30*time.Second {
		t.Fatalf("ttl not applied")
	}
	bad := Config{DB: -1}
	if err := bad.Normalize(); err == nil {
		t.Fatalf("negative db accepted")
	}
	if (Config{}).Enabled() {
		t.Fatalf("empty addr must disable the cache")
	}
}
