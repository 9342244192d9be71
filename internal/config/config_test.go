package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Rental.SectorLocking != LockingCAS {
		t.Fatalf("expected cas locking by default, got %q", cfg.Rental.SectorLocking)
	}
	if cfg.Auth.PlaintextCredentials {
		t.Fatal("expected bcrypt credentials by default")
	}
	if cfg.Auth.ProtectAdminRoutes {
		t.Fatal("expected admin routes open by default")
	}
	if cfg.API.LegacyErrorMapping {
		t.Fatal("expected strict error mapping by default")
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Fatal("expected default allowed origins")
	}
}

func TestLoad_SectorLocking(t *testing.T) {
	t.Setenv("RENTAL_SECTOR_LOCKING", "check")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rental.SectorLocking != LockingCheck {
		t.Fatalf("expected check locking, got %q", cfg.Rental.SectorLocking)
	}

	t.Setenv("RENTAL_SECTOR_LOCKING", "optimistic")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown locking mode")
	}
}

func TestLoad_ListParsing(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.CORS.AllowedOrigins)
	}
	for i := range want {
		if cfg.CORS.AllowedOrigins[i] != want[i] {
			t.Fatalf("origin %d: expected %q, got %q", i, want[i], cfg.CORS.AllowedOrigins[i])
		}
	}
}

func TestRequestTimeout(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 15}
	if got := app.RequestTimeout(); got != 15*time.Second {
		t.Fatalf("expected 15s, got %v", got)
	}
	if got := (AppConfig{}).RequestTimeout(); got != 0 {
		t.Fatalf("expected zero timeout, got %v", got)
	}
}

func TestSectorCacheTTL(t *testing.T) {
	if got := (RedisConfig{SectorCacheTTLSeconds: 45}).SectorCacheTTL(); got != 45*time.Second {
		t.Fatalf("expected 45s, got %v", got)
	}
	if got := (RedisConfig{}).SectorCacheTTL(); got != 0 {
		t.Fatalf("expected zero TTL, got %v", got)
	}
}
