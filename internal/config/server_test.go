package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/stackduel?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.JWTTTLMins != 60 {
		t.Fatalf("JWTTTLMins = %d, want 60", cfg.JWTTTLMins)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerRequiresJWTSecret(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/stackduel?sslmode=disable")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadCoordinatorDefaults(t *testing.T) {
	cfg, err := LoadCoordinator()
	if err != nil {
		t.Fatalf("LoadCoordinator() error = %v", err)
	}
	if cfg.CountdownSeconds != 5 {
		t.Fatalf("CountdownSeconds = %d, want 5", cfg.CountdownSeconds)
	}
	if cfg.DestroyFinished {
		t.Fatal("DestroyFinished = true, want false")
	}
	if cfg.SendBuffer != 16 {
		t.Fatalf("SendBuffer = %d, want 16", cfg.SendBuffer)
	}
}

func TestLoadCoordinatorParseTypes(t *testing.T) {
	t.Setenv("COORDINATOR_COUNTDOWN_SECONDS", "3")
	t.Setenv("COORDINATOR_DESTROY_FINISHED", "true")

	cfg, err := LoadCoordinator()
	if err != nil {
		t.Fatalf("LoadCoordinator() error = %v", err)
	}
	if cfg.CountdownSeconds != 3 {
		t.Fatalf("CountdownSeconds = %d, want 3", cfg.CountdownSeconds)
	}
	if !cfg.DestroyFinished {
		t.Fatal("DestroyFinished = false, want true")
	}
}
