package app

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resume-analyzer/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		App:    config.AppConfig{AppName: "resume-analyzer", Environment: "test", HTTPPort: "0"},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
		Model:  config.ModelConfig{Trees: 10, Seed: 3, Workers: 2},
	}
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"8080", ":8080", false},
		{":9000", ":9000", false},
		{" 80 ", ":80", false},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ListenAddr(%q) err=%v wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ListenAddr(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestBootstrap_OptionalDependenciesDisabled(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	a, cleanup, err := Bootstrap(context.Background(), testConfig(t), logger)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	if a.Container.DB != nil || a.Container.Archive != nil || a.Container.JWT != nil {
		t.Fatalf("expected optional dependencies to be disabled")
	}
	if !a.Container.Scorer.Trained() {
		t.Fatalf("expected scorer to be trained")
	}

	cases := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/", http.StatusOK},
		{"/api/v1/lexicon", http.StatusOK},
		{"/api/v1/analyses", http.StatusServiceUnavailable},
		{"/ws/analyses", http.StatusUpgradeRequired},
	}
	for _, tc := range cases {
		resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("GET %s status=%d want %d", tc.path, resp.StatusCode, tc.status)
		}
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	a, cleanup, err := Bootstrap(context.Background(), testConfig(t), logger)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestBootstrap_HistoryRequiresTokenWhenSecretSet(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth = config.AuthConfig{AdminJWTSecret: "0123456789abcdef0123", TokenTTL: time.Hour}

	a, cleanup, err := Bootstrap(context.Background(), cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer cleanup()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", resp.StatusCode)
	}

	token, _, err := a.Container.JWT.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503 without a database", resp.StatusCode)
	}
}
