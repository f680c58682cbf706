package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ponto/storage"
	"ponto/web"
)

func TestWithLandingRedirect(t *testing.T) {
	t.Parallel()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := withLandingRedirect(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusFound {
		t.Fatalf("expected redirect status, got %d", res.Code)
	}
	if got := res.Header().Get("Location"); got != "/api/summary" {
		t.Fatalf("unexpected redirect target: %q", got)
	}
	if nextCalled {
		t.Fatalf("expected wrapper to intercept root redirect")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/records", nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if !nextCalled || res.Code != http.StatusNoContent {
		t.Fatalf("expected non-root request to pass through, got %d", res.Code)
	}
}

func TestPrimeServer(t *testing.T) {
	cfg := testConfig(t)
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "ponto.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	server := web.NewServer(web.Options{Tolerances: cfg.Tolerances(), DefaultPeriod: "all", Logger: discardLogger()})

	if err := primeServer(context.Background(), cfg, store, server, discardLogger()); err != nil {
		t.Fatalf("prime empty server: %v", err)
	}
	if code := serveStatus(server, "/api/summary"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without cached snapshot, got %d", code)
	}

	if _, err := refreshSnapshot(context.Background(), cfg, store, discardLogger()); err != nil {
		t.Fatalf("refresh snapshot: %v", err)
	}
	if err := primeServer(context.Background(), cfg, store, server, discardLogger()); err != nil {
		t.Fatalf("prime cached server: %v", err)
	}
	if code := serveStatus(server, "/api/summary"); code != http.StatusOK {
		t.Fatalf("expected 200 with cached snapshot, got %d", code)
	}
}

func serveStatus(handler http.Handler, path string) int {
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
	return res.Code
}
