package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/infrastructure"
	"github.com/JaimeStill/groundtruth/pkg/lifecycle"
)

func probe(t *testing.T, h http.Handler, path string) (int, readiness) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body readiness
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec.Code, body
}

func TestProbes(t *testing.T) {
	t.Run("ready after startup", func(t *testing.T) {
		lc := lifecycle.New()
		router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lc})

		if code, _ := probe(t, router, "/healthz"); code != http.StatusOK {
			t.Errorf("healthz = %d, want 200", code)
		}
		if code, _ := probe(t, router, "/readyz"); code != http.StatusServiceUnavailable {
			t.Errorf("readyz before startup = %d, want 503", code)
		}

		if err := lc.WaitForStartup(); err != nil {
			t.Fatalf("startup: %v", err)
		}
		code, body := probe(t, router, "/readyz")
		if code != http.StatusOK || body.Status != "ready" {
			t.Errorf("readyz = %d %+v, want 200 ready", code, body)
		}
	})

	t.Run("failed hooks listed", func(t *testing.T) {
		lc := lifecycle.New()
		lc.OnStartup("storage", func() error { return errors.New("unreachable") })
		router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lc})

		if err := lc.WaitForStartup(); err == nil {
			t.Fatal("expected startup error")
		}
		code, body := probe(t, router, "/readyz")
		if code != http.StatusServiceUnavailable {
			t.Errorf("readyz = %d, want 503", code)
		}
		if !slices.Equal(body.Failed, []string{"storage"}) {
			t.Errorf("failed = %v, want [storage]", body.Failed)
		}
	})
}
