package annotators_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/testsupport"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

type mockSystem struct {
	listFn func(ctx context.Context) ([]string, error)
}

func (m *mockSystem) Handler() *annotators.Handler { return nil }

func (m *mockSystem) EnsureRegistered(ctx context.Context, name string) error { return nil }

func (m *mockSystem) List(ctx context.Context) ([]string, error) {
	return m.listFn(ctx)
}

func setupMux(sys annotators.System) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, annotators.NewHandler(sys, testsupport.Logger()).Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	t.Run("returns names under data", func(t *testing.T) {
		mux := setupMux(&mockSystem{
			listFn: func(ctx context.Context) ([]string, error) {
				return []string{"alice", "bob"}, nil
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/user_options", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body struct {
			Data []string `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) != 2 || body.Data[0] != "alice" || body.Data[1] != "bob" {
			t.Errorf("data = %v, want [alice bob]", body.Data)
		}
	})

	t.Run("empty registry renders empty array", func(t *testing.T) {
		mux := setupMux(&mockSystem{
			listFn: func(ctx context.Context) ([]string, error) {
				return []string{}, nil
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/user_options", nil))

		if got := rec.Body.String(); got != "{\"data\":[]}\n" {
			t.Errorf("body = %q, want {\"data\":[]}", got)
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		mux := setupMux(&mockSystem{
			listFn: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("disk I/O error")
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/user_options", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}
