package classifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/classifications"
	"github.com/JaimeStill/groundtruth/internal/testsupport"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

type mockSystem struct {
	upsertFn func(ctx context.Context, cmd classifications.UpsertCommand) (classifications.UpsertResult, error)
	listFn   func(ctx context.Context, page pagination.PageRequest, f classifications.Filters) (*pagination.PageResult[classifications.Classification], error)
}

func (m *mockSystem) Handler(maxBodySize int64) *classifications.Handler { return nil }

func (m *mockSystem) Upsert(ctx context.Context, cmd classifications.UpsertCommand) (classifications.UpsertResult, error) {
	return m.upsertFn(ctx, cmd)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, f classifications.Filters) (*pagination.PageResult[classifications.Classification], error) {
	return m.listFn(ctx, page, f)
}

func setupMux(sys classifications.System) *http.ServeMux {
	mux := http.NewServeMux()
	h := classifications.NewHandler(sys, testsupport.Logger(), pageConfig, 256)
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandlerUpdate(t *testing.T) {
	var got classifications.UpsertCommand
	sys := &mockSystem{
		upsertFn: func(ctx context.Context, cmd classifications.UpsertCommand) (classifications.UpsertResult, error) {
			got = cmd
			if err := cmd.Validate(); err != nil {
				return classifications.UpsertResult{}, err
			}
			switch cmd.Filepath {
			case "gone.png":
				return classifications.UpsertResult{}, classifications.ErrNoRecordUpdated
			case "broken.png":
				return classifications.UpsertResult{}, classifications.ErrStorage
			}
			return classifications.UpsertResult{RowsAffected: 1}, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name       string
		target     string
		body       string
		cookie     string
		wantStatus int
		wantIssuer string
	}{
		{
			name:       "body issuer",
			target:     "/update_classification",
			body:       `{"filepath":"a.png","classification":1,"classification_issuer":" alice "}`,
			wantStatus: 200,
			wantIssuer: "alice",
		},
		{
			name:       "query issuer",
			target:     "/update_classification?user=bob",
			body:       `{"filepath":"a.png","classification":0}`,
			wantStatus: 200,
			wantIssuer: "bob",
		},
		{
			name:       "cookie issuer",
			target:     "/update_classification",
			body:       `{"filepath":"a.png","classification":-1}`,
			cookie:     "carol",
			wantStatus: 200,
			wantIssuer: "carol",
		},
		{
			name:       "no issuer left to the store",
			target:     "/update_classification",
			body:       `{"filepath":"a.png","classification":true}`,
			wantStatus: 200,
		},
		{
			name:       "malformed json",
			target:     "/update_classification",
			body:       `{"filepath":`,
			wantStatus: 400,
		},
		{
			name:       "invalid label",
			target:     "/update_classification",
			body:       `{"filepath":"a.png","classification":"perhaps"}`,
			wantStatus: 400,
		},
		{
			name:       "null label",
			target:     "/update_classification",
			body:       `{"filepath":"a.png","classification":null}`,
			wantStatus: 400,
		},
		{
			name:       "missing filepath",
			target:     "/update_classification",
			body:       `{"classification":1}`,
			wantStatus: 400,
		},
		{
			name:       "body too large",
			target:     "/update_classification",
			body:       `{"filepath":"` + strings.Repeat("x", 512) + `","classification":1}`,
			wantStatus: 413,
		},
		{
			name:       "no record updated",
			target:     "/update_classification",
			body:       `{"filepath":"gone.png","classification":1}`,
			wantStatus: 404,
		},
		{
			name:       "storage failure",
			target:     "/update_classification",
			body:       `{"filepath":"broken.png","classification":1}`,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = classifications.UpsertCommand{}
			req := httptest.NewRequest("POST", tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: annotators.CookieIssuer, Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				var body struct {
					Error string `json:"error"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Error == "" {
					t.Errorf("error body missing: %v", err)
				}
				if tt.wantStatus == http.StatusRequestEntityTooLarge && !strings.Contains(body.Error, "256 B") {
					t.Errorf("error = %q, want the 256 B limit named", body.Error)
				}
				return
			}

			var resp classifications.UpdateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !resp.Success || resp.Updated != 1 {
				t.Errorf("response = %+v, want success with 1 update", resp)
			}
			if got.ClassificationIssuer != tt.wantIssuer {
				t.Errorf("issuer = %q, want %q", got.ClassificationIssuer, tt.wantIssuer)
			}
		})
	}

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/update_classification", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}

func TestHandlerList(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters classifications.Filters

	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, f classifications.Filters) (*pagination.PageResult[classifications.Classification], error) {
			gotPage, gotFilters = page, f
			if f.ClassificationIssuer != nil && *f.ClassificationIssuer == "fail" {
				return nil, errors.New("query failed")
			}
			result := pagination.NewPageResult([]classifications.Classification{
				{FullFilepath: "a.png", ClassificationIssuer: "alice", Label: classifications.Unresolved},
			}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(sys)

	t.Run("parses filters and pagination", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(
			"GET",
			"/classifications?classification_issuer=alice&label=ad&flag_issue=true&page=2&page_size=500&sort=-UpdatedAt",
			nil,
		))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotFilters.ClassificationIssuer == nil || *gotFilters.ClassificationIssuer != "alice" {
			t.Errorf("issuer filter = %v", gotFilters.ClassificationIssuer)
		}
		if gotFilters.Label == nil || *gotFilters.Label != classifications.Ad {
			t.Errorf("label filter = %v", gotFilters.Label)
		}
		if gotFilters.FlagIssue == nil || !*gotFilters.FlagIssue {
			t.Errorf("flag filter = %v", gotFilters.FlagIssue)
		}
		if gotFilters.IsAdMarker != nil {
			t.Errorf("marker filter = %v, want nil", *gotFilters.IsAdMarker)
		}
		if gotPage.Page != 2 || gotPage.PageSize != pageConfig.MaxPageSize {
			t.Errorf("page = %+v, want page 2 clamped to %d", gotPage, pageConfig.MaxPageSize)
		}
		if len(gotPage.Sort) != 1 || gotPage.Sort[0].Field != "UpdatedAt" || !gotPage.Sort[0].Descending {
			t.Errorf("sort = %+v", gotPage.Sort)
		}

		var body struct {
			Data []map[string]any `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) != 1 {
			t.Fatalf("data = %v", body.Data)
		}
		if v, ok := body.Data[0]["is_suspected_ad_manual"]; !ok || v != nil {
			t.Errorf("unresolved label rendered as %v, want null", v)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classifications?classification_issuer=fail", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}
