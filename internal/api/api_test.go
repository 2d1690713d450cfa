package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/internal/classifications"
	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/results"
	"github.com/JaimeStill/groundtruth/internal/testsupport"
	"github.com/JaimeStill/groundtruth/internal/workitems"
	"github.com/JaimeStill/groundtruth/pkg/openapi"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

func newTestAPI(t *testing.T) (*http.ServeMux, []routes.Group) {
	t.Helper()
	db := testsupport.OpenDB(t)
	testsupport.Items(t, db, "a.png", "b.png")

	logger := testsupport.Logger()
	assignmentsSystem := assignments.New(db, logger)
	domain := &Domain{
		Annotators:  annotators.New(db, logger),
		Assignments: assignmentsSystem,
		Classifications: classifications.New(
			db, logger,
			pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
			"",
		),
		Results:   results.New(db, logger),
		WorkItems: workitems.New(db, assignmentsSystem, logger),
	}

	groups := routeGroups(domain, &Runtime{MaxBodySize: 1 << 20})

	specBytes, err := openapi.MarshalJSON(NewSpec(&config.Config{}))
	if err != nil {
		t.Fatalf("marshal spec: %v", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, groups, specBytes)
	return mux, groups
}

func TestEveryRouteDocumented(t *testing.T) {
	_, groups := newTestAPI(t)
	spec := NewSpec(&config.Config{})

	var count int
	routes.Walk(func(r routes.Route, path string) {
		count++
		if spec.Operation(r.Method, routes.DocPath(path)) == nil {
			t.Errorf("%s %s has no OpenAPI operation", r.Method, routes.DocPath(path))
		}
	}, groups...)

	if count == 0 {
		t.Fatal("no routes walked")
	}
}

func TestLabelingRoundTrip(t *testing.T) {
	mux, _ := newTestAPI(t)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	fetch := func() []string {
		t.Helper()
		rec := do("GET", "/?user=alice", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("fetch status = %d", rec.Code)
		}
		var body struct {
			Data []workitems.WorkItem `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode work: %v", err)
		}
		paths := make([]string, len(body.Data))
		for i, it := range body.Data {
			paths[i] = it.FullFilepath
		}
		slices.Sort(paths)
		return paths
	}

	if got := fetch(); !slices.Equal(got, []string{"a.png", "b.png"}) {
		t.Fatalf("initial work = %v, want [a.png b.png]", got)
	}

	rec := do("POST", "/update_classification", `{"classification":1,"filepath":"a.png","classification_issuer":"alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "{\"success\":true,\"updated\":1}\n" {
		t.Errorf("update body = %s", got)
	}

	if got := fetch(); !slices.Equal(got, []string{"b.png"}) {
		t.Errorf("work after update = %v, want [b.png]", got)
	}

	rec = do("GET", "/user_options", "")
	if got := rec.Body.String(); got != "{\"data\":[\"alice\"]}\n" {
		t.Errorf("user_options = %s", got)
	}

	rec = do("POST", "/update_classification", `{"classification":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing filepath status = %d, want 400", rec.Code)
	}

	rec = do("GET", "/results", "")
	if got := rec.Body.String(); got != "{\"data\":[]}\n" {
		t.Errorf("results without assignments = %s, want empty", got)
	}

	rec = do("GET", "/openapi.json", "")
	if rec.Code != http.StatusOK || rec.Header().Get("ETag") == "" {
		t.Errorf("openapi.json status = %d, etag = %q", rec.Code, rec.Header().Get("ETag"))
	}
}
