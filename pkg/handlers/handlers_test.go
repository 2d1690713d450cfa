package handlers_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/groundtruth/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
		want   string
	}{
		{"update response", http.StatusOK, map[string]any{"success": true, "updated": 1}, `{"success":true,"updated":1}`},
		{"readiness", http.StatusServiceUnavailable, struct {
			Status string `json:"status"`
		}{"not ready"}, `{"status":"not ready"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}
			if got := rec.Body.String(); got != tt.want+"\n" {
				t.Errorf("body: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondData(rec, http.StatusOK, []string{"alice", "bob"})

	var parsed handlers.DataResponse[[]string]
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(parsed.Data) != 2 || parsed.Data[0] != "alice" {
		t.Errorf("data: got %v, want [alice bob]", parsed.Data)
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, logger, status, errors.New("filepath is required"))

		if rec.Code != status {
			t.Errorf("status: got %d, want %d", rec.Code, status)
		}

		var parsed handlers.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if parsed.Error != "filepath is required" {
			t.Errorf("error: got %s, want filepath is required", parsed.Error)
		}
	}
}
