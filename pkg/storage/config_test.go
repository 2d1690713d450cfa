package storage_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/groundtruth/pkg/storage"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Backend != storage.BackendLocal {
		t.Errorf("backend: got %s, want local", cfg.Backend)
	}
	if cfg.BaseDir != "." {
		t.Errorf("base_dir: got %s, want .", cfg.BaseDir)
	}
	if cfg.ContainerName != "assets" {
		t.Errorf("container_name: got %s, want assets", cfg.ContainerName)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_BACKEND", "azure")
	t.Setenv("TEST_CONTAINER", "screens")
	t.Setenv("TEST_ACCOUNT_URL", "https://acct.blob.core.windows.net")

	env := &storage.Env{
		Backend:       "TEST_BACKEND",
		ContainerName: "TEST_CONTAINER",
		AccountURL:    "TEST_ACCOUNT_URL",
	}

	cfg := storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Backend != storage.BackendAzure {
		t.Errorf("backend: got %s, want azure", cfg.Backend)
	}
	if cfg.ContainerName != "screens" {
		t.Errorf("container_name: got %s, want screens", cfg.ContainerName)
	}
	if cfg.AccountURL != "https://acct.blob.core.windows.net" {
		t.Errorf("account_url: got %s", cfg.AccountURL)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr string
	}{
		{
			name:    "azure without credentials",
			cfg:     storage.Config{Backend: storage.BackendAzure},
			wantErr: "connection_string or account_url required",
		},
		{
			name:    "unknown backend",
			cfg:     storage.Config{Backend: "s3"},
			wantErr: "unsupported backend",
		},
		{
			name: "azure with connection string",
			cfg:  storage.Config{Backend: storage.BackendAzure, ConnectionString: "conn"},
		},
		{
			name: "local with base dir",
			cfg:  storage.Config{BaseDir: "/srv/assets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{
		Backend: storage.BackendLocal,
		BaseDir: "/srv/assets",
	}

	base.Merge(&storage.Config{BaseDir: "/data"})

	if base.Backend != storage.BackendLocal {
		t.Errorf("backend should remain local, got %s", base.Backend)
	}
	if base.BaseDir != "/data" {
		t.Errorf("base_dir: got %s, want /data", base.BaseDir)
	}
}
