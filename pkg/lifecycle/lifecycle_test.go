package lifecycle_test

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/groundtruth/pkg/lifecycle"
)

func TestStartup(t *testing.T) {
	refused := errors.New("connection refused")
	denied := errors.New("access denied")

	tests := []struct {
		name      string
		hooks     map[string]error
		wantReady bool
		wantFail  []string
	}{
		{"no hooks", nil, true, []string{}},
		{"all succeed", map[string]error{"database": nil, "storage": nil}, true, []string{}},
		{"one fails", map[string]error{"database": refused, "storage": nil}, false, []string{"database"}},
		{"failures sorted", map[string]error{"storage": denied, "database": refused}, false, []string{"database", "storage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := lifecycle.New()
			if lc.Ready() {
				t.Fatal("ready before WaitForStartup")
			}

			var ran atomic.Int32
			for name, hookErr := range tt.hooks {
				lc.OnStartup(name, func() error {
					ran.Add(1)
					return hookErr
				})
			}

			err := lc.WaitForStartup()
			if got := int(ran.Load()); got != len(tt.hooks) {
				t.Errorf("hooks run = %d, want %d", got, len(tt.hooks))
			}
			if lc.Ready() != tt.wantReady {
				t.Errorf("Ready() = %v, want %v", lc.Ready(), tt.wantReady)
			}
			if (err == nil) != tt.wantReady {
				t.Errorf("WaitForStartup error = %v", err)
			}
			for _, name := range tt.wantFail {
				if !errors.Is(err, tt.hooks[name]) || !strings.Contains(err.Error(), name+":") {
					t.Errorf("error %v does not carry %s failure", err, name)
				}
			}
			if got := lc.Failures(); !slices.Equal(got, tt.wantFail) {
				t.Errorf("Failures() = %v, want %v", got, tt.wantFail)
			}
		})
	}
}

func TestStartupHooksRunConcurrently(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})

	lc.OnStartup("waiter", func() error {
		select {
		case <-release:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("never released")
		}
	})
	lc.OnStartup("releaser", func() error {
		close(release)
		return nil
	})

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup: %v", err)
	}
}

func TestShutdown(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Int32
	for range 2 {
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closed.Add(1)
		})
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup: %v", err)
	}
	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if got := closed.Load(); got != 2 {
		t.Errorf("shutdown hooks run = %d, want 2", got)
	}
	if lc.Ready() {
		t.Error("ready after shutdown")
	}
	if lc.Context().Err() == nil {
		t.Error("context not cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	err := lc.Shutdown(50 * time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "shutdown timeout") {
		t.Errorf("Shutdown error = %v, want timeout", err)
	}
}
