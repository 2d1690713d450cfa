package assignments_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/internal/testsupport"
)

func TestImport(t *testing.T) {
	db := testsupport.OpenDB(t)
	sys := assignments.New(db, testsupport.Logger())
	ctx := context.Background()

	result, err := sys.Import(ctx, assignments.Set{
		"alice": {"b.png", "a.png"},
		"bob":   {"c.png"},
	}, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Annotators != 2 || result.Inserted != 3 || result.Removed != 0 {
		t.Errorf("result = %+v, want 2 annotators, 3 inserted", result)
	}

	t.Run("additive import skips existing pairs", func(t *testing.T) {
		result, err := sys.Import(ctx, assignments.Set{"alice": {"a.png", "d.png"}}, false)
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if result.Inserted != 1 {
			t.Errorf("Inserted = %d, want 1", result.Inserted)
		}

		paths, err := sys.ForAnnotator(ctx, "alice")
		if err != nil {
			t.Fatalf("ForAnnotator: %v", err)
		}
		if !slices.Equal(paths, []string{"a.png", "b.png", "d.png"}) {
			t.Errorf("alice = %v", paths)
		}
	})

	t.Run("replace swaps only named annotators", func(t *testing.T) {
		result, err := sys.Import(ctx, assignments.Set{"alice": {"e.png"}}, true)
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if result.Removed != 3 || result.Inserted != 1 {
			t.Errorf("result = %+v, want 3 removed, 1 inserted", result)
		}

		alice, _ := sys.ForAnnotator(ctx, "alice")
		if !slices.Equal(alice, []string{"e.png"}) {
			t.Errorf("alice = %v, want [e.png]", alice)
		}
		bob, _ := sys.ForAnnotator(ctx, "bob")
		if !slices.Equal(bob, []string{"c.png"}) {
			t.Errorf("bob = %v, want [c.png]", bob)
		}
	})

	t.Run("blank annotator rejected", func(t *testing.T) {
		_, err := sys.Import(ctx, assignments.Set{" ": {"x.png"}}, false)
		if !errors.Is(err, assignments.ErrEmptyAnnotator) {
			t.Errorf("error = %v, want ErrEmptyAnnotator", err)
		}
	})
}

func TestReplace(t *testing.T) {
	db := testsupport.OpenDB(t)
	sys := assignments.New(db, testsupport.Logger())
	ctx := context.Background()

	testsupport.Assign(t, db, "alice", "a.png", "b.png")

	result, err := sys.Replace(ctx, " alice ", []string{"c.png", "c.png", " "})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if result.Removed != 2 || result.Inserted != 1 {
		t.Errorf("result = %+v, want 2 removed, 1 inserted", result)
	}

	paths, err := sys.ForAnnotator(ctx, "alice")
	if err != nil {
		t.Fatalf("ForAnnotator: %v", err)
	}
	if !slices.Equal(paths, []string{"c.png"}) {
		t.Errorf("alice = %v, want [c.png]", paths)
	}

	t.Run("empty list clears", func(t *testing.T) {
		if _, err := sys.Replace(ctx, "alice", nil); err != nil {
			t.Fatalf("Replace: %v", err)
		}
		has, err := sys.HasAssignments(ctx, "alice")
		if err != nil {
			t.Fatalf("HasAssignments: %v", err)
		}
		if has {
			t.Error("HasAssignments = true after clearing")
		}
	})

	t.Run("blank annotator rejected", func(t *testing.T) {
		if _, err := sys.Replace(ctx, "  ", []string{"a.png"}); !errors.Is(err, assignments.ErrEmptyAnnotator) {
			t.Errorf("error = %v, want ErrEmptyAnnotator", err)
		}
	})
}

func TestHasAssignments(t *testing.T) {
	db := testsupport.OpenDB(t)
	sys := assignments.New(db, testsupport.Logger())
	ctx := context.Background()

	testsupport.Assign(t, db, "alice", "a.png")

	tests := []struct {
		annotator string
		want      bool
	}{
		{"alice", true},
		{" alice ", true},
		{"bob", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := sys.HasAssignments(ctx, tt.annotator)
		if err != nil {
			t.Fatalf("HasAssignments(%q): %v", tt.annotator, err)
		}
		if got != tt.want {
			t.Errorf("HasAssignments(%q) = %v, want %v", tt.annotator, got, tt.want)
		}
	}

	if _, err := sys.ForAnnotator(ctx, ""); !errors.Is(err, assignments.ErrEmptyAnnotator) {
		t.Errorf("ForAnnotator(\"\") error = %v, want ErrEmptyAnnotator", err)
	}
}
