package workitems_test

import (
	"context"
	"slices"
	"testing"

	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/internal/testsupport"
	"github.com/JaimeStill/groundtruth/internal/workitems"
)

func filepaths(items []workitems.WorkItem) []string {
	paths := make([]string, len(items))
	for i, it := range items {
		paths[i] = it.FullFilepath
	}
	slices.Sort(paths)
	return paths
}

func TestFetchWork(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved items drop out", func(t *testing.T) {
		db := testsupport.OpenDB(t)
		testsupport.Items(t, db, "a.png", "b.png")
		logger := testsupport.Logger()
		sys := workitems.New(db, assignments.New(db, logger), logger)

		items, err := sys.FetchWork(ctx, "alice")
		if err != nil {
			t.Fatalf("FetchWork: %v", err)
		}
		if got := filepaths(items); !slices.Equal(got, []string{"a.png", "b.png"}) {
			t.Fatalf("before = %v, want [a.png b.png]", got)
		}

		testsupport.Classify(t, db, "alice", "a.png", testsupport.Label(1))

		items, err = sys.FetchWork(ctx, "alice")
		if err != nil {
			t.Fatalf("FetchWork: %v", err)
		}
		if got := filepaths(items); !slices.Equal(got, []string{"b.png"}) {
			t.Errorf("after = %v, want [b.png]", got)
		}
	})

	t.Run("unresolved and foreign judgments stay eligible", func(t *testing.T) {
		db := testsupport.OpenDB(t)
		testsupport.Items(t, db, "a.png", "b.png", "c.png")
		testsupport.Classify(t, db, "alice", "a.png", nil)
		testsupport.Classify(t, db, "bob", "b.png", testsupport.Label(0))
		testsupport.Classify(t, db, "alice", "c.png", testsupport.Label(0))

		logger := testsupport.Logger()
		sys := workitems.New(db, assignments.New(db, logger), logger)

		items, err := sys.FetchWork(ctx, " alice ")
		if err != nil {
			t.Fatalf("FetchWork: %v", err)
		}
		if got := filepaths(items); !slices.Equal(got, []string{"a.png", "b.png"}) {
			t.Errorf("items = %v, want [a.png b.png]", got)
		}
	})

	t.Run("assignments restrict eligibility", func(t *testing.T) {
		db := testsupport.OpenDB(t)
		testsupport.Items(t, db, "a.png", "b.png", "c.png", "d.png")
		testsupport.Assign(t, db, "alice", "b.png", "c.png", "z.png")
		testsupport.Classify(t, db, "alice", "c.png", testsupport.Label(1))

		logger := testsupport.Logger()
		sys := workitems.New(db, assignments.New(db, logger), logger)

		items, err := sys.FetchWork(ctx, "alice")
		if err != nil {
			t.Fatalf("FetchWork: %v", err)
		}
		if got := filepaths(items); !slices.Equal(got, []string{"b.png"}) {
			t.Errorf("alice = %v, want [b.png]", got)
		}

		items, err = sys.FetchWork(ctx, "bob")
		if err != nil {
			t.Fatalf("FetchWork: %v", err)
		}
		if got := filepaths(items); len(got) != 4 {
			t.Errorf("bob = %v, want all four items", got)
		}
	})

	t.Run("no annotator gets nothing", func(t *testing.T) {
		db := testsupport.OpenDB(t)
		testsupport.Items(t, db, "a.png")
		logger := testsupport.Logger()
		sys := workitems.New(db, assignments.New(db, logger), logger)

		for _, annotator := range []string{"", "   "} {
			items, err := sys.FetchWork(ctx, annotator)
			if err != nil {
				t.Fatalf("FetchWork(%q): %v", annotator, err)
			}
			if items == nil || len(items) != 0 {
				t.Errorf("FetchWork(%q) = %v, want empty non-nil", annotator, items)
			}
		}
	})

	t.Run("order is a permutation that varies", func(t *testing.T) {
		db := testsupport.OpenDB(t)
		all := []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"}
		testsupport.Items(t, db, all...)
		logger := testsupport.Logger()
		sys := workitems.New(db, assignments.New(db, logger), logger)

		orders := make(map[string]struct{})
		for range 20 {
			items, err := sys.FetchWork(ctx, "alice")
			if err != nil {
				t.Fatalf("FetchWork: %v", err)
			}
			if got := filepaths(items); !slices.Equal(got, all) {
				t.Fatalf("items = %v, want %v", got, all)
			}

			var key string
			for _, it := range items {
				key += it.FullFilepath + ","
			}
			orders[key] = struct{}{}
		}

		if len(orders) < 2 {
			t.Error("20 fetches returned the same order every time")
		}
	})
}
