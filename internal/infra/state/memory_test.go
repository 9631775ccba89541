package state_test

import (
	"context"
	"testing"

	"github.com/yubarajDas/payguard-motia/internal/infra/state"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestSetGetRoundTrip(t *testing.T) {
	store := state.NewMemory()
	ctx := context.Background()

	in := record{ID: "a", Value: 42}
	if err := store.Set(ctx, "things", "a", in); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out record
	found, err := store.Get(ctx, "things", "a", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("record not found")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestGetAbsent(t *testing.T) {
	store := state.NewMemory()

	var out record
	found, err := store.Get(context.Background(), "things", "missing", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected found=false for absent record")
	}
}

func TestSetReplacesWholeRecord(t *testing.T) {
	store := state.NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "things", "a", record{ID: "a", Value: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "things", "a", record{ID: "a", Value: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out record
	if _, err := store.Get(ctx, "things", "a", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Value != 2 {
		t.Errorf("value = %d, want 2", out.Value)
	}
}

func TestGetGroupOrderedByID(t *testing.T) {
	store := state.NewMemory()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := store.Set(ctx, "things", id, record{ID: id}); err != nil {
			t.Fatalf("Set %s: %v", id, err)
		}
	}

	var out []record
	if err := store.GetGroup(ctx, "things", &out); err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, want)
		}
	}
}

func TestGetGroupEmptyCollection(t *testing.T) {
	store := state.NewMemory()

	var out []record
	if err := store.GetGroup(context.Background(), "nothing", &out); err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d records from empty collection", len(out))
	}
}

func TestDelete(t *testing.T) {
	store := state.NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "things", "a", record{ID: "a"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Delete(ctx, "things", "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var out record
	found, err := store.Get(ctx, "things", "a", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("record still present after delete")
	}

	// Deleting an absent record is not an error.
	if err := store.Delete(ctx, "things", "a"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
	if err := store.Delete(ctx, "no-such-collection", "a"); err != nil {
		t.Errorf("Delete absent collection: %v", err)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	store := state.NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "bills", "a", record{ID: "a"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out record
	found, err := store.Get(ctx, "subscriptions", "a", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("record leaked across collections")
	}
}
