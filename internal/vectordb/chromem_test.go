package vectordb

import (
	"context"
	"path/filepath"
	"testing"
)

// fakeEmbedFunc maps each text to a deterministic unit vector so that
// identical texts are closest to each other.
func fakeEmbedFunc(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r)
	}
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	// chromem expects normalized vectors.
	inv := 1 / sqrt32(norm)
	for i := range vec {
		vec[i] *= inv
	}
	return vec, nil
}

func sqrt32(x float32) float32 {
	// Newton's method is plenty for test vectors.
	z := x
	for i := 0; i < 20; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

func setupTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(fakeEmbedFunc)
	if err != nil {
		t.Fatalf("NewChromemStore() error = %v", err)
	}
	return store
}

func testDocs() []Document {
	return []Document{
		{ID: "remote-work-0", Content: "Employees may work from home up to three days per week.", PolicyName: "Remote Work Policy", Filename: "remote_work.md", ChunkIndex: 0},
		{ID: "sick-leave-0", Content: "Sick leave requires a doctor's note after three consecutive days.", PolicyName: "Sick Leave Policy", Filename: "sick_leave.md", ChunkIndex: 0},
		{ID: "sick-leave-1", Content: "Unused sick days do not carry over to the next year.", PolicyName: "Sick Leave Policy", Filename: "sick_leave.md", ChunkIndex: 1},
	}
}

func TestAddAndSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := store.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}

	results, err := store.Search(ctx, "Employees may work from home up to three days per week.", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].ID != "remote-work-0" {
		t.Errorf("top result = %q, want %q", results[0].ID, "remote-work-0")
	}
	if results[0].PolicyName != "Remote Work Policy" {
		t.Errorf("top result policy = %q, want %q", results[0].PolicyName, "Remote Work Policy")
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := setupTestStore(t)

	results, err := store.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Search() on empty store error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty store returned %d results, want 0", len(results))
	}
}

func TestSearchClampsTopK(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, testDocs()[:1]); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := store.Search(ctx, "remote work", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results, want 1", len(results))
	}
}

func TestSearchByPolicy(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := store.SearchByPolicy(ctx, "work from home", "Sick Leave Policy", 3)
	if err != nil {
		t.Fatalf("SearchByPolicy() error = %v", err)
	}
	for _, r := range results {
		if r.PolicyName != "Sick Leave Policy" {
			t.Errorf("result %q has policy %q, want only Sick Leave Policy", r.ID, r.PolicyName)
		}
	}
}

func TestPersistAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "policies.gob.gz")
	if err := store.Persist(path); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	loaded, err := LoadChromemStore(path, fakeEmbedFunc)
	if err != nil {
		t.Fatalf("LoadChromemStore() error = %v", err)
	}
	if got := loaded.Count(); got != 3 {
		t.Errorf("loaded Count() = %d, want 3", got)
	}
}

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.gob.gz")

	store, err := LoadChromemStore(path, fakeEmbedFunc)
	if err != nil {
		t.Fatalf("LoadChromemStore() error = %v", err)
	}
	if got := store.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := store.Count(); got != 0 {
		t.Errorf("Count() after Clear = %d, want 0", got)
	}

	// The store stays usable after a clear.
	if err := store.Add(ctx, testDocs()[:1]); err != nil {
		t.Fatalf("Add() after Clear error = %v", err)
	}
	if got := store.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}
