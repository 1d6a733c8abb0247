package testsupport

import (
	"context"
	"testing"

	"vidslim/internal/config"
	"vidslim/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustAdd enqueues a source file for tests using the provided store.
func MustAdd(t testing.TB, store *queue.Store, sourcePath, profile string) *queue.Item {
	t.Helper()

	item, _, err := store.Add(context.Background(), sourcePath, profile, 0)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return item
}
