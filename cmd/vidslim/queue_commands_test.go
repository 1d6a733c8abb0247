package main

import (
	"testing"
)

func TestAddAndQueueLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVideo(t, "movie.mkv")
	env.writeVideo(t, "clip.mp4")

	out, _, err := runCLI(t, []string{"add", env.videoDir}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added 2 item(s)")

	out, _, err = runCLI(t, []string{"add", env.videoDir}, env.configPath)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	requireContains(t, out, "2 already queued")

	out, _, err = runCLI(t, []string{"queue", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	requireContains(t, out, "pending")
	requireContains(t, out, "total")
	requireContains(t, out, "2")

	out, _, err = runCLI(t, []string{"queue", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "movie.mkv")
	requireContains(t, out, "standard")

	out, _, err = runCLI(t, []string{"queue", "remove", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	requireContains(t, out, "Removed item 1")

	out, _, err = runCLI(t, []string{"queue", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 item(s)")

	out, _, err = runCLI(t, []string{"queue", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("queue status after clear: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestAddRejectsUnknownProfile(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVideo(t, "movie.mkv")

	if _, _, err := runCLI(t, []string{"add", env.videoDir, "--profile", "nonexistent"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"queue", "list", "--status", "paused"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestProfilesListsDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"profiles"}, env.configPath)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	requireContains(t, out, "standard (default)")
	requireContains(t, out, "high")
	requireContains(t, out, "fast")
}
