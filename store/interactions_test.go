package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rushteam/actireco/dataset"
)

func TestInteractionLog_AppendAndSeen(t *testing.T) {
	dir := t.TempDir()
	kv := NewMemoryStore()
	defer kv.Close()
	log := NewInteractionLog(dir, kv)
	ctx := context.Background()

	events := []dataset.Interaction{
		{UserID: "u1", ActivityID: "a1", Event: "view"},
		{UserID: "u1", ActivityID: "a2", Event: "click"},
		{UserID: "u2", ActivityID: "a1", Event: "like"},
	}
	for _, it := range events {
		if err := log.Append(ctx, it); err != nil {
			t.Fatalf("Append(%+v): %v", it, err)
		}
	}

	// CSV trail holds header plus one row per event
	raw, err := os.ReadFile(filepath.Join(dir, dataset.InteractionsFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv lines = %d, want header + 3 rows:\n%s", len(lines), raw)
	}

	seen, err := log.GetSeenItems(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Errorf("u1 seen = %v", seen)
	}
	seen, err = log.GetSeenItems(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "a1" {
		t.Errorf("u2 seen = %v", seen)
	}
}

func TestInteractionLog_NoKV(t *testing.T) {
	log := NewInteractionLog(t.TempDir(), nil)
	ctx := context.Background()

	if err := log.Append(ctx, dataset.Interaction{UserID: "u1", ActivityID: "a1", Event: "view"}); err != nil {
		t.Fatalf("Append without kv: %v", err)
	}
	seen, err := log.GetSeenItems(ctx, "u1")
	if err != nil || seen != nil {
		t.Errorf("GetSeenItems without kv = %v, %v", seen, err)
	}
}
