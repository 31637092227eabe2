package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"medextract/internal/models"
)

func TestRegistryPutOverwrites(t *testing.T) {
	reg := NewRegistry()

	first := models.Session{LastActivity: time.Now().UTC(), MessageCount: 2, AgentUsed: "medical_expert"}
	reg.Put("abc", first)
	second := models.Session{LastActivity: time.Now().UTC(), MessageCount: 4, AgentUsed: "offtopic_expert"}
	reg.Put("abc", second)

	snap := reg.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected one session, got %d", len(snap))
	}
	got := snap["abc"]
	if got.MessageCount != 4 || got.AgentUsed != "offtopic_expert" {
		t.Fatalf("expected overwrite semantics, got %+v", got)
	}
}

func TestRegistryDelete(t *testing.T) {
	reg := NewRegistry()
	if reg.Delete("missing") {
		t.Fatalf("delete of unknown id must report false")
	}
	reg.Put("abc", models.Session{MessageCount: 1})
	if !reg.Delete("abc") {
		t.Fatalf("delete of existing id must report true")
	}
	if reg.Count() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Count())
	}
	if reg.Delete("abc") {
		t.Fatalf("second delete must report false")
	}
}

func TestRegistrySnapshotIsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Put("abc", models.Session{MessageCount: 1})
	snap := reg.Snapshot()
	delete(snap, "abc")
	if reg.Count() != 1 {
		t.Fatalf("mutating a snapshot must not affect the registry")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", n%4)
			for j := 0; j < 100; j++ {
				reg.Put(id, models.Session{MessageCount: j})
				reg.Snapshot()
				reg.Count()
			}
		}(i)
	}
	wg.Wait()
	if reg.Count() != 4 {
		t.Fatalf("expected 4 sessions, got %d", reg.Count())
	}
}
