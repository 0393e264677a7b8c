package cache

import "testing"

func TestFIFO_PutGet(t *testing.T) {
	c := NewFIFO[string, int](10)

	c.Put("a", 1)
	c.Put("b", 2)

	if got, ok := c.Get("a"); !ok || got != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", got, ok)
	}
	if !c.Contains("b") {
		t.Error("expected cache to contain b")
	}
	if c.Contains("c") {
		t.Error("did not expect cache to contain c")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestFIFO_EvictsOldestAtCapacity(t *testing.T) {
	c := NewFIFO[int, int](3)

	for i := 1; i <= 3; i++ {
		c.Put(i, i)
	}
	c.Put(4, 4)

	if c.Contains(1) {
		t.Error("expected oldest entry 1 to be evicted")
	}
	for i := 2; i <= 4; i++ {
		if !c.Contains(i) {
			t.Errorf("expected entry %d to survive", i)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestFIFO_OverwriteKeepsInsertionOrder(t *testing.T) {
	c := NewFIFO[int, string](3)

	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")

	// Overwriting must not refresh the entry's position.
	c.Put(1, "uno")
	c.Put(4, "four")

	if c.Contains(1) {
		t.Error("entry 1 should still be the eviction candidate after overwrite")
	}
	if got, _ := c.Get(2); got != "two" {
		t.Errorf("Get(2) = %q, want %q", got, "two")
	}
}

func TestFIFO_EvictionOrderAcrossManyInserts(t *testing.T) {
	c := NewFIFO[int, int](5)

	// Insert well past capacity to force internal compaction.
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}

	if c.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", c.Len())
	}
	for i := 95; i < 100; i++ {
		if !c.Contains(i) {
			t.Errorf("expected newest entry %d to survive", i)
		}
	}
	if c.Contains(94) {
		t.Error("entry 94 should have been evicted")
	}
}

func TestFIFO_SnapshotIsolation(t *testing.T) {
	c := NewFIFO[string, int](10)
	c.Put("a", 1)

	snapshot := c.Snapshot()
	c.Put("b", 2)
	snapshot["c"] = 3

	if len(snapshot) != 2 {
		t.Errorf("snapshot len = %d, want 2", len(snapshot))
	}
	if c.Contains("c") {
		t.Error("mutating the snapshot must not affect the cache")
	}
	if _, ok := snapshot["b"]; ok {
		t.Error("mutating the cache must not affect the snapshot")
	}
}

func TestNewFIFO_DefaultCapacity(t *testing.T) {
	c := NewFIFO[int, int](0)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}

	c = NewFIFO[int, int](-5)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}
}
