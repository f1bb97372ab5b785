package model

import (
	"testing"

	"github.com/platewatch/waste-console/domain/detection"
)

func TestQueueModel_SetAndLookup(t *testing.T) {
	m := NewQueueModel()
	m.Set([]detection.Detection{
		{ID: "d-2", ReviewStatus: ""},
		{ID: "d-1", ReviewStatus: detection.ReviewDetectionOK},
	})

	if m.Len() != 2 {
		t.Fatalf("expected 2, got %d", m.Len())
	}
	if d, ok := m.Get("d-1"); !ok || d.ReviewStatus != detection.ReviewDetectionOK {
		t.Fatalf("lookup failed: %+v ok=%v", d, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("unknown id should not resolve")
	}
	if d, ok := m.At(0); !ok || d.ID != "d-2" {
		t.Fatalf("expected newest first at index 0, got %+v", d)
	}
	if _, ok := m.At(5); ok {
		t.Fatal("out-of-range index should not resolve")
	}
	if m.PendingCount() != 1 {
		t.Fatalf("expected 1 pending, got %d", m.PendingCount())
	}
}

func TestQueueModel_ListCopies(t *testing.T) {
	m := NewQueueModel()
	m.Set([]detection.Detection{{ID: "d-1"}})
	list := m.List()
	list[0].ID = "mutated"
	if d, _ := m.Get("d-1"); d.ID != "d-1" {
		t.Fatal("List must return a copy")
	}
}
