package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/domain/review"
)

func openTestStore(t *testing.T) *AuditStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAuditStore_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	recs := []review.Record{
		{DetectionID: "det-1", Action: "accept", Status: detection.ReviewDetectionOK, Note: "first", At: base},
		{DetectionID: "det-2", Action: "cancel", Status: detection.ReviewDetectionRejected, Note: "second", At: base.Add(time.Minute)},
		{DetectionID: "det-3", Action: "review", Status: detection.ReviewNeedRevision, Note: "third", At: base.Add(2 * time.Minute)},
	}
	for _, r := range recs {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.DetectionID, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].DetectionID != "det-3" || got[1].DetectionID != "det-2" {
		t.Fatalf("expected newest first, got %s then %s", got[0].DetectionID, got[1].DetectionID)
	}
	if got[0].Status != detection.ReviewNeedRevision || got[0].Action != "review" {
		t.Fatalf("record fields lost: %+v", got[0])
	}
}

func TestAuditStore_RecentDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestAuditStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := review.Record{DetectionID: "det-9", Action: "accept", Status: detection.ReviewDetectionOK, At: time.Now()}
	if err := s.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Recent(context.Background(), 10)
	if err != nil || len(got) != 1 || got[0].DetectionID != "det-9" {
		t.Fatalf("expected persisted record, got %v err=%v", got, err)
	}
}
