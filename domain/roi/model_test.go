package roi

import (
	"testing"
	"time"
)

func newTestModel() *RegionModel {
	m := NewRegionModel()
	base := time.Unix(1700000000, 0)
	n := 0
	m.SetClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
	return m
}

func drawRegion(t *testing.T, m *RegionModel, kind Kind, x0, y0, x1, y1 int) Region {
	t.Helper()
	m.BeginDraw(x0, y0, kind)
	m.UpdateDraw(x1, y1)
	reg, ok := m.CommitDraw()
	if !ok {
		t.Fatalf("expected commit of %dx%d gesture", x1-x0, y1-y0)
	}
	return reg
}

func TestRegionModel_CommitDiscardsSmallGestures(t *testing.T) {
	m := newTestModel()
	drawRegion(t, m, KindFood, 10, 10, 100, 100)

	// Width or height at the threshold (10) must be discarded.
	for _, end := range []struct{ x, y int }{{30, 25}, {21, 200}, {200, 21}} {
		m.BeginDraw(20, 15, KindMotion)
		m.UpdateDraw(end.x, end.y)
		if _, ok := m.CommitDraw(); ok {
			t.Fatalf("gesture to (%d,%d) should have been discarded", end.x, end.y)
		}
	}
	if got := len(m.Regions()); got != 1 {
		t.Fatalf("expected 1 committed region, got %d", got)
	}
	if _, _, active := m.Draft(); active {
		t.Fatal("draft must be cleared after commit")
	}
}

func TestRegionModel_DraftNeverInCollection(t *testing.T) {
	m := newTestModel()
	m.BeginDraw(5, 5, KindOCR)
	m.UpdateDraw(300, 300)
	if len(m.Regions()) != 0 {
		t.Fatal("in-progress draw leaked into the committed collection")
	}
	if regs := m.OriginalRegions(NewMapper(1920, 1080, 800, 450)); len(regs) != 0 {
		t.Fatal("in-progress draw leaked into persisted output")
	}
	m.CancelDraw()
	if _, ok := m.CommitDraw(); ok {
		t.Fatal("commit after cancel must be a no-op")
	}
}

func TestRegionModel_ResizeFloor(t *testing.T) {
	m := newTestModel()
	reg := drawRegion(t, m, KindFood, 10, 10, 110, 110)

	prior := reg.Rect
	got := m.Resize(reg.ID, Rect{X: 10, Y: 10, Width: 4, Height: 40})
	if got != prior {
		t.Fatalf("undersized resize must keep prior bounds, got %+v", got)
	}
	if r, _ := m.Region(reg.ID); r.Rect != prior {
		t.Fatalf("stored bounds changed: %+v", r.Rect)
	}

	want := Rect{X: 12, Y: 14, Width: 50, Height: 60}
	if got := m.Resize(reg.ID, want); got != want {
		t.Fatalf("valid resize rejected, got %+v", got)
	}
}

func TestRegionModel_StaleIDsAreNoOps(t *testing.T) {
	m := newTestModel()
	reg := drawRegion(t, m, KindMotion, 0, 0, 50, 50)

	m.Move("gone", 5, 5)
	m.ToggleEnabled("gone")
	m.Delete("gone")
	if got := m.Resize("gone", Rect{X: 0, Y: 0, Width: 20, Height: 20}); got != (Rect{}) {
		t.Fatalf("resize of unknown id should return zero rect, got %+v", got)
	}
	if r, ok := m.Region(reg.ID); !ok || r.Rect != (Rect{X: 0, Y: 0, Width: 50, Height: 50}) || !r.Enabled {
		t.Fatalf("existing region disturbed by stale-id operations: %+v", r)
	}
}

func TestRegionModel_SelectionExclusive(t *testing.T) {
	m := newTestModel()
	a := drawRegion(t, m, KindMotion, 0, 0, 50, 50)
	b := drawRegion(t, m, KindFood, 100, 100, 200, 200)

	m.Select(a.ID)
	m.Select(b.ID)
	if id, ok := m.Selected(); !ok || id != b.ID {
		t.Fatalf("expected exclusive selection of %s, got %q", b.ID, id)
	}
	m.Delete(b.ID)
	if _, ok := m.Selected(); ok {
		t.Fatal("deleting the selected region must clear the selection")
	}
	m.Select("gone")
	if _, ok := m.Selected(); ok {
		t.Fatal("selecting an unknown id must clear the selection")
	}
}

func TestRegionModel_RegionAtReturnsTopmost(t *testing.T) {
	m := newTestModel()
	bottom := drawRegion(t, m, KindMotion, 0, 0, 100, 100)
	top := drawRegion(t, m, KindFood, 50, 50, 150, 150)

	if r, ok := m.RegionAt(75, 75); !ok || r.ID != top.ID {
		t.Fatalf("expected topmost region %s, got %+v", top.ID, r)
	}
	if r, ok := m.RegionAt(10, 10); !ok || r.ID != bottom.ID {
		t.Fatalf("expected bottom region %s, got %+v", bottom.ID, r)
	}
	if _, ok := m.RegionAt(500, 500); ok {
		t.Fatal("empty canvas point should hit nothing")
	}
}

func TestRegionModel_MoveAndToggle(t *testing.T) {
	m := newTestModel()
	reg := drawRegion(t, m, KindOCR, 10, 10, 60, 60)

	m.Move(reg.ID, -5, 15)
	if r, _ := m.Region(reg.ID); r.Rect.X != 5 || r.Rect.Y != 25 {
		t.Fatalf("move applied wrong delta: %+v", r.Rect)
	}
	m.ToggleEnabled(reg.ID)
	if r, _ := m.Region(reg.ID); r.Enabled {
		t.Fatal("expected region disabled after toggle")
	}
	m.ClearAll()
	if len(m.Regions()) != 0 {
		t.Fatal("clear all left regions behind")
	}
}

func TestRegionModel_IDsAreKindTaggedAndUnique(t *testing.T) {
	m := NewRegionModel()
	fixed := time.Unix(1700000000, 0)
	m.SetClock(func() time.Time { return fixed })

	a := drawRegion(t, m, KindFood, 0, 0, 50, 50)
	b := drawRegion(t, m, KindFood, 60, 60, 120, 120)
	if a.ID == b.ID {
		t.Fatalf("same-millisecond commits collided: %s", a.ID)
	}
	if a.ID[:4] != "food" {
		t.Fatalf("id should carry the draw kind, got %s", a.ID)
	}
}

func TestRegionModel_OriginalRegionsConverts(t *testing.T) {
	m := newTestModel()
	reg := drawRegion(t, m, KindFood, 100, 100, 300, 250)

	out := m.OriginalRegions(NewMapper(1920, 1080, 800, 450))
	if len(out) != 1 {
		t.Fatalf("expected 1 region, got %d", len(out))
	}
	want := Rect{X: 240, Y: 240, Width: 480, Height: 360}
	if out[0].Rect != want {
		t.Fatalf("expected original-space %+v, got %+v", want, out[0].Rect)
	}
	// The in-memory model must stay in stage space.
	if r, _ := m.Region(reg.ID); r.Rect != (Rect{X: 100, Y: 100, Width: 200, Height: 150}) {
		t.Fatalf("conversion mutated the model: %+v", r.Rect)
	}
}
