package roi

import (
	"fmt"
	"time"
)

const (
	// Draw gestures smaller than this (stage pixels, strict) are treated as
	// interaction noise and discarded on commit.
	MinCommitSize = 10
	// Resizes below this floor keep the prior bounds.
	MinRegionSize = 5
)

// draft is an in-progress draw gesture. It lives outside the committed region
// list so it can never leak into persisted output.
type draft struct {
	startX, startY int
	rect           Rect
	kind           Kind
}

// RegionModel holds the editor's in-memory region set in stage coordinates,
// plus at most one selected region and at most one in-progress draw.
// Operations on ids that no longer exist are no-ops: UI elements may still
// reference a region mid-transition. The model is owned by a single editor
// instance and is not safe for concurrent use.
type RegionModel struct {
	regions  []Region
	selected string
	draft    *draft
	now      func() time.Time
}

// NewRegionModel returns an empty, ready-to-use model.
func NewRegionModel() *RegionModel { return &RegionModel{now: time.Now} }

// SetClock overrides the id-generation clock. Intended for tests.
func (m *RegionModel) SetClock(now func() time.Time) {
	if m == nil || now == nil {
		return
	}
	m.now = now
}

// Regions returns a copy of the committed regions in collection order.
func (m *RegionModel) Regions() []Region {
	if m == nil {
		return nil
	}
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// Len returns the number of committed regions.
func (m *RegionModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.regions)
}

// Region looks up a committed region by id.
func (m *RegionModel) Region(id string) (Region, bool) {
	if m == nil {
		return Region{}, false
	}
	for _, r := range m.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// SetRegions replaces the committed collection, e.g. after loading the saved
// configuration from the backend. Selection and draft are reset.
func (m *RegionModel) SetRegions(regions []Region) {
	if m == nil {
		return
	}
	m.regions = make([]Region, len(regions))
	copy(m.regions, regions)
	m.selected = ""
	m.draft = nil
}

// Selected returns the selected region id, if any.
func (m *RegionModel) Selected() (string, bool) {
	if m == nil || m.selected == "" {
		return "", false
	}
	return m.selected, true
}

// Select marks the region as the exclusive selection. Unknown ids clear it.
func (m *RegionModel) Select(id string) {
	if m == nil {
		return
	}
	if _, ok := m.Region(id); !ok {
		m.selected = ""
		return
	}
	m.selected = id
}

// ClearSelection drops any selection.
func (m *RegionModel) ClearSelection() {
	if m == nil {
		return
	}
	m.selected = ""
}

// RegionAt returns the topmost region containing the point.
func (m *RegionModel) RegionAt(x, y int) (Region, bool) {
	if m == nil {
		return Region{}, false
	}
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return m.regions[i], true
		}
	}
	return Region{}, false
}

// BeginDraw starts a draw gesture at the given stage point.
func (m *RegionModel) BeginDraw(x, y int, kind Kind) {
	if m == nil {
		return
	}
	m.draft = &draft{startX: x, startY: y, rect: Rect{X: x, Y: y}, kind: kind}
}

// UpdateDraw replaces the draft with the normalized rectangle spanning the
// gesture start point and the current point.
func (m *RegionModel) UpdateDraw(x, y int) {
	if m == nil || m.draft == nil {
		return
	}
	m.draft.rect = RectFromPoints(m.draft.startX, m.draft.startY, x, y)
}

// Draft returns the in-progress rectangle and kind, if a draw is active.
func (m *RegionModel) Draft() (Rect, Kind, bool) {
	if m == nil || m.draft == nil {
		return Rect{}, 0, false
	}
	return m.draft.rect, m.draft.kind, true
}

// CancelDraw discards any in-progress gesture.
func (m *RegionModel) CancelDraw() {
	if m == nil {
		return
	}
	m.draft = nil
}

// CommitDraw ends the active gesture. Rectangles above the commit threshold
// become permanent regions (enabled, tagged with the draw kind) and are
// selected; anything smaller is dropped with no state change.
func (m *RegionModel) CommitDraw() (Region, bool) {
	if m == nil || m.draft == nil {
		return Region{}, false
	}
	d := *m.draft
	m.draft = nil
	if d.rect.Width <= MinCommitSize || d.rect.Height <= MinCommitSize {
		return Region{}, false
	}
	reg := Region{ID: m.newID(d.kind), Rect: d.rect, Enabled: true, Kind: d.kind}
	m.regions = append(m.regions, reg)
	m.selected = reg.ID
	return reg, true
}

// Move shifts a region by the given stage-pixel delta.
func (m *RegionModel) Move(id string, dx, dy int) {
	if m == nil {
		return
	}
	for i := range m.regions {
		if m.regions[i].ID == id {
			m.regions[i].Rect.X += dx
			m.regions[i].Rect.Y += dy
			return
		}
	}
}

// Resize replaces a region's bounds. Bounds below the size floor are rejected
// and the prior bounds are returned unchanged, keeping stored dimensions
// canonical after corner-handle transforms.
func (m *RegionModel) Resize(id string, bounds Rect) Rect {
	if m == nil {
		return Rect{}
	}
	for i := range m.regions {
		if m.regions[i].ID == id {
			if bounds.Width < MinRegionSize || bounds.Height < MinRegionSize {
				return m.regions[i].Rect
			}
			m.regions[i].Rect = bounds
			return bounds
		}
	}
	return Rect{}
}

// ToggleEnabled flips a region's enabled flag.
func (m *RegionModel) ToggleEnabled(id string) {
	if m == nil {
		return
	}
	for i := range m.regions {
		if m.regions[i].ID == id {
			m.regions[i].Enabled = !m.regions[i].Enabled
			return
		}
	}
}

// Delete removes a region, clearing the selection if it pointed at it.
func (m *RegionModel) Delete(id string) {
	if m == nil {
		return
	}
	for i := range m.regions {
		if m.regions[i].ID == id {
			m.regions = append(m.regions[:i], m.regions[i+1:]...)
			if m.selected == id {
				m.selected = ""
			}
			return
		}
	}
}

// ClearAll removes every region, the selection and any draft.
func (m *RegionModel) ClearAll() {
	if m == nil {
		return
	}
	m.regions = nil
	m.selected = ""
	m.draft = nil
}

// OriginalRegions converts the committed collection to original-image space
// for persistence. The draft is never included.
func (m *RegionModel) OriginalRegions(mapper Mapper) []Region {
	if m == nil {
		return nil
	}
	out := make([]Region, len(m.regions))
	for i, r := range m.regions {
		r.Rect = mapper.ToOriginal(r.Rect)
		out[i] = r
	}
	return out
}

// newID builds a kind-tagged, time-based id, bumping the suffix on the rare
// same-millisecond collision.
func (m *RegionModel) newID(kind Kind) string {
	ms := m.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", kind, ms)
		if _, exists := m.Region(id); !exists {
			return id
		}
		ms++
	}
}
