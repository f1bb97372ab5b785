package presenter

import (
	"context"
	"image"
	"log/slog"

	"github.com/platewatch/waste-console/api"
	"github.com/platewatch/waste-console/domain/roi"
	"github.com/platewatch/waste-console/ui/images"
	"github.com/platewatch/waste-console/ui/model"
)

// EditorBackend narrows the backend client surface used by the ROI editor.
type EditorBackend interface {
	OpenEditorData(ctx context.Context, cameraID string) (api.EditorData, error)
	CaptureScreenshot(ctx context.Context, cameraID string) (api.Screenshot, error)
	SaveROIConfig(ctx context.Context, cameraID string, regions []api.RegionConfig) error
	SaveROIPreview(ctx context.Context, cameraID string, png []byte) error
}

// EditorView describes the UI surface updated by the editor presenter.
type EditorView interface {
	RenderStage(img image.Image)
	SetRegionSummary(total, enabled int)
	SetDirty(bool)
	ShowStatus(msg string)
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDraw
	gestureMove
	gestureResize
)

// handleRadius is the stage-pixel hit distance for corner resize handles.
const handleRadius = 6

// EditorPresenter owns presentation logic for the ROI rectangle editor: it
// translates pointer gestures on the stage into region-model operations and
// re-renders the composited stage after each change.
type EditorPresenter struct {
	Model   *model.EditorModel
	Backend EditorBackend
	View    EditorView
	Logger  *slog.Logger

	StageMaxW int
	StageMaxH int

	// post marshals backend results back onto the UI thread; spawn runs the
	// blocking backend call off it. Both are overridable so tests stay
	// synchronous.
	post  func(func())
	spawn func(func())

	gesture  gestureKind
	moveID   string
	lastX    int
	lastY    int
	resizeID string
	// fixed corner during a corner-handle resize; the dragged corner
	// follows the pointer.
	anchorX int
	anchorY int

	saving bool
}

func NewEditorPresenter(m *model.EditorModel, backend EditorBackend, view EditorView, logger *slog.Logger, stageMaxW, stageMaxH int, post func(func())) *EditorPresenter {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &EditorPresenter{
		Model: m, Backend: backend, View: view, Logger: logger,
		StageMaxW: stageMaxW, StageMaxH: stageMaxH,
		post:  post,
		spawn: func(fn func()) { go fn() },
	}
}

// Open loads the editor for a camera: fresh screenshot plus the saved region
// configuration, fetched concurrently off the UI thread. The result is
// applied on the next UI tick.
func (p *EditorPresenter) Open(cameraID string) {
	if p == nil || p.Model == nil || p.Backend == nil {
		return
	}
	p.spawn(func() {
		data, err := p.Backend.OpenEditorData(context.Background(), cameraID)
		p.post(func() {
			if err != nil {
				if p.Logger != nil {
					p.Logger.Error("editor open failed", "camera", cameraID, "error", err)
				}
				if p.View != nil {
					p.View.ShowStatus("Failed to load camera")
				}
				return
			}
			p.Model.SetCameraID(cameraID)
			p.Model.SetFrame(data.Screenshot.Image, p.StageMaxW, p.StageMaxH)
			p.Model.LoadRegions(api.Regions(data.Regions))
			p.gesture = gestureNone
			p.Render()
		})
	})
}

// RefreshFrame replaces the screenshot with a fresh capture. Regions are
// carried over through original-image space so a changed frame size cannot
// skew their stage coordinates. The fetch runs off the UI thread; regions and
// dirty state are read at apply time, so edits made meanwhile survive.
func (p *EditorPresenter) RefreshFrame() {
	if p == nil || p.Model == nil || p.Backend == nil {
		return
	}
	cameraID := p.Model.CameraID()
	p.spawn(func() {
		shot, err := p.Backend.CaptureScreenshot(context.Background(), cameraID)
		p.post(func() {
			if p.Model.CameraID() != cameraID {
				// The operator switched cameras while the capture ran.
				return
			}
			if err != nil {
				if p.Logger != nil {
					p.Logger.Error("screenshot refresh failed", "camera", cameraID, "error", err)
				}
				if p.View != nil {
					p.View.ShowStatus("Screenshot refresh failed")
				}
				return
			}
			original := p.Model.Regions().OriginalRegions(p.Model.Mapper())
			dirty := p.Model.Dirty()
			p.Model.SetFrame(shot.Image, p.StageMaxW, p.StageMaxH)
			p.Model.LoadRegions(original)
			if dirty {
				p.Model.MarkDirty()
			}
			p.gesture = gestureNone
			p.Render()
		})
	})
}

// PointerDown starts a gesture at a stage point: a corner handle of the
// selected region starts a resize, a region body starts a move, empty stage
// deselects when something is selected and otherwise starts a draw.
func (p *EditorPresenter) PointerDown(x, y int) {
	if p == nil || p.Model == nil {
		return
	}
	rm := p.Model.Regions()
	if id, ok := rm.Selected(); ok {
		if reg, found := rm.Region(id); found {
			if ax, ay, hit := hitHandle(reg.Rect, x, y); hit {
				p.gesture = gestureResize
				p.resizeID = id
				p.anchorX, p.anchorY = ax, ay
				return
			}
		}
	}
	if reg, ok := rm.RegionAt(x, y); ok {
		rm.Select(reg.ID)
		p.gesture = gestureMove
		p.moveID = reg.ID
		p.lastX, p.lastY = x, y
		p.Render()
		return
	}
	if _, ok := rm.Selected(); ok {
		// A click on empty stage first deselects; the next one may draw.
		rm.ClearSelection()
		p.Render()
		return
	}
	rm.BeginDraw(x, y, p.Model.ActiveKind())
	p.gesture = gestureDraw
	p.Render()
}

// PointerMove advances the active gesture.
func (p *EditorPresenter) PointerMove(x, y int) {
	if p == nil || p.Model == nil || p.gesture == gestureNone {
		return
	}
	rm := p.Model.Regions()
	switch p.gesture {
	case gestureDraw:
		rm.UpdateDraw(x, y)
	case gestureMove:
		rm.Move(p.moveID, x-p.lastX, y-p.lastY)
		p.lastX, p.lastY = x, y
	case gestureResize:
		rm.Resize(p.resizeID, roi.RectFromPoints(p.anchorX, p.anchorY, x, y))
	}
	p.Render()
}

// PointerUp ends the active gesture. Draws commit (or drop below the size
// threshold); moves and resizes are already applied.
func (p *EditorPresenter) PointerUp(x, y int) {
	if p == nil || p.Model == nil {
		return
	}
	g := p.gesture
	p.gesture = gestureNone
	rm := p.Model.Regions()
	switch g {
	case gestureDraw:
		rm.UpdateDraw(x, y)
		if _, ok := rm.CommitDraw(); ok {
			p.Model.MarkDirty()
		}
	case gestureMove, gestureResize:
		p.Model.MarkDirty()
	default:
		return
	}
	p.Render()
}

// CancelGesture aborts any in-progress gesture, e.g. on Escape.
func (p *EditorPresenter) CancelGesture() {
	if p == nil || p.Model == nil {
		return
	}
	p.Model.Regions().CancelDraw()
	p.gesture = gestureNone
	p.Render()
}

// SetKind selects the kind assigned to newly drawn regions.
func (p *EditorPresenter) SetKind(k roi.Kind) {
	if p == nil || p.Model == nil {
		return
	}
	p.Model.SetActiveKind(k)
}

// ToggleSelected flips the enabled flag on the selected region.
func (p *EditorPresenter) ToggleSelected() {
	if p == nil || p.Model == nil {
		return
	}
	if id, ok := p.Model.Regions().Selected(); ok {
		p.Model.Regions().ToggleEnabled(id)
		p.Model.MarkDirty()
		p.Render()
	}
}

// DeleteSelected removes the selected region.
func (p *EditorPresenter) DeleteSelected() {
	if p == nil || p.Model == nil {
		return
	}
	if id, ok := p.Model.Regions().Selected(); ok {
		p.Model.Regions().Delete(id)
		p.Model.MarkDirty()
		p.Render()
	}
}

// ClearAll removes every region.
func (p *EditorPresenter) ClearAll() {
	if p == nil || p.Model == nil {
		return
	}
	if p.Model.Regions().Len() == 0 {
		return
	}
	p.Model.Regions().ClearAll()
	p.Model.MarkDirty()
	p.Render()
}

// Save persists the region configuration in original-image coordinates, then
// uploads the rendered stage as the ROI preview. The preview upload is best
// effort: its failure never rolls back a saved configuration. The snapshot is
// taken on the UI thread; both network writes run off it. Repeat presses
// while a save is in flight are ignored.
func (p *EditorPresenter) Save() {
	if p == nil || p.Model == nil || p.Backend == nil || p.saving {
		return
	}
	cameraID := p.Model.CameraID()
	rev := p.Model.Revision()
	original := p.Model.Regions().OriginalRegions(p.Model.Mapper())
	var png []byte
	if stage := p.renderStage(); stage != nil {
		png = images.EncodePNG(stage)
	}
	p.saving = true
	p.spawn(func() {
		err := p.Backend.SaveROIConfig(context.Background(), cameraID, api.RegionConfigs(original))
		var previewErr error
		if err == nil && len(png) > 0 {
			previewErr = p.Backend.SaveROIPreview(context.Background(), cameraID, png)
		}
		p.post(func() {
			p.saving = false
			if err != nil {
				if p.Logger != nil {
					p.Logger.Error("roi save failed", "camera", cameraID, "error", err)
				}
				if p.View != nil {
					p.View.ShowStatus("Save failed")
				}
				return
			}
			if p.Model.Revision() == rev && p.Model.CameraID() == cameraID {
				p.Model.ClearDirty()
				if p.View != nil {
					p.View.SetDirty(false)
				}
			}
			if previewErr != nil {
				if p.Logger != nil {
					p.Logger.Warn("roi preview upload failed", "camera", cameraID, "error", previewErr)
				}
				if p.View != nil {
					p.View.ShowStatus("Configuration saved, preview image failed")
				}
				return
			}
			if p.View != nil {
				p.View.ShowStatus("Configuration saved")
			}
		})
	})
}

// Render composites the current stage and pushes it to the view.
func (p *EditorPresenter) Render() {
	if p == nil || p.Model == nil || p.View == nil {
		return
	}
	if stage := p.renderStage(); stage != nil {
		p.View.RenderStage(stage)
	}
	regions := p.Model.Regions().Regions()
	enabled := 0
	for _, r := range regions {
		if r.Enabled {
			enabled++
		}
	}
	p.View.SetRegionSummary(len(regions), enabled)
	p.View.SetDirty(p.Model.Dirty())
}

func (p *EditorPresenter) renderStage() *image.RGBA {
	rm := p.Model.Regions()
	ov := images.Overlay{Regions: rm.Regions()}
	if id, ok := rm.Selected(); ok {
		ov.SelectedID = id
	}
	if rect, _, ok := rm.Draft(); ok {
		ov.Draft = &rect
	}
	w, h := p.Model.StageSize()
	return images.RenderStage(p.Model.Frame(), w, h, ov)
}

// hitHandle reports whether a stage point lands on one of the rectangle's
// corner handles. Returns the opposite corner, which stays fixed while the
// hit corner follows the pointer.
func hitHandle(r roi.Rect, x, y int) (anchorX, anchorY int, hit bool) {
	corners := [][4]int{
		{r.X, r.Y, r.X + r.Width, r.Y + r.Height},
		{r.X + r.Width, r.Y, r.X, r.Y + r.Height},
		{r.X, r.Y + r.Height, r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height, r.X, r.Y},
	}
	for _, c := range corners {
		dx, dy := x-c[0], y-c[1]
		if dx >= -handleRadius && dx <= handleRadius && dy >= -handleRadius && dy <= handleRadius {
			return c[2], c[3], true
		}
	}
	return 0, 0, false
}
