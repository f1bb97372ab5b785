package model

import (
	"image"

	"github.com/platewatch/waste-console/domain/roi"
)

// EditorModel holds the ROI editor state for one camera: the current
// screenshot frame, the stage geometry derived from it and the region set.
// No synchronization needed: updates occur on the UI thread tick.
type EditorModel struct {
	cameraID string
	frame    image.Image
	mapper   roi.Mapper
	regions  *roi.RegionModel

	activeKind roi.Kind
	dirty      bool
	rev        uint64
}

// NewEditorModel returns a ready-to-use model with an empty region set.
func NewEditorModel() *EditorModel {
	return &EditorModel{regions: roi.NewRegionModel(), activeKind: roi.KindFood}
}

// Regions exposes the underlying region collection. Never nil for a model
// built with NewEditorModel.
func (m *EditorModel) Regions() *roi.RegionModel {
	if m == nil {
		return nil
	}
	return m.regions
}

// CameraID returns the camera this editor session belongs to.
func (m *EditorModel) CameraID() string {
	if m == nil {
		return ""
	}
	return m.cameraID
}

func (m *EditorModel) SetCameraID(id string) {
	if m == nil {
		return
	}
	m.cameraID = id
}

// SetFrame installs a new screenshot and rebuilds the coordinate mapper for
// the stage box. The mapper must always match the frame it was built from,
// so the two only ever change together.
func (m *EditorModel) SetFrame(frame image.Image, maxStageW, maxStageH int) {
	if m == nil {
		return
	}
	m.frame = frame
	if frame == nil {
		m.mapper = roi.Mapper{}
		return
	}
	b := frame.Bounds()
	stageW, stageH := roi.FitStage(b.Dx(), b.Dy(), maxStageW, maxStageH)
	m.mapper = roi.NewMapper(b.Dx(), b.Dy(), stageW, stageH)
}

// Frame returns the current screenshot (may be nil before the first fetch).
func (m *EditorModel) Frame() image.Image {
	if m == nil {
		return nil
	}
	return m.frame
}

// Mapper returns the stage coordinate mapper for the current frame.
func (m *EditorModel) Mapper() roi.Mapper {
	if m == nil {
		return roi.Mapper{}
	}
	return m.mapper
}

// StageSize returns the rendered stage dimensions for the current frame.
func (m *EditorModel) StageSize() (w, h int) {
	if m == nil {
		return 0, 0
	}
	return m.mapper.StageW, m.mapper.StageH
}

// LoadRegions replaces the region set with the persisted original-space
// configuration, converted to stage space. Clears the dirty flag.
func (m *EditorModel) LoadRegions(original []roi.Region) {
	if m == nil {
		return
	}
	stage := make([]roi.Region, len(original))
	for i, r := range original {
		r.Rect = m.mapper.ToStage(r.Rect)
		stage[i] = r
	}
	m.regions.SetRegions(stage)
	m.dirty = false
}

// ActiveKind returns the kind assigned to newly drawn regions.
func (m *EditorModel) ActiveKind() roi.Kind {
	if m == nil {
		return roi.KindMotion
	}
	return m.activeKind
}

func (m *EditorModel) SetActiveKind(k roi.Kind) {
	if m == nil {
		return
	}
	m.activeKind = k
}

// Dirty reports whether the region set has unsaved edits.
func (m *EditorModel) Dirty() bool {
	if m == nil {
		return false
	}
	return m.dirty
}

// MarkDirty flags the region set as edited since the last load or save and
// advances the edit revision.
func (m *EditorModel) MarkDirty() {
	if m == nil {
		return
	}
	m.dirty = true
	m.rev++
}

// Revision counts edits. A save snapshots it so a success arriving after
// further edits cannot clear the dirty flag for work it never persisted.
func (m *EditorModel) Revision() uint64 {
	if m == nil {
		return 0
	}
	return m.rev
}

// ClearDirty resets the edit flag, e.g. after a successful save.
func (m *EditorModel) ClearDirty() {
	if m == nil {
		return
	}
	m.dirty = false
}
