package view

import (
	"fmt"
	"image"
	"strconv"

	"github.com/platewatch/waste-console/domain/roi"
	"github.com/platewatch/waste-console/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// EditorHandlers groups the presenter callbacks wired to the editor widgets.
type EditorHandlers struct {
	OnPointerDown func(x, y int)
	OnPointerMove func(x, y int)
	OnPointerUp   func(x, y int)
	OnCancel      func()
	OnKindChanged func(k roi.Kind)
	OnToggle      func()
	OnDelete      func()
	OnClear       func()
	OnSave        func()
	OnRefresh     func()
}

// kindOrder fixes the combobox entries; labels match roi.Kind strings.
var kindOrder = []roi.Kind{roi.KindMotion, roi.KindFood, roi.KindOCR}

// EditorView renders the ROI editor: the composited stage image plus the
// region toolbar. The stage is a plain label showing the presenter-rendered
// frame; pointer events on it drive the draw/move/resize gestures.
type EditorView struct {
	stageLabel *LabelWidget
	prevPhoto  *Img
	summaryLbl *LabelWidget
	statusLbl  *LabelWidget
	dirtyLbl   *LabelWidget
	kindSelect *TComboboxWidget
}

// NewEditorView builds the editor widgets starting at the given grid row.
func NewEditorView(row int, h EditorHandlers) *EditorView {
	v := &EditorView{}

	placeholder := image.NewRGBA(image.Rect(0, 0, 400, 225))
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.stageLabel = Label(Image(v.prevPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.stageLabel, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))

	Bind(v.stageLabel, "<ButtonPress-1>", Command(func(e *Event) {
		if h.OnPointerDown != nil {
			h.OnPointerDown(e.X, e.Y)
		}
	}))
	Bind(v.stageLabel, "<B1-Motion>", Command(func(e *Event) {
		if h.OnPointerMove != nil {
			h.OnPointerMove(e.X, e.Y)
		}
	}))
	Bind(v.stageLabel, "<ButtonRelease-1>", Command(func(e *Event) {
		if h.OnPointerUp != nil {
			h.OnPointerUp(e.X, e.Y)
		}
	}))
	Bind(App, "<Escape>", Command(func() {
		if h.OnCancel != nil {
			h.OnCancel()
		}
	}))

	toolbar := Frame()
	Grid(toolbar, Row(row), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))

	kinds := make([]string, len(kindOrder))
	for i, k := range kindOrder {
		kinds[i] = k.String()
	}
	v.kindSelect = TCombobox(Values(kinds), Width(12))
	Grid(v.kindSelect, In(toolbar), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.kindSelect.Current(1) // food is the default draw kind
	Bind(v.kindSelect, "<<ComboboxSelected>>", Command(func() {
		if h.OnKindChanged == nil || v.kindSelect == nil {
			return
		}
		idx, err := strconv.Atoi(v.kindSelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(kindOrder) {
			return
		}
		h.OnKindChanged(kindOrder[idx])
	}))

	toggleBtn := Button(Txt("Enable/Disable"), Command(func() { call(h.OnToggle) }))
	Grid(toggleBtn, In(toolbar), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	deleteBtn := Button(Txt("Delete Region"), Command(func() { call(h.OnDelete) }))
	Grid(deleteBtn, In(toolbar), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clearBtn := Button(Txt("Clear All"), Command(func() { call(h.OnClear) }))
	Grid(clearBtn, In(toolbar), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	refreshBtn := Button(Txt("New Screenshot"), Command(func() { call(h.OnRefresh) }))
	Grid(refreshBtn, In(toolbar), Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	saveBtn := Button(Txt("Save Regions"), Command(func() { call(h.OnSave) }))
	Grid(saveBtn, In(toolbar), Row(5), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	v.summaryLbl = Label(Txt("Regions: 0"))
	Grid(v.summaryLbl, Row(row+1), Column(0), Sticky("w"), Padx("0.4m"))
	v.dirtyLbl = Label(Txt(""))
	Grid(v.dirtyLbl, Row(row+1), Column(1), Sticky("w"), Padx("0.4m"))
	v.statusLbl = Label(Txt(""), Borderwidth(1), Relief("ridge"))
	Grid(v.statusLbl, Row(row+1), Column(2), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	return v
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// RenderStage replaces the stage image. The previous Tk photo is disposed so
// off-screen pixel data does not accumulate.
func (v *EditorView) RenderStage(img image.Image) {
	if v == nil || v.stageLabel == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.stageLabel.Configure(Image(v.prevPhoto))
}

// SetRegionSummary updates the region count line.
func (v *EditorView) SetRegionSummary(total, enabled int) {
	if v == nil || v.summaryLbl == nil {
		return
	}
	v.summaryLbl.Configure(Txt(fmt.Sprintf("Regions: %d (%d enabled)", total, enabled)))
}

// SetDirty toggles the unsaved-changes marker.
func (v *EditorView) SetDirty(dirty bool) {
	if v == nil || v.dirtyLbl == nil {
		return
	}
	if dirty {
		v.dirtyLbl.Configure(Txt("Unsaved changes"))
		return
	}
	v.dirtyLbl.Configure(Txt(""))
}

// ShowStatus displays a transient status line under the stage.
func (v *EditorView) ShowStatus(msg string) {
	if v == nil || v.statusLbl == nil {
		return
	}
	v.statusLbl.Configure(Txt(msg))
}
