package view

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/platewatch/waste-console/config"
	"github.com/platewatch/waste-console/domain/detection"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootHandlers groups the presenter callbacks wired to the top-level layout.
type RootHandlers struct {
	OnCameraChanged func(id string)
	OnRefresh       func()
	OnOpenDetection func(id string)
	OnExit          func()
}

// RootView composes the top-level application layout: the camera selector and
// refresh controls on top, the detection queue on the right. The ROI editor
// occupies the rows returned by Build.
type RootView struct {
	logger   *slog.Logger
	handlers RootHandlers
	cameras  []config.Camera

	CameraSelect *TComboboxWidget
	pendingLbl   *LabelWidget
	auditLbl     *LabelWidget
	queueFrame   *FrameWidget
	queueRow     int
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout and returns the grid row where the editor view
// should be placed.
func (rv *RootView) Build(cameras []config.Camera, selected string, h RootHandlers) int {
	if rv == nil {
		return 0
	}
	rv.handlers = h
	rv.cameras = cameras

	names := make([]string, len(cameras))
	current := 0
	for i, c := range cameras {
		names[i] = c.Label()
		if c.ID == selected {
			current = i
		}
	}
	if len(names) == 0 {
		names = []string{"<no cameras>"}
	}
	rv.CameraSelect = TCombobox(Values(names), Width(30))
	Grid(rv.CameraSelect, Row(0), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	rv.CameraSelect.Current(current)
	Bind(rv.CameraSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.handlers.OnCameraChanged == nil {
			return
		}
		id := rv.SelectedCameraID()
		if id == "" {
			if rv.logger != nil {
				rv.logger.Error("camera selection did not resolve to an id")
			}
			return
		}
		rv.handlers.OnCameraChanged(id)
	}))

	refreshBtn := Button(Txt("Refresh"), Command(func() { call(h.OnRefresh) }))
	Grid(refreshBtn, Row(0), Column(1), Sticky("w"), Padx("0.2m"), Pady("0.3m"))
	rv.pendingLbl = Label(Txt("Pending: 0"), Borderwidth(1), Relief("ridge"))
	Grid(rv.pendingLbl, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.auditLbl = Label(Txt(""))
	Grid(rv.auditLbl, Row(0), Column(3), Sticky("w"), Padx("0.4m"))
	exitBtn := Button(Txt("Exit"), Command(func() { call(h.OnExit) }))
	Grid(exitBtn, Row(0), Column(4), Sticky("e"), Padx("0.2m"), Pady("0.3m"))

	rv.queueRow = 1
	rv.queueFrame = Frame()
	Grid(rv.queueFrame, Row(rv.queueRow), Column(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))

	return 1
}

// SelectedCameraID resolves the combobox selection to a camera id.
func (rv *RootView) SelectedCameraID() string {
	if rv == nil || rv.CameraSelect == nil {
		return ""
	}
	idx, err := strconv.Atoi(rv.CameraSelect.Current(nil))
	if err != nil || idx < 0 || idx >= len(rv.cameras) {
		return ""
	}
	return rv.cameras[idx].ID
}

// SetQueue rebuilds the queue panel, one row per detection. The whole frame
// is replaced; Tk reclaims the destroyed child widgets.
func (rv *RootView) SetQueue(ds []detection.Detection) {
	if rv == nil || rv.queueFrame == nil {
		return
	}
	Destroy(rv.queueFrame)
	rv.queueFrame = Frame()
	Grid(rv.queueFrame, Row(rv.queueRow), Column(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))

	for i, d := range ds {
		id := d.ID
		btn := Button(Txt(queueLine(d)), Command(func() {
			if rv.handlers.OnOpenDetection != nil {
				rv.handlers.OnOpenDetection(id)
			}
		}))
		Grid(btn, In(rv.queueFrame), Row(i), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.1m"))
	}
}

// SetPending updates the awaiting-review counter.
func (rv *RootView) SetPending(n int) {
	if rv == nil || rv.pendingLbl == nil {
		return
	}
	rv.pendingLbl.Configure(Txt(fmt.Sprintf("Pending: %d", n)))
}

// SetAuditSummary shows the local review-history line, e.g. on startup.
func (rv *RootView) SetAuditSummary(text string) {
	if rv == nil || rv.auditLbl == nil {
		return
	}
	rv.auditLbl.Configure(Txt(text))
}

// queueLine renders one queue row: detection time, category and the derived
// pipeline status.
func queueLine(d detection.Detection) string {
	category := d.Category
	if category == "" {
		category = "..."
	}
	sd := detection.Display(detection.DeriveStatus(d))
	return fmt.Sprintf("%s  %-12s  %s", d.DetectedAt.Format("15:04:05"), category, sd.Label)
}
