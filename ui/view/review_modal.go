package view

import (
	"fmt"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ReviewHandlers groups the presenter callbacks wired to the review modal.
type ReviewHandlers struct {
	OnAccept func()
	OnFlag   func()
	OnReject func()
	OnClose  func()
}

// ReviewModal shows one detection for operator review in a toplevel window.
// The window is created on Show and destroyed on Hide; a second Show while
// open reuses the existing window.
type ReviewModal struct {
	handlers ReviewHandlers

	win         *ToplevelWidget
	categoryLbl *LabelWidget
	descLbl     *LabelWidget
	weightsLbl  *LabelWidget
	statusLbl   *LabelWidget
	acceptBtn   *ButtonWidget
	flagBtn     *ButtonWidget
	rejectBtn   *ButtonWidget
}

func NewReviewModal(h ReviewHandlers) *ReviewModal {
	return &ReviewModal{handlers: h}
}

// Show opens the modal for a detection, building the window on first use.
func (v *ReviewModal) Show(d detection.Detection) {
	if v == nil {
		return
	}
	if v.win == nil {
		v.build()
	}
	v.Refresh(d)
}

func (v *ReviewModal) build() {
	win := App.Toplevel(Borderwidth(2), Background(theme.ColorSurface))
	win.WmTitle("Review Detection")
	WmAttributes(win.Window, "-topmost", 1)
	v.win = win

	v.categoryLbl = win.Label(Txt(""), Borderwidth(0))
	Grid(v.categoryLbl, Row(0), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	v.descLbl = win.Label(Txt(""))
	Grid(v.descLbl, Row(1), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	v.weightsLbl = win.Label(Txt(""))
	Grid(v.weightsLbl, Row(2), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	v.statusLbl = win.Label(Txt(""), Borderwidth(1), Relief("ridge"))
	Grid(v.statusLbl, Row(3), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	v.acceptBtn = win.Button(Txt("Accept [A]"), Command(func() { call(v.handlers.OnAccept) }))
	Grid(v.acceptBtn, Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	v.flagBtn = win.Button(Txt("Revise [R]"), Command(func() { call(v.handlers.OnFlag) }))
	Grid(v.flagBtn, Row(4), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	v.rejectBtn = win.Button(Txt("Reject [C]"), Command(func() { call(v.handlers.OnReject) }))
	Grid(v.rejectBtn, Row(4), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.3m"))

	Bind(win, "<Key-a>", Command(func() { call(v.handlers.OnAccept) }))
	Bind(win, "<Key-r>", Command(func() { call(v.handlers.OnFlag) }))
	Bind(win, "<Key-c>", Command(func() { call(v.handlers.OnReject) }))
	Bind(win, "<Escape>", Command(func() { call(v.handlers.OnClose) }))
}

// Refresh updates the displayed record fields in place.
func (v *ReviewModal) Refresh(d detection.Detection) {
	if v == nil || v.win == nil {
		return
	}
	category := d.Category
	if category == "" {
		category = "Unclassified"
	}
	v.categoryLbl.Configure(Txt("Category: " + category))
	v.descLbl.Configure(Txt(d.Description))
	v.weightsLbl.Configure(Txt(formatWeights(d)))
}

// Hide destroys the modal window.
func (v *ReviewModal) Hide() {
	if v == nil || v.win == nil {
		return
	}
	Destroy(v.win)
	v.win = nil
}

// SetStatus renders the processing status line with its tone color.
func (v *ReviewModal) SetStatus(sd detection.StatusDisplay) {
	if v == nil || v.statusLbl == nil || v.win == nil {
		return
	}
	label := sd.Label
	if sd.Spinner {
		label += " ..."
	}
	v.statusLbl.Configure(Txt(label), Background(theme.ToneColor(sd.Tone)), Foreground("white"))
}

// ShowError paints a failure notice into the status line. The next status
// push from a poll refresh overwrites it.
func (v *ReviewModal) ShowError(msg string) {
	if v == nil || v.statusLbl == nil || v.win == nil {
		return
	}
	v.statusLbl.Configure(Txt(msg), Background(theme.ColorDanger), Foreground("white"))
}

// SetActionsEnabled toggles the verdict buttons.
func (v *ReviewModal) SetActionsEnabled(enabled bool) {
	if v == nil || v.win == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, b := range []*ButtonWidget{v.acceptBtn, v.flagBtn, v.rejectBtn} {
		if b != nil {
			b.Configure(State(state))
		}
	}
}

// formatWeights renders the progressive weight fields; absent values show as
// pending.
func formatWeights(d detection.Detection) string {
	initial, final := "pending", "pending"
	if d.InitialWeight != nil {
		initial = fmt.Sprintf("%.1f g", *d.InitialWeight)
	}
	if d.FinalWeight != nil {
		final = fmt.Sprintf("%.1f g", *d.FinalWeight)
	}
	return fmt.Sprintf("Initial: %s  Final: %s", initial, final)
}
