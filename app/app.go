package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/platewatch/waste-console/capture"
	"github.com/platewatch/waste-console/config"
	"github.com/platewatch/waste-console/debug"
	"github.com/platewatch/waste-console/domain/roi"
	"github.com/platewatch/waste-console/ui/images"
	"github.com/platewatch/waste-console/ui/presenter"
	"github.com/platewatch/waste-console/ui/theme"
	"github.com/platewatch/waste-console/ui/view"
)

const tick = 100 * time.Millisecond

type app struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	container *AppContainer
	afterID   string

	// uiQueue marshals callbacks from background goroutines onto the Tk
	// event loop; the update tick drains it.
	uiQueue chan func()

	selectedCamera string
}

// NewApp creates the main window shell.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{cfg: cfg, cfgPath: cfgPath, logger: logger, uiQueue: make(chan func(), 16)}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start wires the container, builds the widgets and enters the Tk main loop.
func (a *app) Start() {
	roster, err := config.LoadRoster(a.cfg.CamerasPath)
	if err != nil {
		a.logger.Error("camera roster load failed", "path", a.cfg.CamerasPath, "error", err)
	}
	c := BuildContainer(a.cfg, roster, a.logger)
	a.container = c

	var auditSummary string
	if c.Audit != nil {
		if recent, err := c.Audit.Recent(context.Background(), 5); err == nil && len(recent) > 0 {
			a.logger.Info("resuming with audit history", "recent", len(recent), "last_action", recent[0].Action, "last_detection", recent[0].DetectionID)
			auditSummary = fmt.Sprintf("Last review: %s %s", recent[0].Action, recent[0].At.Format("Jan 2 15:04"))
		}
	}

	theme.InitStyles()

	a.selectedCamera = a.cfg.LastCameraID
	if _, ok := roster.Camera(a.selectedCamera); !ok {
		a.selectedCamera = ""
		if len(roster.Cameras) > 0 {
			a.selectedCamera = roster.Cameras[0].ID
		}
	}

	c.RootView = view.NewRootView(a.logger)
	editorRow := c.RootView.Build(roster.Cameras, a.selectedCamera, view.RootHandlers{
		OnCameraChanged: a.selectCamera,
		OnRefresh: func() {
			if c.RefreshPresenter != nil {
				c.RefreshPresenter.RefreshNow()
			}
		},
		OnOpenDetection: a.openDetection,
		OnExit:          a.exitHandler,
	})
	c.RootView.SetAuditSummary(auditSummary)

	c.EditorView = view.NewEditorView(editorRow, view.EditorHandlers{
		OnPointerDown: func(x, y int) { c.EditorPresenter.PointerDown(x, y) },
		OnPointerMove: func(x, y int) { c.EditorPresenter.PointerMove(x, y) },
		OnPointerUp:   func(x, y int) { c.EditorPresenter.PointerUp(x, y) },
		OnCancel:      func() { c.EditorPresenter.CancelGesture() },
		OnKindChanged: func(k roi.Kind) { c.EditorPresenter.SetKind(k) },
		OnToggle:      func() { c.EditorPresenter.ToggleSelected() },
		OnDelete:      func() { c.EditorPresenter.DeleteSelected() },
		OnClear:       func() { c.EditorPresenter.ClearAll() },
		OnSave:        func() { c.EditorPresenter.Save() },
		OnRefresh:     func() { c.EditorPresenter.RefreshFrame() },
	})
	c.EditorPresenter = presenter.NewEditorPresenter(c.Editor, c.Client, c.EditorView, a.logger, a.cfg.StageMaxWidth, a.cfg.StageMaxHeight, a.post)

	c.ReviewModal = view.NewReviewModal(view.ReviewHandlers{
		OnAccept: func() { c.ReviewPresenter.Accept() },
		OnFlag:   func() { c.ReviewPresenter.Flag() },
		OnReject: func() { c.ReviewPresenter.Reject() },
		OnClose:  func() { c.ReviewPresenter.Close() },
	})
	c.ReviewPresenter = presenter.NewReviewPresenter(c.Review, c.Dispatcher, c.ReviewModal, tclScheduler{}, a.logger, a.post)

	c.RefreshPresenter = presenter.NewRefreshPresenter(
		c.Queue, c.ReviewPresenter, c.Client, c.RootView, a.logger,
		func() string { return a.selectedCamera },
		a.cfg.QueueLimit, a.cfg.RefreshInterval(), a.post,
	)

	Bind(App, "<F12>", Command(a.saveConsoleSnapshot))

	if a.cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, a.logger)
		debug.StartMemLogger(5*time.Second, a.logger)
	}

	if a.selectedCamera != "" {
		c.EditorPresenter.Open(a.selectedCamera)
		c.RefreshPresenter.RefreshNow()
	}
	c.RefreshPresenter.Start()

	a.scheduleUpdate()
	App.Wait()
}

// selectCamera switches the console to another camera: new editor session
// plus a fresh queue fetch.
func (a *app) selectCamera(id string) {
	if id == "" || id == a.selectedCamera {
		return
	}
	a.selectedCamera = id
	a.container.ReviewPresenter.Close()
	a.container.EditorPresenter.Open(id)
	a.container.RefreshPresenter.RefreshNow()
}

// openDetection shows the review modal for a queued detection.
func (a *app) openDetection(id string) {
	d, ok := a.container.Queue.Get(id)
	if !ok {
		return
	}
	a.container.ReviewPresenter.Open(d)
}

// post enqueues a callback for the next UI tick. Action results must not be
// lost, so an overflowing queue falls back to a goroutine that waits for the
// drain instead of dropping.
func (a *app) post(fn func()) {
	select {
	case a.uiQueue <- fn:
	default:
		go func() { a.uiQueue <- fn }()
	}
}

func (a *app) update() {
	for {
		select {
		case fn := <-a.uiQueue:
			fn()
		default:
			a.scheduleUpdate()
			return
		}
	}
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

// saveConsoleSnapshot grabs the console window region and writes it next to
// the binary, for support tickets.
func (a *app) saveConsoleSnapshot() {
	rect, ok := parseGeometry(WmGeometry(App))
	if !ok {
		return
	}
	img, err := capture.GrabRect(rect)
	if err != nil {
		a.logger.Warn("console snapshot failed", "error", err)
		return
	}
	name := fmt.Sprintf("console-%s.png", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(name, images.EncodePNG(img), 0o644); err != nil {
		a.logger.Warn("console snapshot write failed", "file", name, "error", err)
		return
	}
	a.logger.Info("console snapshot saved", "file", name)
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.cfg != nil && a.cfgPath != "" {
		a.cfg.LastCameraID = a.selectedCamera
		_ = a.cfg.Save(a.cfgPath)
	}
	a.container.Close()
	Destroy(App)
}

// tclScheduler implements presenter.Scheduler on the Tk event loop.
type tclScheduler struct{}

func (tclScheduler) Schedule(d time.Duration, fn func()) func() {
	id := TclAfter(d, fn)
	return func() { TclAfterCancel(id) }
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string into a screen rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
