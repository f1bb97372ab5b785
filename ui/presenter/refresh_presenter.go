package presenter

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/ui/model"
)

// QueueBackend narrows the backend client surface used by the refresh loop.
type QueueBackend interface {
	ListDetections(ctx context.Context, cameraID string, limit int) ([]detection.Detection, error)
	Detection(ctx context.Context, id string) (detection.Detection, error)
}

// QueueView renders the detection queue for the selected camera.
type QueueView interface {
	SetQueue(ds []detection.Detection)
	SetPending(n int)
}

// RefreshPresenter keeps the detection queue current: manual refreshes plus a
// background poll ticker. While the review modal is open, each cycle also
// re-fetches the displayed record so pipeline progress reaches the modal.
// Fetches run off the UI thread; only the model and view application is
// posted back, so a slow backend never stalls the event loop.
type RefreshPresenter struct {
	Model    *model.QueueModel
	Review   *ReviewPresenter
	Backend  QueueBackend
	View     QueueView
	Logger   *slog.Logger
	CameraID func() string
	Limit    int
	// Post marshals a callback onto the UI thread. The fetch goroutine must
	// never touch models or views directly.
	Post func(func())

	// spawn runs a fetch off the UI thread; overridable so tests stay
	// synchronous.
	spawn func(func())

	interval time.Duration
	running  atomic.Bool
	fetching atomic.Bool
	done     chan struct{}
}

func NewRefreshPresenter(m *model.QueueModel, rev *ReviewPresenter, backend QueueBackend, view QueueView, logger *slog.Logger, cameraID func() string, limit int, interval time.Duration, post func(func())) *RefreshPresenter {
	if cameraID == nil {
		cameraID = func() string { return "" }
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &RefreshPresenter{
		Model:    m,
		Review:   rev,
		Backend:  backend,
		View:     view,
		Logger:   logger,
		CameraID: cameraID,
		Limit:    limit,
		Post:     post,
		spawn:    func(fn func()) { go fn() },
		interval: interval,
	}
}

// Start launches the background poll loop. Idempotent.
func (p *RefreshPresenter) Start() {
	if p == nil || p.interval <= 0 {
		return
	}
	if p.running.Load() {
		return
	}
	p.done = make(chan struct{})
	p.running.Store(true)
	go p.loop()
}

// Stop halts the poll loop. Idempotent.
func (p *RefreshPresenter) Stop() {
	if p == nil || !p.running.Load() {
		return
	}
	close(p.done)
	p.running.Store(false)
}

func (p *RefreshPresenter) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// RefreshNow only snapshots state and spawns the fetch, so
			// the posted callback returns immediately.
			p.Post(p.RefreshNow)
		case <-p.done:
			return
		}
	}
}

// RefreshNow snapshots the selected camera and any open modal record on the
// UI thread, then fetches in the background. A cycle that would overlap a
// fetch still in flight is skipped; the next tick catches up.
func (p *RefreshPresenter) RefreshNow() {
	if p == nil || p.Model == nil || p.Backend == nil {
		return
	}
	cameraID := p.CameraID()
	if cameraID == "" {
		return
	}
	var modalID string
	if p.Review != nil && p.Review.Model != nil {
		if cur, ok := p.Review.Model.Current(); ok {
			modalID = cur.ID
		}
	}
	if !p.fetching.CompareAndSwap(false, true) {
		return
	}
	p.spawn(func() { p.fetch(cameraID, modalID) })
}

func (p *RefreshPresenter) fetch(cameraID, modalID string) {
	defer p.fetching.Store(false)
	ds, err := p.Backend.ListDetections(context.Background(), cameraID, p.Limit)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Error("detection refresh failed", "camera", cameraID, "error", err)
		}
		return
	}
	var modal detection.Detection
	var haveModal bool
	if modalID != "" {
		// The queue list may be filtered or truncated, so the open modal's
		// record is read individually.
		d, err := p.Backend.Detection(context.Background(), modalID)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warn("modal detection refresh failed", "detection", modalID, "error", err)
			}
		} else {
			modal, haveModal = d, true
		}
	}
	p.Post(func() { p.apply(cameraID, ds, modal, haveModal) })
}

// apply runs on the UI thread. Results for a camera the operator has since
// switched away from are dropped.
func (p *RefreshPresenter) apply(cameraID string, ds []detection.Detection, modal detection.Detection, haveModal bool) {
	if p.CameraID() != cameraID {
		return
	}
	p.Model.Set(ds)
	if p.View != nil {
		p.View.SetQueue(p.Model.List())
		p.View.SetPending(p.Model.PendingCount())
	}
	if !haveModal || p.Review == nil || p.Review.Model == nil {
		return
	}
	if cur, ok := p.Review.Model.Current(); ok && cur.ID == modal.ID {
		p.Review.Refresh(modal)
	}
}
