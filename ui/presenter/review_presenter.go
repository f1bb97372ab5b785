package presenter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/domain/review"
	"github.com/platewatch/waste-console/ui/model"
)

// ReviewSubmitter narrows the dispatcher contract needed by the presenter.
type ReviewSubmitter interface {
	Submit(ctx context.Context, detectionID string, a review.Action) error
	Processing() bool
}

// Scheduler arms a delayed callback on the UI thread and returns a cancel
// function. Backed by Tcl after in production, by a fake in tests.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// ReviewView describes the modal surface updated by the presenter.
type ReviewView interface {
	Show(d detection.Detection)
	Refresh(d detection.Detection)
	Hide()
	SetStatus(sd detection.StatusDisplay)
	SetActionsEnabled(bool)
	ShowError(msg string)
}

// ReviewPresenter drives the review modal: status display, action buttons,
// keyboard shortcuts and the auto-close timer for terminal detections.
type ReviewPresenter struct {
	Model      *model.ReviewModel
	Dispatcher ReviewSubmitter
	View       ReviewView
	Scheduler  Scheduler
	Logger     *slog.Logger

	// post marshals submit results back onto the UI thread; spawn runs the
	// blocking dispatch off it. Overridable so tests stay synchronous.
	post  func(func())
	spawn func(func())

	cancelTimer func()
	armedGen    uint64
	armedStatus detection.ProcessingStatus
}

func NewReviewPresenter(m *model.ReviewModel, dispatcher ReviewSubmitter, view ReviewView, scheduler Scheduler, logger *slog.Logger, post func(func())) *ReviewPresenter {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &ReviewPresenter{
		Model: m, Dispatcher: dispatcher, View: view, Scheduler: scheduler, Logger: logger,
		post:  post,
		spawn: func(fn func()) { go fn() },
	}
}

// Open shows the modal for a detection.
func (p *ReviewPresenter) Open(d detection.Detection) {
	if p == nil || p.Model == nil {
		return
	}
	p.dropTimer()
	gen := p.Model.Open(d)
	if p.View != nil {
		p.View.Show(d)
	}
	p.apply(d, gen)
}

// Refresh pushes an updated record into an open modal, e.g. after a poll
// cycle observed pipeline progress. Ignored while closed.
func (p *ReviewPresenter) Refresh(d detection.Detection) {
	if p == nil || p.Model == nil || !p.Model.IsOpen() {
		return
	}
	prev := p.Model.Generation()
	gen := p.Model.Update(d)
	if gen != prev {
		// Different record swapped in; the old timer is stale.
		p.dropTimer()
	}
	if p.View != nil {
		p.View.Refresh(d)
	}
	p.apply(d, gen)
}

// Close hides the modal and drops any pending auto-close timer.
func (p *ReviewPresenter) Close() {
	if p == nil || p.Model == nil {
		return
	}
	p.dropTimer()
	p.Model.Close()
	if p.View != nil {
		p.View.Hide()
	}
}

// SubmitAction sends the reviewer verdict off the UI thread. Repeat presses
// while a submission is in flight are swallowed; the auto-close timer keeps
// running. Any other failure is shown in the modal, which stays open for
// retry.
func (p *ReviewPresenter) SubmitAction(a review.Action) {
	if p == nil || p.Model == nil || p.Dispatcher == nil {
		return
	}
	d, ok := p.Model.Current()
	if !ok {
		return
	}
	if !detection.DeriveStatus(d).Terminal() {
		// Buttons are disabled while the pipeline runs; shortcut paths
		// land here and get the same treatment.
		return
	}
	p.spawn(func() {
		err := p.Dispatcher.Submit(context.Background(), d.ID, a)
		p.post(func() {
			if errors.Is(err, review.ErrInFlight) {
				return
			}
			if err != nil {
				if p.Logger != nil {
					p.Logger.Error("review submit failed", "detection", d.ID, "action", a.String(), "error", err)
				}
				if p.View != nil {
					p.View.ShowError("Submit failed, check backend and retry")
				}
				return
			}
			if cur, ok := p.Model.Current(); ok && cur.ID == d.ID {
				p.Close()
			}
		})
	})
}

// Accept, Flag and Reject are the keyboard shortcut entry points.
func (p *ReviewPresenter) Accept() { p.SubmitAction(review.ActionAccept) }
func (p *ReviewPresenter) Flag()   { p.SubmitAction(review.ActionReview) }
func (p *ReviewPresenter) Reject() { p.SubmitAction(review.ActionCancel) }

// apply pushes the derived status to the view and arms or drops the
// auto-close timer for this showing.
func (p *ReviewPresenter) apply(d detection.Detection, gen uint64) {
	status := detection.DeriveStatus(d)
	if detection.StatusMismatch(d) && p.Logger != nil {
		p.Logger.Debug("pipeline status disagrees with record fields", "detection", d.ID, "status", d.PipelineStatus)
	}
	if p.View != nil {
		p.View.SetStatus(detection.Display(status))
		p.View.SetActionsEnabled(status.Terminal())
	}
	delay, ok := detection.AutoCloseDelay(status, d)
	if !ok {
		p.dropTimer()
		return
	}
	if p.cancelTimer != nil && p.armedGen == gen && p.armedStatus == status {
		// Same showing, same terminal status: a poll refresh must not
		// restart the countdown.
		return
	}
	p.armTimer(delay, gen)
	p.armedGen = gen
	p.armedStatus = status
}

// armTimer schedules an auto-close bound to a model generation. The check on
// fire makes a stale timer a no-op even if cancellation raced.
func (p *ReviewPresenter) armTimer(delay time.Duration, gen uint64) {
	p.dropTimer()
	if p.Scheduler == nil {
		return
	}
	p.cancelTimer = p.Scheduler.Schedule(delay, func() {
		if p.Model == nil || !p.Model.IsOpen() || p.Model.Generation() != gen {
			return
		}
		p.Close()
	})
}

func (p *ReviewPresenter) dropTimer() {
	if p.cancelTimer != nil {
		p.cancelTimer()
		p.cancelTimer = nil
	}
}
