// Package review maps reviewer actions onto backend review-status updates.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/platewatch/waste-console/domain/detection"
)

// Action is a reviewer decision on a detection.
type Action int

const (
	ActionAccept Action = iota
	ActionReview
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionReview:
		return "review"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ReviewStatus maps the action to the backend review-status value.
func (a Action) ReviewStatus() (detection.ReviewStatus, bool) {
	switch a {
	case ActionAccept:
		return detection.ReviewDetectionOK, true
	case ActionReview:
		return detection.ReviewNeedRevision, true
	case ActionCancel:
		return detection.ReviewDetectionRejected, true
	default:
		return "", false
	}
}

// Note returns the fixed audit note submitted alongside the status.
func (a Action) Note() string {
	switch a {
	case ActionAccept:
		return "Accepted from review console"
	case ActionReview:
		return "Flagged for revision from review console"
	case ActionCancel:
		return "Rejected from review console"
	default:
		return ""
	}
}

// ErrInFlight is returned when a submission is attempted while a previous one
// has not finished. Callers treat it as "ignore the input", not as a failure.
var ErrInFlight = errors.New("review submission already in flight")

// Updater sends the review-status update to the backend.
type Updater interface {
	UpdateReview(ctx context.Context, detectionID string, status detection.ReviewStatus, note string) error
}

// Record is one completed review action, kept for the local audit trail.
type Record struct {
	DetectionID string
	Action      string
	Status      detection.ReviewStatus
	Note        string
	At          time.Time
}

// Auditor persists completed review actions. Best-effort: failures are logged
// and never fail the submission.
type Auditor interface {
	Append(ctx context.Context, rec Record) error
}

// Dispatcher performs review submissions with an at-most-one-in-flight
// guarantee per modal instance. The processing flag is checked before
// dispatch and cleared in a defer regardless of outcome.
type Dispatcher struct {
	updater    Updater
	audit      Auditor
	logger     *slog.Logger
	processing atomic.Bool
	now        func() time.Time
}

// NewDispatcher builds a dispatcher. audit may be nil.
func NewDispatcher(updater Updater, audit Auditor, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{updater: updater, audit: audit, logger: logger, now: time.Now}
}

// Processing reports whether a submission is currently in flight.
func (d *Dispatcher) Processing() bool {
	if d == nil {
		return false
	}
	return d.processing.Load()
}

// Submit sends exactly one update request for the action. A call while a
// previous submission is in flight returns ErrInFlight without issuing a
// request. Any other error means the update did not apply and the caller
// should keep its modal open for retry.
func (d *Dispatcher) Submit(ctx context.Context, detectionID string, a Action) error {
	if d == nil || d.updater == nil {
		return errors.New("review dispatcher not configured")
	}
	status, ok := a.ReviewStatus()
	if !ok {
		return fmt.Errorf("unknown review action %d", int(a))
	}
	if !d.processing.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer d.processing.Store(false)

	if err := d.updater.UpdateReview(ctx, detectionID, status, a.Note()); err != nil {
		return fmt.Errorf("update review %s: %w", detectionID, err)
	}
	if d.audit != nil {
		rec := Record{
			DetectionID: detectionID,
			Action:      a.String(),
			Status:      status,
			Note:        a.Note(),
			At:          d.now(),
		}
		if err := d.audit.Append(ctx, rec); err != nil && d.logger != nil {
			d.logger.Warn("review audit append failed", "detection", detectionID, "error", err)
		}
	}
	return nil
}
