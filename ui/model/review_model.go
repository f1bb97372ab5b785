package model

import (
	"github.com/platewatch/waste-console/domain/detection"
)

// ReviewModel tracks the review modal: whether it is open, which detection it
// shows and a generation counter that invalidates stale auto-close timers.
// The generation bumps on every open, close and detection swap so a timer
// armed for one showing can never fire into a later one.
type ReviewModel struct {
	open bool
	det  detection.Detection
	gen  uint64
}

func NewReviewModel() *ReviewModel { return &ReviewModel{} }

// Open shows the modal for a detection and returns the new generation.
func (m *ReviewModel) Open(d detection.Detection) uint64 {
	if m == nil {
		return 0
	}
	m.open = true
	m.det = d
	m.gen++
	return m.gen
}

// Update refreshes the displayed record in place. If the record identity
// changed the generation bumps, otherwise timers armed for this showing stay
// valid. Ignored while closed.
func (m *ReviewModel) Update(d detection.Detection) uint64 {
	if m == nil {
		return 0
	}
	if !m.open {
		return m.gen
	}
	if d.ID != m.det.ID {
		m.gen++
	}
	m.det = d
	return m.gen
}

// Close hides the modal and invalidates any pending timer.
func (m *ReviewModel) Close() {
	if m == nil {
		return
	}
	m.open = false
	m.gen++
}

// IsOpen reports whether the modal is showing.
func (m *ReviewModel) IsOpen() bool {
	if m == nil {
		return false
	}
	return m.open
}

// Current returns the displayed detection while the modal is open.
func (m *ReviewModel) Current() (detection.Detection, bool) {
	if m == nil || !m.open {
		return detection.Detection{}, false
	}
	return m.det, true
}

// Generation returns the current timer generation.
func (m *ReviewModel) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.gen
}
