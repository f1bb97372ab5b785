package model

import (
	"github.com/platewatch/waste-console/domain/detection"
)

// QueueModel holds the most recent detections fetched for the selected
// camera, newest first as the backend returns them. Zero value is usable.
type QueueModel struct {
	detections []detection.Detection
}

func NewQueueModel() *QueueModel { return &QueueModel{} }

// Set replaces the queue with a fresh fetch result.
func (m *QueueModel) Set(ds []detection.Detection) {
	if m == nil {
		return
	}
	m.detections = make([]detection.Detection, len(ds))
	copy(m.detections, ds)
}

// List returns a copy of the queue in display order.
func (m *QueueModel) List() []detection.Detection {
	if m == nil {
		return nil
	}
	out := make([]detection.Detection, len(m.detections))
	copy(out, m.detections)
	return out
}

// Get looks up a queued detection by id.
func (m *QueueModel) Get(id string) (detection.Detection, bool) {
	if m == nil {
		return detection.Detection{}, false
	}
	for _, d := range m.detections {
		if d.ID == id {
			return d, true
		}
	}
	return detection.Detection{}, false
}

// At returns the detection at a display index, for list-row callbacks.
func (m *QueueModel) At(i int) (detection.Detection, bool) {
	if m == nil || i < 0 || i >= len(m.detections) {
		return detection.Detection{}, false
	}
	return m.detections[i], true
}

// Len returns the number of queued detections.
func (m *QueueModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.detections)
}

// PendingCount returns how many queued detections still await a reviewer
// verdict.
func (m *QueueModel) PendingCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, d := range m.detections {
		if d.ReviewStatus == "" {
			n++
		}
	}
	return n
}
