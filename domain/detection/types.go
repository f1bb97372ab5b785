// Package detection models backend detection records and the display-only
// processing status derived from how far the AI/OCR pipeline has progressed.
package detection

import "time"

// ReviewStatus is the reviewer verdict stored on the backend.
type ReviewStatus string

const (
	ReviewDetectionOK       ReviewStatus = "DETECTION_OK"
	ReviewNeedRevision      ReviewStatus = "NEED_REVISION"
	ReviewDetectionRejected ReviewStatus = "DETECTION_REJECTED"
	ReviewRevisionApproved  ReviewStatus = "REVISION_APPROVED"
)

// CategoryNoWaste is the backend sentinel for frames classified as containing
// no food waste. Such detections auto-close their review modal quickly.
const CategoryNoWaste = "NO_WASTE"

// analyzingPlaceholder is the literal description the pipeline writes before
// classification has produced anything.
const analyzingPlaceholder = "Analyzing..."

// Detection is a backend-owned record, consumed read-only except for the
// narrow review update. Weight fields are populated progressively by the
// pipeline; nil means not yet produced.
type Detection struct {
	ID            string
	CameraID      string
	Category      string
	Description   string
	InitialWeight *float64
	FinalWeight   *float64
	// PipelineStatus is the backend's explicit processing status, when it
	// chooses to send one. Empty means "derive from the fields".
	PipelineStatus string
	ReviewStatus   ReviewStatus
	DetectedAt     time.Time
}
