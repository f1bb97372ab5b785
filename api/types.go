package api

import (
	"time"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/domain/roi"
)

// RegionConfig is the persisted ROI representation: integer pixels in
// original-image space. Stage-space coordinates must never appear here.
type RegionConfig struct {
	ID      string `json:"id,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Enabled bool   `json:"enabled"`
	Type    string `json:"type"`
}

// RegionConfigs converts committed regions (already in original-image space)
// to the wire representation, preserving collection order.
func RegionConfigs(regions []roi.Region) []RegionConfig {
	out := make([]RegionConfig, len(regions))
	for i, r := range regions {
		out[i] = RegionConfig{
			ID:      r.ID,
			X:       r.Rect.X,
			Y:       r.Rect.Y,
			Width:   r.Rect.Width,
			Height:  r.Rect.Height,
			Enabled: r.Enabled,
			Type:    r.Kind.String(),
		}
	}
	return out
}

// Regions converts wire configs back to domain regions. Configs with an
// unknown type default to motion rather than being dropped.
func Regions(configs []RegionConfig) []roi.Region {
	out := make([]roi.Region, len(configs))
	for i, c := range configs {
		kind, ok := roi.ParseKind(c.Type)
		if !ok {
			kind = roi.KindMotion
		}
		out[i] = roi.Region{
			ID:      c.ID,
			Rect:    roi.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height},
			Enabled: c.Enabled,
			Kind:    kind,
		}
	}
	return out
}

// detectionWire mirrors the backend detection record.
type detectionWire struct {
	ID            string   `json:"id"`
	CameraID      string   `json:"camera_id"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	InitialWeight *float64 `json:"initial_weight"`
	FinalWeight   *float64 `json:"final_weight"`
	Status        string   `json:"status,omitempty"`
	ReviewStatus  string   `json:"review_status,omitempty"`
	DetectedAt    string   `json:"detected_at,omitempty"`
}

func (w detectionWire) toDomain() detection.Detection {
	d := detection.Detection{
		ID:             w.ID,
		CameraID:       w.CameraID,
		Category:       w.Category,
		Description:    w.Description,
		InitialWeight:  w.InitialWeight,
		FinalWeight:    w.FinalWeight,
		PipelineStatus: w.Status,
		ReviewStatus:   detection.ReviewStatus(w.ReviewStatus),
	}
	if w.DetectedAt != "" {
		if ts, err := time.Parse(time.RFC3339, w.DetectedAt); err == nil {
			d.DetectedAt = ts
		}
	}
	return d
}

// reviewUpdateWire is the narrow review write accepted by the backend.
type reviewUpdateWire struct {
	ReviewStatus string `json:"review_status"`
	ReviewNotes  string `json:"review_notes"`
}
