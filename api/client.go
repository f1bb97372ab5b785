// Package api is the REST client for the food-waste monitoring backend.
// Reads are idempotent; the only writes are the ROI configuration save, the
// best-effort preview upload, and the narrow review-status update. No call
// retries automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	_ "image/jpeg"
	_ "image/png"

	"github.com/platewatch/waste-console/domain/detection"
)

// Client talks to one backend instance. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL. timeout bounds every
// request including body read.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil. Non-2xx responses become errors
// carrying the status and trimmed body.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

// Screenshot is a freshly captured camera frame with its natural dimensions,
// which reinitialize the editor's coordinate mapper.
type Screenshot struct {
	Image  image.Image
	Width  int
	Height int
}

// CaptureScreenshot asks the backend to grab the camera's current frame.
func (c *Client) CaptureScreenshot(ctx context.Context, cameraID string) (Screenshot, error) {
	path := "/api/cameras/" + url.PathEscape(cameraID) + "/screenshot"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return Screenshot{}, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return Screenshot{}, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Screenshot{}, fmt.Errorf("POST %s: %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return Screenshot{}, fmt.Errorf("POST %s: decode image: %w", path, err)
	}
	b := img.Bounds()
	return Screenshot{Image: img, Width: b.Dx(), Height: b.Dy()}, nil
}

// ROIConfig fetches the saved region configuration for a camera.
func (c *Client) ROIConfig(ctx context.Context, cameraID string) ([]RegionConfig, error) {
	var out struct {
		Regions []RegionConfig `json:"regions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/cameras/"+url.PathEscape(cameraID)+"/roi", nil, &out); err != nil {
		return nil, err
	}
	return out.Regions, nil
}

// SaveROIConfig persists the ordered region list. Coordinates must already be
// integer original-image pixels.
func (c *Client) SaveROIConfig(ctx context.Context, cameraID string, regions []RegionConfig) error {
	in := struct {
		Regions []RegionConfig `json:"regions"`
	}{Regions: regions}
	return c.doJSON(ctx, http.MethodPut, "/api/cameras/"+url.PathEscape(cameraID)+"/roi", in, nil)
}

// SaveROIPreview uploads a rendered stage snapshot for operator reference.
// Callers treat failure as a caveat, never as a reason to roll back the
// configuration save.
func (c *Client) SaveROIPreview(ctx context.Context, cameraID string, png []byte) error {
	path := "/api/cameras/" + url.PathEscape(cameraID) + "/roi/preview"
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(png))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "image/png")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("POST %s: %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

// Detection fetches a single detection record.
func (c *Client) Detection(ctx context.Context, id string) (detection.Detection, error) {
	var w detectionWire
	if err := c.doJSON(ctx, http.MethodGet, "/api/detections/"+url.PathEscape(id), nil, &w); err != nil {
		return detection.Detection{}, err
	}
	return w.toDomain(), nil
}

// ListDetections fetches the newest detections for a camera.
func (c *Client) ListDetections(ctx context.Context, cameraID string, limit int) ([]detection.Detection, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("camera_id", cameraID)
	q.Set("limit", strconv.Itoa(limit))
	path := "/api/detections?" + q.Encode()
	var out struct {
		Detections []detectionWire `json:"detections"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	ds := make([]detection.Detection, len(out.Detections))
	for i, w := range out.Detections {
		ds[i] = w.toDomain()
	}
	return ds, nil
}

// UpdateReview writes the reviewer verdict for a detection.
func (c *Client) UpdateReview(ctx context.Context, detectionID string, status detection.ReviewStatus, note string) error {
	in := reviewUpdateWire{ReviewStatus: string(status), ReviewNotes: note}
	return c.doJSON(ctx, http.MethodPatch, "/api/detections/"+url.PathEscape(detectionID)+"/review", in, nil)
}

// EditorData is everything the ROI editor needs to open on a camera.
type EditorData struct {
	Screenshot Screenshot
	Regions    []RegionConfig
}

// OpenEditorData fetches the screenshot and the saved ROI configuration
// concurrently. Both are independent idempotent reads; the first failure
// cancels the other.
func (c *Client) OpenEditorData(ctx context.Context, cameraID string) (EditorData, error) {
	var data EditorData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		shot, err := c.CaptureScreenshot(ctx, cameraID)
		if err != nil {
			return err
		}
		data.Screenshot = shot
		return nil
	})
	g.Go(func() error {
		regions, err := c.ROIConfig(ctx, cameraID)
		if err != nil {
			return err
		}
		data.Regions = regions
		return nil
	})
	if err := g.Wait(); err != nil {
		return EditorData{}, err
	}
	return data, nil
}
