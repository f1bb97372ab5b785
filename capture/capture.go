// Package capture grabs pixels from the local screen. Used for the console
// snapshot feature; camera frames always come from the backend.
package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRect captures a screen region, e.g. the console window bounds.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, err
	}
	return img, nil
}
