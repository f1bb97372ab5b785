package images

import (
	"image"
	"image/color"

	"github.com/platewatch/waste-console/domain/roi"
)

// Region outline colors by kind, dimmed variant for disabled regions.
var (
	colorMotion   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	colorFood     = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	colorOCR      = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorDisabled = color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	colorDraft    = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	colorHandle   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const (
	outlineWidth = 2
	handleSize   = 6
)

// Overlay describes what to draw on top of the scaled frame. All rectangles
// are stage-space.
type Overlay struct {
	Regions    []roi.Region
	Draft      *roi.Rect
	SelectedID string
}

// KindColor returns the outline color used for a region kind.
func KindColor(k roi.Kind) color.RGBA {
	switch k {
	case roi.KindFood:
		return colorFood
	case roi.KindOCR:
		return colorOCR
	default:
		return colorMotion
	}
}

// RenderStage scales the source frame to the stage size and composites the
// region overlay onto it. The result is what the operator sees and also what
// gets uploaded as the ROI preview image.
func RenderStage(frame image.Image, stageW, stageH int, ov Overlay) *image.RGBA {
	var dst *image.RGBA
	if frame != nil {
		dst = ScaleTo(frame, stageW, stageH)
	}
	if dst == nil {
		if stageW < 1 || stageH < 1 {
			return nil
		}
		dst = image.NewRGBA(image.Rect(0, 0, stageW, stageH))
	}
	for _, r := range ov.Regions {
		c := KindColor(r.Kind)
		if !r.Enabled {
			c = colorDisabled
		}
		strokeRect(dst, r.Rect, c, outlineWidth)
		if r.ID == ov.SelectedID {
			drawHandles(dst, r.Rect)
		}
	}
	if ov.Draft != nil && !ov.Draft.Empty() {
		strokeRect(dst, *ov.Draft, colorDraft, 1)
	}
	return dst
}

// strokeRect draws a rectangle outline clipped to the image bounds.
func strokeRect(dst *image.RGBA, r roi.Rect, c color.RGBA, width int) {
	for w := 0; w < width; w++ {
		x0, y0 := r.X+w, r.Y+w
		x1, y1 := r.X+r.Width-1-w, r.Y+r.Height-1-w
		if x1 <= x0 || y1 <= y0 {
			return
		}
		for x := x0; x <= x1; x++ {
			setClipped(dst, x, y0, c)
			setClipped(dst, x, y1, c)
		}
		for y := y0; y <= y1; y++ {
			setClipped(dst, x0, y, c)
			setClipped(dst, x1, y, c)
		}
	}
}

// drawHandles fills small squares on the four corners of a selected region.
func drawHandles(dst *image.RGBA, r roi.Rect) {
	corners := [][2]int{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
	half := handleSize / 2
	for _, c := range corners {
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				setClipped(dst, c[0]+dx, c[1]+dy, colorHandle)
			}
		}
	}
}

func setClipped(dst *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetRGBA(x, y, c)
	}
}
