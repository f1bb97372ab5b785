package roi

import "math"

// Mapper converts rectangles between original-image pixel space and the stage
// (rendered preview) pixel space. It is a pure value; build a fresh one
// whenever the source screenshot or the stage size changes, since stale scale
// factors silently corrupt persisted coordinates.
type Mapper struct {
	ImageW int
	ImageH int
	StageW int
	StageH int
}

// NewMapper returns a mapper for the given image and stage dimensions.
func NewMapper(imageW, imageH, stageW, stageH int) Mapper {
	return Mapper{ImageW: imageW, ImageH: imageH, StageW: stageW, StageH: stageH}
}

// Valid reports whether both spaces have positive dimensions.
func (m Mapper) Valid() bool {
	return m.ImageW > 0 && m.ImageH > 0 && m.StageW > 0 && m.StageH > 0
}

// ToStage scales an original-image rectangle down to stage pixels.
func (m Mapper) ToStage(r Rect) Rect {
	if !m.Valid() {
		return r
	}
	sx := float64(m.StageW) / float64(m.ImageW)
	sy := float64(m.StageH) / float64(m.ImageH)
	return scaleRect(r, sx, sy)
}

// ToOriginal scales a stage rectangle up to original-image pixels, rounding to
// integers. This is the only representation ever persisted.
func (m Mapper) ToOriginal(r Rect) Rect {
	if !m.Valid() {
		return r
	}
	sx := float64(m.ImageW) / float64(m.StageW)
	sy := float64(m.ImageH) / float64(m.StageH)
	return scaleRect(r, sx, sy)
}

func scaleRect(r Rect, sx, sy float64) Rect {
	return Rect{
		X:      int(math.Round(float64(r.X) * sx)),
		Y:      int(math.Round(float64(r.Y) * sy)),
		Width:  int(math.Round(float64(r.Width) * sx)),
		Height: int(math.Round(float64(r.Height) * sy)),
	}
}

// FitStage computes the largest stage size that fits within maxW x maxH while
// preserving the image aspect ratio. Images already within the box keep their
// natural size.
func FitStage(imageW, imageH, maxW, maxH int) (w, h int) {
	if imageW <= 0 || imageH <= 0 {
		return 0, 0
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if imageW <= maxW && imageH <= maxH {
		return imageW, imageH
	}
	ratioW := float64(maxW) / float64(imageW)
	ratioH := float64(maxH) / float64(imageH)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	w = int(float64(imageW)*ratio + 0.5)
	h = int(float64(imageH)*ratio + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
