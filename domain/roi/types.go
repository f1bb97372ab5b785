package roi

// Kind classifies what the camera pipeline does with a region:
// motion gating, food classification crop, or OCR scale readout crop.
type Kind int

const (
	KindMotion Kind = iota
	KindFood
	KindOCR
)

func (k Kind) String() string {
	switch k {
	case KindMotion:
		return "motion"
	case KindFood:
		return "food"
	case KindOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// ParseKind maps the wire representation back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "motion":
		return KindMotion, true
	case "food":
		return KindFood, true
	case "ocr":
		return KindOCR, true
	default:
		return 0, false
	}
}

// Rect is an axis-aligned rectangle with a top-left origin. Which coordinate
// space it lives in (stage pixels vs original image pixels) is decided by the
// caller; Mapper converts between the two.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromPoints normalizes two arbitrary corner points into a rectangle with
// non-negative width and height.
func RectFromPoints(x0, y0, x1, y1 int) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Region is one configured rectangle of interest.
type Region struct {
	ID      string
	Rect    Rect
	Enabled bool
	Kind    Kind
}
