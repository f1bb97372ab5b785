package roi

import "testing"

func TestMapper_RoundTrip(t *testing.T) {
	m := NewMapper(1920, 1080, 800, 450)
	rects := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 240, Y: 240, Width: 480, Height: 360},
		{X: 17, Y: 923, Width: 101, Height: 33},
		{X: 1900, Y: 1060, Width: 20, Height: 20},
	}
	for _, r := range rects {
		got := m.ToOriginal(m.ToStage(r))
		if abs(got.X-r.X) > 3 || abs(got.Y-r.Y) > 3 || abs(got.Width-r.Width) > 3 || abs(got.Height-r.Height) > 3 {
			t.Fatalf("round trip drifted beyond rounding: in=%+v out=%+v", r, got)
		}
	}
}

func TestMapper_DrawGestureExample(t *testing.T) {
	// Image 1920x1080 rendered at 800x450; gesture from (100,100) to (300,250).
	m := NewMapper(1920, 1080, 800, 450)
	stage := RectFromPoints(100, 100, 300, 250)
	got := m.ToOriginal(stage)
	want := Rect{X: 240, Y: 240, Width: 480, Height: 360}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMapper_InvalidDimensions(t *testing.T) {
	m := NewMapper(0, 1080, 800, 450)
	if m.Valid() {
		t.Fatal("mapper with zero image width must be invalid")
	}
	r := Rect{X: 10, Y: 10, Width: 50, Height: 50}
	if got := m.ToOriginal(r); got != r {
		t.Fatalf("invalid mapper must pass rects through, got %+v", got)
	}
}

func TestFitStage(t *testing.T) {
	cases := []struct {
		name                   string
		imgW, imgH, maxW, maxH int
		wantW, wantH           int
	}{
		{"wide fits by width", 1920, 1080, 800, 600, 800, 450},
		{"tall fits by height", 1080, 1920, 800, 600, 338, 600},
		{"already fits", 640, 360, 800, 600, 640, 360},
		{"degenerate image", 0, 0, 800, 600, 0, 0},
	}
	for _, tc := range cases {
		w, h := FitStage(tc.imgW, tc.imgH, tc.maxW, tc.maxH)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("%s: expected %dx%d, got %dx%d", tc.name, tc.wantW, tc.wantH, w, h)
		}
	}
}

func TestRectFromPoints_Normalizes(t *testing.T) {
	r := RectFromPoints(300, 250, 100, 100)
	if r != (Rect{X: 100, Y: 100, Width: 200, Height: 150}) {
		t.Fatalf("unexpected normalized rect %+v", r)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
