package detection

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createRectangleImage creates an image with a rectangle outline
func createRectangleImage(width, height int, rectX1, rectY1, rectX2, rectY2 int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	// Draw rectangle outline
	for x := rectX1; x <= rectX2; x++ {
		img.Set(x, rectY1, color.Black)
		img.Set(x, rectY2, color.Black)
	}
	for y := rectY1; y <= rectY2; y++ {
		img.Set(rectX1, y, color.Black)
		img.Set(rectX2, y, color.Black)
	}

	return img
}

// createCircleImage creates an image with a circle outline
func createCircleImage(width, height, cx, cy, radius int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	// Draw circle outline using midpoint algorithm
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, color.Black)
		img.Set(cx+y, cy+x, color.Black)
		img.Set(cx-y, cy+x, color.Black)
		img.Set(cx-x, cy+y, color.Black)
		img.Set(cx-x, cy-y, color.Black)
		img.Set(cx-y, cy-x, color.Black)
		img.Set(cx+y, cy-x, color.Black)
		img.Set(cx+x, cy-y, color.Black)

		if err <= 0 {
			y += 1
			err += 2*y + 1
		}
		if err > 0 {
			x -= 1
			err -= 2*x + 1
		}
	}

	return img
}

// createFilledRectImage creates an image with a solid rectangle
func createFilledRectImage(width, height int, rectX1, rectY1, rectX2, rectY2 int, c color.Color) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := rectY1; y <= rectY2; y++ {
		for x := rectX1; x <= rectX2; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func parseCoords(t *testing.T, s string) []float64 {
	t.Helper()
	coords := areamap.ParseCoords(s)
	if coords == nil {
		t.Fatalf("suggestion coords %q do not parse", s)
	}
	return coords
}

func TestSuggestAreas_Rectangle(t *testing.T) {
	img := createRectangleImage(100, 100, 20, 20, 80, 80)

	result, err := SuggestAreas(img, DefaultSuggestOptions())
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}

	if result.Count != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", result.Count, result.Suggestions)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d", result.Width, result.Height)
	}

	s := result.Suggestions[0]
	if s.Shape != areamap.KindRect {
		t.Errorf("shape: got %s, want rect", s.Shape)
	}

	coords := parseCoords(t, s.Coords)
	want := []float64{20, 20, 80, 80}
	for i := range want {
		if !near(coords[i], want[i], 2) {
			t.Errorf("coords[%d]: got %v, want ~%v", i, coords[i], want[i])
		}
	}

	if !near(s.Center.Left, 50, 1.5) || !near(s.Center.Top, 50, 1.5) {
		t.Errorf("center: got %+v, want ~(50,50)", s.Center)
	}
	if s.Confidence < 0.8 {
		t.Errorf("confidence: got %v, want >= 0.8", s.Confidence)
	}
	if s.FillColor != "#FFFFFF" {
		t.Errorf("fill colour: got %s, want #FFFFFF", s.FillColor)
	}
}

func TestSuggestAreas_Circle(t *testing.T) {
	img := createCircleImage(100, 100, 50, 50, 20)

	result, err := SuggestAreas(img, DefaultSuggestOptions())
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}

	if result.Count != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", result.Count, result.Suggestions)
	}

	s := result.Suggestions[0]
	if s.Shape != areamap.KindCircle {
		t.Fatalf("shape: got %s, want circle", s.Shape)
	}

	coords := parseCoords(t, s.Coords)
	if len(coords) != 3 {
		t.Fatalf("expected 3 coords, got %v", coords)
	}
	if !near(coords[0], 50, 1.5) || !near(coords[1], 50, 1.5) || !near(coords[2], 20, 1.5) {
		t.Errorf("coords: got %v, want ~50,50,20", coords)
	}

	// A circle's centre offset is its centre coordinate.
	if s.Center.Left != coords[0] || s.Center.Top != coords[1] {
		t.Errorf("center %+v does not match coords %v", s.Center, coords)
	}
	if s.Corner.Left != coords[0]-coords[2] || s.Corner.Top != coords[1]-coords[2] {
		t.Errorf("corner %+v does not match coords %v", s.Corner, coords)
	}
}

func TestSuggestAreas_FilledShapes(t *testing.T) {
	img := createFilledRectImage(120, 100, 10, 10, 50, 40, color.RGBA{200, 0, 0, 255})
	for y := 60; y <= 90; y++ {
		for x := 70; x <= 110; x++ {
			img.Set(x, y, color.RGBA{0, 0, 200, 255})
		}
	}

	result, err := SuggestAreas(img, DefaultSuggestOptions())
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", result.Count, result.Suggestions)
	}

	// Both outlines measure 41x31, so the tie is broken by position.
	first, second := result.Suggestions[0], result.Suggestions[1]
	if first.FillColor != "#C80000" {
		t.Errorf("first fill: got %s, want #C80000", first.FillColor)
	}
	if second.FillColor != "#0000C8" {
		t.Errorf("second fill: got %s, want #0000C8", second.FillColor)
	}
}

func TestSuggestAreas_MinArea(t *testing.T) {
	img := createRectangleImage(100, 100, 40, 40, 50, 50)

	opts := DefaultSuggestOptions()
	opts.MinArea = 50
	small, err := SuggestAreas(img, opts)
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}

	opts.MinArea = 1000
	large, err := SuggestAreas(img, opts)
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}

	if small.Count != 1 {
		t.Errorf("expected the 10x10 rectangle with MinArea=50, got %d", small.Count)
	}
	if large.Count != 0 {
		t.Errorf("expected no suggestion with MinArea=1000, got %d", large.Count)
	}
}

func TestSuggestAreas_RadiusBounds(t *testing.T) {
	img := createCircleImage(100, 100, 50, 50, 20)

	tests := []struct {
		name      string
		min, max  int
		wantCount int
	}{
		{"within", 5, 30, 1},
		{"below min", 25, 0, 0},
		{"above max", 5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultSuggestOptions()
			opts.MinRadius, opts.MaxRadius = tt.min, tt.max

			result, err := SuggestAreas(img, opts)
			if err != nil {
				t.Fatalf("SuggestAreas failed: %v", err)
			}
			if result.Count != tt.wantCount {
				t.Errorf("got %d suggestions, want %d", result.Count, tt.wantCount)
			}
		})
	}
}

func TestSuggestAreas_SkipClasses(t *testing.T) {
	img := createCircleImage(100, 100, 50, 50, 20)

	opts := DefaultSuggestOptions()
	opts.SkipCircles = true
	result, err := SuggestAreas(img, opts)
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}
	for _, s := range result.Suggestions {
		if s.Shape == areamap.KindCircle {
			t.Errorf("circle suggested with SkipCircles: %+v", s)
		}
	}
}

func TestSuggestAreas_EmptyImage(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	result, err := SuggestAreas(img, DefaultSuggestOptions())
	if err != nil {
		t.Fatalf("SuggestAreas failed: %v", err)
	}

	if result.Count != 0 {
		t.Errorf("Expected 0 suggestions in empty image, got %d", result.Count)
	}
	if result.Suggestions == nil {
		t.Error("Suggestions should be an empty slice, not nil")
	}
}

func TestSuggestAreas_InvalidOptions(t *testing.T) {
	img := createTestImage(10, 10, color.White)

	tests := []struct {
		name string
		opts SuggestOptions
	}{
		{"everything skipped", SuggestOptions{SkipRects: true, SkipCircles: true}},
		{"tolerance above one", SuggestOptions{Tolerance: 1.5}},
		{"negative tolerance", SuggestOptions{Tolerance: -0.1}},
		{"inverted radii", SuggestOptions{MinRadius: 20, MaxRadius: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SuggestAreas(img, tt.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMapHTML(t *testing.T) {
	result := &SuggestResult{
		Suggestions: []Suggestion{
			{Shape: areamap.KindRect, Coords: "0,0,10,10"},
			{Shape: areamap.KindCircle, Coords: "30,30,5"},
		},
	}

	got := result.MapHTML(`shapes "a"`)
	want := "<map name=\"shapes &#34;a&#34;\">\n" +
		"  <area shape=\"rect\" coords=\"0,0,10,10\" href=\"#area-1\" alt=\"rect 1\">\n" +
		"  <area shape=\"circle\" coords=\"30,30,5\" href=\"#area-2\" alt=\"circle 2\">\n" +
		"</map>\n"

	if got != want {
		t.Errorf("MapHTML:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSampleColorHex(t *testing.T) {
	img := createTestImage(4, 4, color.RGBA{0x12, 0xAB, 0xEF, 255})

	if got := sampleColorHex(img, 1, 1); got != "#12ABEF" {
		t.Errorf("got %s, want #12ABEF", got)
	}
	if got := sampleColorHex(img, 10, 1); got != "" {
		t.Errorf("out of bounds: got %q, want empty", got)
	}
}
