package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// skipWithoutTesseract skips the test when the error comes from a missing
// Tesseract installation or language pack.
func skipWithoutTesseract(t *testing.T, err error) {
	t.Helper()
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "tesseract") ||
		strings.Contains(msg, "library") ||
		strings.Contains(msg, "language") {
		t.Skipf("Tesseract not available: %v", err)
	}
}

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createImageWithText renders text at (left, baseline) and scales the
// result up so Tesseract has enough pixels per glyph.
func createImageWithText(width, height, left, baseline int, text string, scale int) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(small, left, baseline, text, color.Black)

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

func TestExtractAreaText(t *testing.T) {
	img := createImageWithText(200, 60, 110, 35, "HELLO", 4)

	// Only the right half carries text.
	region := image.Rect(400, 0, 800, 240)

	result, err := ExtractAreaText(img, region, "")
	if err != nil {
		skipWithoutTesseract(t, err)
		t.Fatalf("ExtractAreaText failed: %v", err)
	}

	if result.Language != DefaultLanguage {
		t.Errorf("Language: got %q, want %q", result.Language, DefaultLanguage)
	}
	if result.Region != (Bounds{X1: 400, Y1: 0, X2: 800, Y2: 240}) {
		t.Errorf("Region: got %+v", result.Region)
	}
	if !strings.Contains(strings.ToUpper(result.Text), "HELLO") {
		t.Logf("OCR text %q does not contain HELLO; recognition quality varies by install", result.Text)
	}

	for _, w := range result.Words {
		if w.Bounds.X1 < 400 || w.Bounds.X2 > 800 {
			t.Errorf("word %q bounds %+v are not in source coordinates", w.Text, w.Bounds)
		}
	}
}

func TestExtractAreaText_ClipsRegion(t *testing.T) {
	img := createImageWithText(60, 30, 5, 20, "AB", 2)

	result, err := ExtractAreaText(img, image.Rect(-50, -50, 1000, 1000), "eng")
	if err != nil {
		skipWithoutTesseract(t, err)
		t.Fatalf("ExtractAreaText failed: %v", err)
	}

	if result.Region != (Bounds{X1: 0, Y1: 0, X2: 120, Y2: 60}) {
		t.Errorf("Region should be clipped to the image, got %+v", result.Region)
	}
}

func TestExtractAreaText_OutsideImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	tests := []struct {
		name   string
		region image.Rectangle
	}{
		{"right of image", image.Rect(60, 0, 100, 50)},
		{"below image", image.Rect(0, 50, 50, 90)},
		{"empty", image.Rect(10, 10, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractAreaText(img, tt.region, "eng"); err == nil {
				t.Error("expected an error for a region outside the image")
			}
		})
	}
}

func TestOffsetBounds(t *testing.T) {
	got := offsetBounds(image.Rect(10, 20, 30, 40), image.Pt(100, 50))
	want := Bounds{X1: 110, Y1: 70, X2: 130, Y2: 90}
	if got != want {
		t.Errorf("offsetBounds: got %+v, want %+v", got, want)
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Backend != "gosseract" {
		t.Errorf("Backend: got %q, want gosseract", info.Backend)
	}
	if info.Available && info.Version == "" {
		t.Error("available backend should report a version")
	}
}
