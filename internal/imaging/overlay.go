package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// OverlayArea is one area drawn by AreaOverlay.
type OverlayArea struct {
	// Label is written next to the marker. May be empty.
	Label string

	// Shape is the outline to draw.
	Shape areamap.Shape

	// Marker is the offset to highlight, usually the area's centre.
	Marker areamap.Offset
}

// OverlayOptions controls how AreaOverlay renders.
type OverlayOptions struct {
	// Dim darkens the source image before drawing, from 0 (unchanged) to
	// 1 (black).
	Dim float64

	// StrokeWidth is the outline width in pixels. Zero means 2.
	StrokeWidth float64

	// ShowLabels writes each area's label next to its marker.
	ShowLabels bool
}

// OverlayResult contains the rendered overlay.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	AreaCount   int    `json:"area_count"`
	Skipped     int    `json:"skipped"`
}

// AreaOverlay draws the outline and marker of every area over img.
//
// Each area gets its own colour from an evenly spread hue palette so that
// neighbouring areas stay distinguishable. Areas without coordinates
// (NoShape) are counted in Skipped and not drawn.
func AreaOverlay(img image.Image, areas []OverlayArea, opts OverlayOptions) (*OverlayResult, error) {
	bounds := img.Bounds()

	base := img
	if opts.Dim > 0 {
		base = adjust.Brightness(img, -math.Min(opts.Dim, 1))
	}

	dc := gg.NewContextForImage(base)
	stroke := opts.StrokeWidth
	if stroke <= 0 {
		stroke = 2
	}

	palette := areaPalette(len(areas))
	skipped := 0

	for i, a := range areas {
		if _, ok := a.Shape.(areamap.NoShape); ok {
			skipped++
			continue
		}

		dc.SetColor(palette[i])
		dc.SetLineWidth(stroke)
		traceShape(dc, a.Shape, bounds)
		dc.Stroke()

		drawMarker(dc, a.Marker, stroke)

		if opts.ShowLabels && a.Label != "" {
			dc.DrawStringAnchored(a.Label, a.Marker.Left+3*stroke, a.Marker.Top-3*stroke, 0, 0)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		AreaCount:   len(areas) - skipped,
		Skipped:     skipped,
	}, nil
}

// traceShape adds the outline of shape to the current path. The default
// area traces the image border.
func traceShape(dc *gg.Context, shape areamap.Shape, bounds image.Rectangle) {
	switch s := shape.(type) {
	case areamap.Circle:
		dc.DrawCircle(s.X, s.Y, s.R)
	case areamap.Rectangle:
		dc.DrawRectangle(s.Min.X, s.Min.Y, s.Max.X-s.Min.X, s.Max.Y-s.Min.Y)
	case areamap.Polygon:
		for i, p := range s.Vertices {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
	default:
		dc.DrawRectangle(0, 0, float64(bounds.Dx()), float64(bounds.Dy()))
	}
}

// drawMarker draws a cross centred on off.
func drawMarker(dc *gg.Context, off areamap.Offset, stroke float64) {
	arm := 3 * stroke
	dc.DrawLine(off.Left-arm, off.Top, off.Left+arm, off.Top)
	dc.DrawLine(off.Left, off.Top-arm, off.Left, off.Top+arm)
	dc.Stroke()
}

// areaPalette returns n colours with hues spaced by the golden angle.
func areaPalette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		hue := math.Mod(float64(i)*137.508, 360)
		out[i] = colorful.Hsv(hue, 0.85, 0.95)
	}
	return out
}
