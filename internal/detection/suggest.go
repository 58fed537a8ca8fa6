package detection

import (
	"fmt"
	"html"
	"image"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// SuggestOptions controls which contours become area suggestions.
type SuggestOptions struct {
	// MinArea is the smallest bounding-box area, in square pixels, for a
	// rect suggestion.
	MinArea int

	// Tolerance is the minimum shape score (0.0 to 1.0) a contour needs.
	Tolerance float64

	// MinRadius and MaxRadius bound the radius of circle suggestions.
	// A MaxRadius of zero means no upper bound.
	MinRadius int
	MaxRadius int

	// SkipRects and SkipCircles disable one of the two shape classes.
	SkipRects   bool
	SkipCircles bool
}

// DefaultSuggestOptions returns the options used when a caller gives none.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{
		MinArea:   100,
		Tolerance: 0.8,
		MinRadius: 5,
		MaxRadius: 0,
	}
}

// Suggestion is a detected shape expressed as an <area>.
type Suggestion struct {
	// Shape is the area keyword, circle or rect.
	Shape areamap.ShapeKind `json:"shape"`

	// Coords is the coords attribute value.
	Coords string `json:"coords"`

	// Corner and Center are the offsets the area would report.
	Corner areamap.Offset `json:"corner"`
	Center areamap.Offset `json:"center"`

	// FillColor is the hex colour at the centre.
	FillColor string `json:"fill_color,omitempty"`

	// Confidence is the shape score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	area float64
}

// SuggestResult contains the suggestions for one image.
type SuggestResult struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Suggestions []Suggestion `json:"suggestions"`
	Count       int          `json:"count"`
}

// SuggestAreas finds closed outlines in img and proposes an area for each.
//
// # Algorithm
//
//  1. Edge detection: grayscale gradient against the right and lower
//     neighbours, thresholded.
//  2. Contours: 8-connected flood fill over edge pixels.
//  3. Classification: every contour is scored as a rectangle (how closely
//     it hugs and covers its bounding box) and as a circle (how many pixels
//     sit on the inscribed circle, over how many angular sectors). The
//     better score wins and must reach opts.Tolerance.
//  4. Size filters: MinArea for rects, MinRadius/MaxRadius for circles.
//
// Suggestions are sorted by area, largest first, then top to bottom and
// left to right. Coordinates are rounded to whole pixels.
//
// # Limitations
//
//   - Only axis-aligned rectangles are recognised
//   - Ellipses score low as circles and are usually dropped
//   - Touching outlines merge into a single contour
func SuggestAreas(img image.Image, opts SuggestOptions) (*SuggestResult, error) {
	if opts.SkipRects && opts.SkipCircles {
		return nil, fmt.Errorf("both rect and circle suggestions are disabled")
	}
	if opts.Tolerance < 0 || opts.Tolerance > 1 {
		return nil, fmt.Errorf("tolerance must be between 0 and 1, got %v", opts.Tolerance)
	}
	if opts.MaxRadius > 0 && opts.MaxRadius < opts.MinRadius {
		return nil, fmt.Errorf("max radius %d is below min radius %d", opts.MaxRadius, opts.MinRadius)
	}

	bounds := img.Bounds()
	edges, width, height := detectEdges(img)
	contours := findContours(edges, width, height)

	suggestions := make([]Suggestion, 0)
	for _, c := range contours {
		if s, ok := classify(c, opts); ok {
			s.FillColor = sampleColorHex(img, bounds.Min.X+int(s.Center.Left), bounds.Min.Y+int(s.Center.Top))
			suggestions = append(suggestions, s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.area != b.area {
			return a.area > b.area
		}
		if a.Corner.Top != b.Corner.Top {
			return a.Corner.Top < b.Corner.Top
		}
		return a.Corner.Left < b.Corner.Left
	})

	return &SuggestResult{
		Width:       width,
		Height:      height,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, nil
}

// classify turns a contour into a suggestion when one of the enabled shape
// classes scores high enough.
func classify(c *contour, opts SuggestOptions) (Suggestion, bool) {
	rectScore := -1.0
	if !opts.SkipRects {
		rectScore = c.rectangularity(2)
	}

	circleScore := -1.0
	var cx, cy, r float64
	if !opts.SkipCircles {
		cx, cy, r, circleScore = c.circularity(2)
	}

	switch {
	case circleScore >= rectScore && circleScore >= opts.Tolerance:
		radius := roundPx(r)
		if radius < float64(opts.MinRadius) || (opts.MaxRadius > 0 && radius > float64(opts.MaxRadius)) {
			return Suggestion{}, false
		}
		coords := []float64{roundPx(cx), roundPx(cy), radius}
		return newSuggestion(areamap.KindCircle, coords, circleScore), true

	case rectScore > circleScore && rectScore >= opts.Tolerance:
		if c.width()*c.height() < opts.MinArea {
			return Suggestion{}, false
		}
		coords := []float64{float64(c.minX), float64(c.minY), float64(c.maxX), float64(c.maxY)}
		return newSuggestion(areamap.KindRect, coords, rectScore), true
	}

	return Suggestion{}, false
}

func newSuggestion(kind areamap.ShapeKind, coords []float64, score float64) Suggestion {
	shape := areamap.NewShape(kind, coords)
	box, _ := shape.Bounds()
	return Suggestion{
		Shape:      kind,
		Coords:     areamap.FormatCoords(coords),
		Corner:     shape.Offset(false, nil),
		Center:     shape.Offset(true, nil),
		Confidence: float64(int(score*1000+0.5)) / 1000,
		area:       box.Width() * box.Height(),
	}
}

// MapHTML renders the suggestions as a <map> element named name. Each area
// links to a fragment derived from its position in the list.
func (r *SuggestResult) MapHTML(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<map name=\"%s\">\n", html.EscapeString(name))
	for i, s := range r.Suggestions {
		fmt.Fprintf(&b, "  <area shape=\"%s\" coords=\"%s\" href=\"#area-%d\" alt=\"%s %d\">\n",
			s.Shape, s.Coords, i+1, s.Shape, i+1)
	}
	b.WriteString("</map>\n")
	return b.String()
}

func roundPx(v float64) float64 {
	return float64(int(v + 0.5))
}

// sampleColorHex returns the hex colour (#RRGGBB) of a pixel, or "" when
// the pixel is outside the image.
func sampleColorHex(img image.Image, x, y int) string {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return ""
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent.
		return ""
	}
	return strings.ToUpper(c.Hex())
}
