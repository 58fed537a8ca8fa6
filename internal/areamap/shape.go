package areamap

import (
	"math"
	"strings"
)

// ShapeKind is the value of an area's shape attribute.
type ShapeKind string

const (
	KindCircle  ShapeKind = "circle"
	KindRect    ShapeKind = "rect"
	KindPoly    ShapeKind = "poly"
	KindDefault ShapeKind = "default"
)

// ParseKind normalises a shape attribute, ignoring case and surrounding
// whitespace. Unknown or empty values map to KindDefault.
func ParseKind(s string) ShapeKind {
	switch k := ShapeKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCircle, KindRect, KindPoly:
		return k
	default:
		return KindDefault
	}
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box. Min is the top-left corner.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Shape is a validated area geometry. The concrete types are Circle,
// Rectangle, Polygon, DefaultArea and NoShape.
type Shape interface {
	// Kind reports the shape keyword the geometry was built from.
	// NoShape reports the keyword it was rejected for.
	Kind() ShapeKind

	// Offset returns the top-left corner of the shape, or its centre when
	// center is set. host is consulted only by DefaultArea and may be nil.
	Offset(center bool, host HostSizer) Offset

	// Bounds returns the bounding box of the shape. It reports false for
	// shapes without coordinates of their own.
	Bounds() (Box, bool)

	isShape()
}

// HostSizer resolves the rendered size of the element an area's map is
// attached to. It reports false when there is no such element.
type HostSizer func() (Size, bool)

// NewShape validates coords against kind and returns the matching Shape.
// A rect is accepted with four values (two corners) or any longer even
// list; a poly needs at least six.
func NewShape(kind ShapeKind, coords []float64, opts ...Option) Shape {
	if len(coords) <= 2 {
		return NoShape{For: kind}
	}

	switch kind {
	case KindCircle:
		return Circle{X: coords[0], Y: coords[1], R: coords[2]}

	case KindRect:
		if len(coords) < 4 || len(coords)%2 != 0 {
			return NoShape{For: kind}
		}
		box := boundsOf(pairs(coords))
		return Rectangle{Min: box.Min, Max: box.Max}

	case KindPoly:
		// Three vertices at least.
		if len(coords) < 6 || len(coords)%2 != 0 {
			return NoShape{For: kind}
		}
		return Polygon{Vertices: pairs(coords)}

	default:
		o := newOptions(opts)
		return DefaultArea{Upright: o.uprightDefault}
	}
}

// Circle is a circle area given by its centre and radius.
type Circle struct {
	X, Y, R float64
}

func (Circle) Kind() ShapeKind { return KindCircle }

// Offset returns the centre, or the corner of the bounding square.
func (c Circle) Offset(center bool, _ HostSizer) Offset {
	if center {
		return Offset{Left: c.X, Top: c.Y}
	}
	return Offset{Left: c.X - c.R, Top: c.Y - c.R}
}

func (c Circle) Bounds() (Box, bool) {
	return Box{
		Min: Point{X: c.X - c.R, Y: c.Y - c.R},
		Max: Point{X: c.X + c.R, Y: c.Y + c.R},
	}, true
}

func (Circle) isShape() {}

// Rectangle is a rect area reduced to the bounding box of its points.
type Rectangle struct {
	Min, Max Point
}

func (Rectangle) Kind() ShapeKind { return KindRect }

// Offset returns the top-left corner, or the middle of the box.
func (r Rectangle) Offset(center bool, _ HostSizer) Offset {
	if !center {
		return Offset{Left: r.Min.X, Top: r.Min.Y}
	}
	return Offset{
		Left: r.Min.X + (r.Max.X-r.Min.X)/2,
		Top:  r.Min.Y + (r.Max.Y-r.Min.Y)/2,
	}
}

func (r Rectangle) Bounds() (Box, bool) {
	return Box{Min: r.Min, Max: r.Max}, true
}

func (Rectangle) isShape() {}

// Polygon is a poly area. Vertices are kept as written; the ring may or
// may not repeat its first vertex at the end.
type Polygon struct {
	Vertices []Point
}

func (Polygon) Kind() ShapeKind { return KindPoly }

// Offset returns the bounding-box corner, or the centroid. A polygon with
// zero signed area has no centroid and keeps the corner.
func (p Polygon) Offset(center bool, _ HostSizer) Offset {
	box := boundsOf(p.Vertices)
	off := Offset{Left: box.Min.X, Top: box.Min.Y}
	if !center {
		return off
	}
	if c, ok := p.Centroid(); ok {
		off = Offset{Left: c.X, Top: c.Y}
	}
	return off
}

func (p Polygon) Bounds() (Box, bool) {
	return boundsOf(p.Vertices), true
}

func (Polygon) isShape() {}

// DefaultArea covers the whole image. Its only defined position is the
// centre of the host element.
type DefaultArea struct {
	// Upright reports the centre as (width/2, height/2) instead of the
	// swapped (height/2, width/2).
	Upright bool
}

func (DefaultArea) Kind() ShapeKind { return KindDefault }

func (d DefaultArea) Offset(center bool, host HostSizer) Offset {
	if !center || host == nil {
		return Offset{}
	}
	size, ok := host()
	if !ok {
		return Offset{}
	}
	if d.Upright {
		return Offset{Left: size.Width / 2, Top: size.Height / 2}
	}
	return Offset{Left: size.Height / 2, Top: size.Width / 2}
}

func (DefaultArea) Bounds() (Box, bool) { return Box{}, false }

func (DefaultArea) isShape() {}

// NoShape is the result of coordinates that cannot describe their shape.
type NoShape struct {
	For ShapeKind
}

func (n NoShape) Kind() ShapeKind { return n.For }

func (NoShape) Offset(bool, HostSizer) Offset { return Offset{} }

func (NoShape) Bounds() (Box, bool) { return Box{}, false }

func (NoShape) isShape() {}

// pairs splits a flat coordinate list into points. Even indexes are X,
// odd indexes Y. A trailing odd value is dropped.
func pairs(coords []float64) []Point {
	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, Point{X: coords[i], Y: coords[i+1]})
	}
	return pts
}

func boundsOf(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	box := Box{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, p := range pts {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return box
}
