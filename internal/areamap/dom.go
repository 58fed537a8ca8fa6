package areamap

import "strings"

// Element is a node of a document model. Only its tag name is needed
// directly; everything else goes through DOM.
type Element interface {
	TagName() string
}

// DOM is the document access needed to place an area.
type DOM interface {
	// Attr returns the value of the named attribute of el.
	Attr(el Element, name string) (string, bool)

	// HostContainer returns the closest <map> ancestor of el.
	HostContainer(el Element) (Element, bool)

	// ReferencingElement returns the element whose usemap attribute
	// refers to the given map.
	ReferencingElement(m Element) (Element, bool)

	// RenderedSize returns the displayed width and height of el.
	RenderedSize(el Element) (Size, bool)
}

// Calculator places area elements of a document.
type Calculator struct {
	dom  DOM
	opts []Option
}

// NewCalculator returns a Calculator reading elements through dom.
func NewCalculator(dom DOM, opts ...Option) *Calculator {
	return &Calculator{dom: dom, opts: opts}
}

// AreaOffset returns the offset of the first area element in selection.
// Elements that are not areas are skipped; with no area at all the result
// is the zero offset.
func (c *Calculator) AreaOffset(selection []Element, center bool) Offset {
	area := FirstArea(selection)
	if area == nil {
		return Offset{}
	}
	return c.Shape(area).Offset(center, c.HostSize(area))
}

// Shape builds the geometry of an area element from its shape and coords
// attributes.
func (c *Calculator) Shape(area Element) Shape {
	coords, _ := c.dom.Attr(area, "coords")
	kind, _ := c.dom.Attr(area, "shape")
	return NewShape(ParseKind(kind), ParseCoords(coords), c.opts...)
}

// HostSize returns a HostSizer resolving the rendered size of the element
// that uses the map containing area. The lookup runs only when called.
func (c *Calculator) HostSize(area Element) HostSizer {
	return func() (Size, bool) {
		m, ok := c.dom.HostContainer(area)
		if !ok {
			return Size{}, false
		}
		host, ok := c.dom.ReferencingElement(m)
		if !ok {
			return Size{}, false
		}
		return c.dom.RenderedSize(host)
	}
}

// FirstArea returns the first <area> element of selection, or nil.
func FirstArea(selection []Element) Element {
	for _, el := range selection {
		if el != nil && strings.EqualFold(el.TagName(), "area") {
			return el
		}
	}
	return nil
}
