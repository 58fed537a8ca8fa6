package htmlmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/net/html"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

var (
	// ErrAreaNotFound is returned when no area matches a selector.
	ErrAreaNotFound = errors.New("area not found")

	// ErrNoImage is returned when an area's map is not used by any image
	// with a usable src.
	ErrNoImage = errors.New("no image uses the area's map")
)

// ImageSizer reports the intrinsic pixel size of an image file.
type ImageSizer interface {
	ImageSize(path string) (width, height int, err error)
}

// Option configures a Document.
type Option func(*Document)

// WithBaseDir sets the directory relative src attributes are resolved
// against.
func WithBaseDir(dir string) Option {
	return func(d *Document) { d.baseDir = dir }
}

// WithImageSizer sets the source of intrinsic image sizes.
func WithImageSizer(s ImageSizer) Option {
	return func(d *Document) { d.sizer = s }
}

// Document is a parsed HTML document. It implements areamap.DOM.
type Document struct {
	baseDir string
	sizer   ImageSizer

	elements []*Element
	byNode   map[*html.Node]*Element
}

var _ areamap.DOM = (*Document)(nil)

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	d := &Document{byNode: make(map[*html.Node]*Element)}
	for _, opt := range opts {
		opt(d)
	}
	d.index(root)
	return d, nil
}

// ParseFile reads an HTML document from disk. Unless WithBaseDir is given,
// relative image paths resolve against the file's directory.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open html: %w", err)
	}
	defer f.Close()

	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	return Parse(f, opts...)
}

// index records every element node in document order.
func (d *Document) index(n *html.Node) {
	if n.Type == html.ElementNode {
		el := &Element{node: n}
		d.elements = append(d.elements, el)
		d.byNode[n] = el
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Areas returns all area elements in document order.
func (d *Document) Areas() []*Element {
	return d.byTag("area")
}

// Maps returns all map elements in document order.
func (d *Document) Maps() []*Element {
	return d.byTag("map")
}

func (d *Document) byTag(tag string) []*Element {
	var out []*Element
	for _, el := range d.elements {
		if el.node.Data == tag {
			out = append(out, el)
		}
	}
	return out
}

// Selection converts elements to the form accepted by areamap.Calculator.
func (d *Document) Selection(els ...*Element) []areamap.Element {
	sel := make([]areamap.Element, len(els))
	for i, el := range els {
		sel[i] = el
	}
	return sel
}

// AreaSelector picks one area. Fields left empty do not constrain the
// match; Index counts matching areas from zero.
type AreaSelector struct {
	Map   string
	ID    string
	Href  string
	Alt   string
	Index int
}

// FindArea returns the area matching sel.
func (d *Document) FindArea(sel AreaSelector) (*Element, error) {
	n := 0
	for _, el := range d.Areas() {
		if !sel.matches(d, el) {
			continue
		}
		if n == sel.Index {
			return el, nil
		}
		n++
	}
	return nil, fmt.Errorf("%w: %s", ErrAreaNotFound, sel)
}

func (s AreaSelector) matches(d *Document, el *Element) bool {
	if s.Map != "" {
		m := d.container(el)
		if m == nil || mapName(m) != s.Map {
			return false
		}
	}
	if s.ID != "" && el.AttrOr("id", "") != s.ID {
		return false
	}
	if s.Href != "" && el.AttrOr("href", "") != s.Href {
		return false
	}
	if s.Alt != "" && el.AttrOr("alt", "") != s.Alt {
		return false
	}
	return true
}

func (s AreaSelector) String() string {
	out := "index=" + strconv.Itoa(s.Index)
	if s.Map != "" {
		out += " map=" + strconv.Quote(s.Map)
	}
	if s.ID != "" {
		out += " id=" + strconv.Quote(s.ID)
	}
	if s.Href != "" {
		out += " href=" + strconv.Quote(s.Href)
	}
	if s.Alt != "" {
		out += " alt=" + strconv.Quote(s.Alt)
	}
	return out
}

// MapName returns the name of the map containing area, or "".
func (d *Document) MapName(area *Element) string {
	if m := d.container(area); m != nil {
		return mapName(m)
	}
	return ""
}

// MapOf returns the map element containing area.
func (d *Document) MapOf(area *Element) (*Element, bool) {
	m := d.container(area)
	return m, m != nil
}

// FindMap returns the first map whose name (or id, for maps without a
// name) equals name.
func (d *Document) FindMap(name string) (*Element, bool) {
	for _, m := range d.Maps() {
		if mapName(m) == name {
			return m, true
		}
	}
	return nil, false
}

// AreasOf returns the areas inside map m in document order.
func (d *Document) AreasOf(m *Element) []*Element {
	var out []*Element
	for _, el := range d.Areas() {
		if d.container(el) == m {
			out = append(out, el)
		}
	}
	return out
}

// NameOf returns the name a usemap attribute uses to refer to map m.
func NameOf(m *Element) string {
	if m == nil {
		return ""
	}
	return mapName(m)
}

// mapName is the name a usemap attribute refers to. Maps without a name
// are matched by id.
func mapName(m *Element) string {
	if name, ok := m.Attr("name"); ok && name != "" {
		return name
	}
	return m.AttrOr("id", "")
}

func (d *Document) container(el *Element) *Element {
	if el == nil {
		return nil
	}
	for n := el.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "map" {
			return d.byNode[n]
		}
	}
	return nil
}

func (d *Document) referrer(m *Element) *Element {
	name := mapName(m)
	if name == "" {
		return nil
	}
	target := "#" + name
	for _, el := range d.elements {
		if v, ok := el.Attr("usemap"); ok && v == target {
			return el
		}
	}
	return nil
}

// HostImage returns the element that uses the map containing area.
func (d *Document) HostImage(area *Element) (*Element, bool) {
	m := d.container(area)
	if m == nil {
		return nil, false
	}
	host := d.referrer(m)
	return host, host != nil
}

// ImagePath returns the local file path of the image using the map that
// contains area.
func (d *Document) ImagePath(area *Element) (string, error) {
	m := d.container(area)
	if m == nil {
		return "", ErrNoImage
	}
	return d.MapImagePath(m)
}

// MapImagePath returns the local file path of the image using map m.
func (d *Document) MapImagePath(m *Element) (string, error) {
	host := d.referrer(m)
	if host == nil {
		return "", ErrNoImage
	}
	path, ok := d.resolveSrc(host)
	if !ok {
		return "", ErrNoImage
	}
	return path, nil
}

// MapSize returns the rendered size of the image using map m.
func (d *Document) MapSize(m *Element) (areamap.Size, bool) {
	host := d.referrer(m)
	if host == nil {
		return areamap.Size{}, false
	}
	return d.RenderedSize(host)
}

// Attr implements areamap.DOM.
func (d *Document) Attr(el areamap.Element, name string) (string, bool) {
	e, ok := el.(*Element)
	if !ok {
		return "", false
	}
	return e.Attr(name)
}

// HostContainer implements areamap.DOM.
func (d *Document) HostContainer(el areamap.Element) (areamap.Element, bool) {
	e, ok := el.(*Element)
	if !ok {
		return nil, false
	}
	m := d.container(e)
	if m == nil {
		return nil, false
	}
	return m, true
}

// ReferencingElement implements areamap.DOM.
func (d *Document) ReferencingElement(m areamap.Element) (areamap.Element, bool) {
	e, ok := m.(*Element)
	if !ok || e == nil {
		return nil, false
	}
	host := d.referrer(e)
	if host == nil {
		return nil, false
	}
	return host, true
}
