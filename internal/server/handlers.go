package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
	"github.com/ironsheep/image-map-mcp/internal/detection"
	"github.com/ironsheep/image-map-mcp/internal/htmlmap"
	"github.com/ironsheep/image-map-mcp/internal/imaging"
	"github.com/ironsheep/image-map-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "area_offset", "map_area_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// invalidArgsError marks errors caused by the caller's arguments. They are
// reported as JSON-RPC "Invalid params" instead of tool failures.
type invalidArgsError struct {
	err error
}

func (e *invalidArgsError) Error() string { return e.err.Error() }
func (e *invalidArgsError) Unwrap() error { return e.err }

func invalidArgs(format string, a ...interface{}) error {
	return &invalidArgsError{err: fmt.Errorf(format, a...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; tool execution errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	s.logger.Debug("tool call", "tool", params.Name)

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var argErr *invalidArgsError
		if errors.As(err, &argErr) {
			s.logger.Debug("invalid tool arguments", "tool", params.Name, "err", err)
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		s.logger.Error("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Core offset computation
	case "area_offset":
		return s.handleAreaOffset(args)

	// Document operations
	case "map_list_areas":
		return s.handleMapListAreas(args)
	case "map_area_offset":
		return s.handleMapAreaOffset(args)
	case "map_area_distance":
		return s.handleMapAreaDistance(args)

	// Pixel operations on the host image
	case "map_area_crop":
		return s.handleMapAreaCrop(args)
	case "map_area_colors":
		return s.handleMapAreaColors(args)
	case "map_area_text":
		return s.handleMapAreaText(args)
	case "map_overlay":
		return s.handleMapOverlay(args)

	// Image operations
	case "map_suggest_areas":
		return s.handleMapSuggestAreas(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	default:
		return nil, invalidArgs("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as an
// empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidArgs("invalid arguments: %v", err)
	}
	return nil
}

// resolvePath makes a relative path absolute against the configured base
// directory.
func (s *Server) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || s.cfg.BaseDir == "" {
		return p
	}
	return filepath.Join(s.cfg.BaseDir, p)
}

func (s *Server) shapeOptions() []areamap.Option {
	return []areamap.Option{areamap.WithTransposedDefaultCenter(s.cfg.TransposeDefaultCenter)}
}

// === Shared argument types ===

type documentArgs struct {
	HTML     string `json:"html"`
	HTMLPath string `json:"html_path"`
}

type selectorArgs struct {
	Map   string `json:"map"`
	ID    string `json:"id"`
	Href  string `json:"href"`
	Alt   string `json:"alt"`
	Index int    `json:"index"`
}

func (a selectorArgs) selector() (htmlmap.AreaSelector, error) {
	if a.Index < 0 {
		return htmlmap.AreaSelector{}, invalidArgs("index must not be negative, got %d", a.Index)
	}
	return htmlmap.AreaSelector{Map: a.Map, ID: a.ID, Href: a.Href, Alt: a.Alt, Index: a.Index}, nil
}

// loadDocument parses the HTML given inline or by path. Images are sized
// through the server's image cache.
func (s *Server) loadDocument(a documentArgs) (*htmlmap.Document, error) {
	opts := []htmlmap.Option{htmlmap.WithImageSizer(s.cache)}

	switch {
	case a.HTML != "" && a.HTMLPath != "":
		return nil, invalidArgs("provide either html or html_path, not both")
	case a.HTMLPath != "":
		return htmlmap.ParseFile(s.resolvePath(a.HTMLPath), opts...)
	case a.HTML != "":
		if s.cfg.BaseDir != "" {
			opts = append(opts, htmlmap.WithBaseDir(s.cfg.BaseDir))
		}
		return htmlmap.Parse(strings.NewReader(a.HTML), opts...)
	default:
		return nil, invalidArgs("html or html_path is required")
	}
}

// mapSession bundles a parsed document with its calculator.
type mapSession struct {
	doc  *htmlmap.Document
	calc *areamap.Calculator
}

func (s *Server) openSession(a documentArgs) (*mapSession, error) {
	doc, err := s.loadDocument(a)
	if err != nil {
		return nil, err
	}
	return &mapSession{doc: doc, calc: areamap.NewCalculator(doc, s.shapeOptions()...)}, nil
}

func (m *mapSession) findArea(a selectorArgs) (*htmlmap.Element, error) {
	sel, err := a.selector()
	if err != nil {
		return nil, err
	}
	return m.doc.FindArea(sel)
}

// AreaInfo describes one <area> element.
type AreaInfo struct {
	Index  int               `json:"index"`
	Map    string            `json:"map,omitempty"`
	ID     string            `json:"id,omitempty"`
	Shape  areamap.ShapeKind `json:"shape"`
	Coords string            `json:"coords"`
	Href   string            `json:"href,omitempty"`
	Alt    string            `json:"alt,omitempty"`
	Valid  bool              `json:"valid"`
	Corner areamap.Offset    `json:"corner"`
	Center areamap.Offset    `json:"center"`
}

func (m *mapSession) describe(el *htmlmap.Element) AreaInfo {
	shape := m.calc.Shape(el)
	host := m.calc.HostSize(el)
	_, invalid := shape.(areamap.NoShape)

	index := -1
	for i, a := range m.doc.Areas() {
		if a == el {
			index = i
			break
		}
	}

	return AreaInfo{
		Index:  index,
		Map:    m.doc.MapName(el),
		ID:     el.AttrOr("id", ""),
		Shape:  shape.Kind(),
		Coords: el.AttrOr("coords", ""),
		Href:   el.AttrOr("href", ""),
		Alt:    el.AttrOr("alt", ""),
		Valid:  !invalid,
		Corner: shape.Offset(false, host),
		Center: shape.Offset(true, host),
	}
}

// label names an area for overlays.
func label(info AreaInfo) string {
	for _, v := range []string{info.Alt, info.ID, info.Href} {
		if v != "" {
			return v
		}
	}
	return fmt.Sprintf("area %d", info.Index)
}

// pixelSpace maps area coordinates, which are authored against the rendered
// size of the image, onto the pixels of the image file.
type pixelSpace struct {
	path   string
	img    image.Image
	sx, sy float64
	opts   []areamap.Option
}

// openPixels loads the image used by map m, or override when given. m may
// be nil when override is set.
func (s *Server) openPixels(sess *mapSession, m *htmlmap.Element, override string) (*pixelSpace, error) {
	path := s.resolvePath(override)
	if path == "" {
		if m == nil {
			return nil, fmt.Errorf("area is not inside a map: %w", htmlmap.ErrNoImage)
		}
		p, err := sess.doc.MapImagePath(m)
		if err != nil {
			return nil, fmt.Errorf("map %q: %w", htmlmap.NameOf(m), err)
		}
		path = p
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	ps := &pixelSpace{path: path, img: img, sx: 1, sy: 1, opts: s.shapeOptions()}
	if m != nil {
		if size, ok := sess.doc.MapSize(m); ok && size.Width > 0 && size.Height > 0 {
			b := img.Bounds()
			ps.sx = float64(b.Dx()) / size.Width
			ps.sy = float64(b.Dy()) / size.Height
		}
	}
	return ps, nil
}

// shape returns the geometry of el in image pixels.
func (p *pixelSpace) shape(el *htmlmap.Element) areamap.Shape {
	kind := areamap.ParseKind(el.AttrOr("shape", ""))
	coords := areamap.ScaleCoords(kind, areamap.ParseCoords(el.AttrOr("coords", "")), p.sx, p.sy)
	return areamap.NewShape(kind, coords, p.opts...)
}

// host sizes the default area to the whole image.
func (p *pixelSpace) host() (areamap.Size, bool) {
	b := p.img.Bounds()
	return areamap.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, true
}

// areaPixels resolves the selected area and its image in one step.
func (s *Server) areaPixels(doc documentArgs, sel selectorArgs, override string) (*mapSession, *htmlmap.Element, *pixelSpace, error) {
	sess, err := s.openSession(doc)
	if err != nil {
		return nil, nil, nil, err
	}
	el, err := sess.findArea(sel)
	if err != nil {
		return nil, nil, nil, err
	}
	m, _ := sess.doc.MapOf(el)
	ps, err := s.openPixels(sess, m, override)
	if err != nil {
		return nil, nil, nil, err
	}
	return sess, el, ps, nil
}

// === Core offset computation ===

type areaOffsetArgs struct {
	Shape      string   `json:"shape"`
	Coords     string   `json:"coords"`
	Center     bool     `json:"center"`
	HostWidth  *float64 `json:"host_width"`
	HostHeight *float64 `json:"host_height"`
}

type areaOffsetResult struct {
	Shape  areamap.ShapeKind `json:"shape"`
	Valid  bool              `json:"valid"`
	Center bool              `json:"center"`
	Offset areamap.Offset    `json:"offset"`
}

func (s *Server) handleAreaOffset(args json.RawMessage) (interface{}, error) {
	var a areaOffsetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var host *areamap.Size
	if a.HostWidth != nil || a.HostHeight != nil {
		if a.HostWidth == nil || a.HostHeight == nil {
			return nil, invalidArgs("host_width and host_height must be given together")
		}
		host = &areamap.Size{Width: *a.HostWidth, Height: *a.HostHeight}
	}

	kind := areamap.ParseKind(a.Shape)
	coords := areamap.ParseCoords(a.Coords)
	_, invalid := areamap.NewShape(kind, coords).(areamap.NoShape)

	return &areaOffsetResult{
		Shape:  kind,
		Valid:  !invalid,
		Center: a.Center,
		Offset: areamap.ComputeOffset(kind, coords, a.Center, host, s.shapeOptions()...),
	}, nil
}

// === Document operations ===

type listAreasArgs struct {
	documentArgs
	Map string `json:"map"`
}

// MapInfo describes one <map> element and the image using it.
type MapInfo struct {
	Name         string        `json:"name"`
	Image        string        `json:"image,omitempty"`
	RenderedSize *areamap.Size `json:"rendered_size,omitempty"`
	AreaCount    int           `json:"area_count"`
}

type listAreasResult struct {
	Maps  []MapInfo  `json:"maps"`
	Areas []AreaInfo `json:"areas"`
	Count int        `json:"count"`
}

func (s *Server) handleMapListAreas(args json.RawMessage) (interface{}, error) {
	var a listAreasArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.openSession(a.documentArgs)
	if err != nil {
		return nil, err
	}

	result := &listAreasResult{Maps: []MapInfo{}, Areas: []AreaInfo{}}

	for _, m := range sess.doc.Maps() {
		name := htmlmap.NameOf(m)
		if a.Map != "" && name != a.Map {
			continue
		}
		info := MapInfo{Name: name}
		if path, err := sess.doc.MapImagePath(m); err == nil {
			info.Image = path
		}
		if size, ok := sess.doc.MapSize(m); ok {
			info.RenderedSize = &size
		}
		areas := sess.doc.AreasOf(m)
		info.AreaCount = len(areas)
		result.Maps = append(result.Maps, info)

		for _, el := range areas {
			result.Areas = append(result.Areas, sess.describe(el))
		}
	}

	if a.Map != "" && len(result.Maps) == 0 {
		return nil, fmt.Errorf("map %q not found", a.Map)
	}

	// Areas outside any <map> still have a geometry worth reporting.
	if a.Map == "" {
		for _, el := range sess.doc.Areas() {
			if _, ok := sess.doc.MapOf(el); !ok {
				result.Areas = append(result.Areas, sess.describe(el))
			}
		}
	}

	result.Count = len(result.Areas)
	return result, nil
}

type areaOffsetInDocArgs struct {
	documentArgs
	selectorArgs
	Center bool `json:"center"`
}

type mapAreaOffsetResult struct {
	Area   AreaInfo       `json:"area"`
	Center bool           `json:"center"`
	Offset areamap.Offset `json:"offset"`
}

func (s *Server) handleMapAreaOffset(args json.RawMessage) (interface{}, error) {
	var a areaOffsetInDocArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.openSession(a.documentArgs)
	if err != nil {
		return nil, err
	}
	el, err := sess.findArea(a.selectorArgs)
	if err != nil {
		return nil, err
	}

	return &mapAreaOffsetResult{
		Area:   sess.describe(el),
		Center: a.Center,
		Offset: sess.calc.AreaOffset(sess.doc.Selection(el), a.Center),
	}, nil
}

type areaDistanceArgs struct {
	documentArgs
	From   *selectorArgs `json:"from"`
	To     *selectorArgs `json:"to"`
	Center *bool         `json:"center"`
}

type areaDistanceResult struct {
	FromArea AreaInfo `json:"from_area"`
	ToArea   AreaInfo `json:"to_area"`
	*imaging.DistanceResult
}

func (s *Server) handleMapAreaDistance(args json.RawMessage) (interface{}, error) {
	var a areaDistanceArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.From == nil || a.To == nil {
		return nil, invalidArgs("from and to are required")
	}
	center := true
	if a.Center != nil {
		center = *a.Center
	}

	sess, err := s.openSession(a.documentArgs)
	if err != nil {
		return nil, err
	}
	from, err := sess.findArea(*a.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := sess.findArea(*a.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	var size *areamap.Size
	if sz, ok := sess.calc.HostSize(from)(); ok {
		size = &sz
	}

	return &areaDistanceResult{
		FromArea: sess.describe(from),
		ToArea:   sess.describe(to),
		DistanceResult: imaging.MeasureDistance(
			sess.calc.AreaOffset(sess.doc.Selection(from), center),
			sess.calc.AreaOffset(sess.doc.Selection(to), center),
			size,
		),
	}, nil
}

// === Pixel operations on the host image ===

type areaImageArgs struct {
	documentArgs
	selectorArgs
	ImagePath string `json:"image_path"`
}

type areaCropArgs struct {
	areaImageArgs
	Scale float64 `json:"scale"`
}

type areaCropResult struct {
	Area  AreaInfo `json:"area"`
	Image string   `json:"image"`
	*imaging.CropResult
}

func (s *Server) handleMapAreaCrop(args json.RawMessage) (interface{}, error) {
	var a areaCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, invalidArgs("scale must be positive, got %v", a.Scale)
	}

	sess, el, ps, err := s.areaPixels(a.documentArgs, a.selectorArgs, a.ImagePath)
	if err != nil {
		return nil, err
	}
	crop, err := imaging.CropArea(ps.img, ps.shape(el), a.Scale)
	if err != nil {
		return nil, err
	}
	return &areaCropResult{Area: sess.describe(el), Image: ps.path, CropResult: crop}, nil
}

type areaColorsArgs struct {
	areaImageArgs
	Count int `json:"count"`
}

type areaColorsResult struct {
	Area  AreaInfo `json:"area"`
	Image string   `json:"image"`
	*imaging.AreaColorsResult
}

func (s *Server) handleMapAreaColors(args json.RawMessage) (interface{}, error) {
	var a areaColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	if a.Count < 0 {
		return nil, invalidArgs("count must be positive, got %d", a.Count)
	}

	sess, el, ps, err := s.areaPixels(a.documentArgs, a.selectorArgs, a.ImagePath)
	if err != nil {
		return nil, err
	}
	shape := ps.shape(el)
	colors, err := imaging.AreaColors(ps.img, shape, shape.Offset(true, ps.host), a.Count)
	if err != nil {
		return nil, err
	}
	return &areaColorsResult{Area: sess.describe(el), Image: ps.path, AreaColorsResult: colors}, nil
}

type areaTextArgs struct {
	areaImageArgs
	Language string `json:"language"`
}

type areaTextResult struct {
	Area  AreaInfo `json:"area"`
	Image string   `json:"image"`
	*ocr.AreaText
}

func (s *Server) handleMapAreaText(args json.RawMessage) (interface{}, error) {
	var a areaTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCR.Language
	}

	sess, el, ps, err := s.areaPixels(a.documentArgs, a.selectorArgs, a.ImagePath)
	if err != nil {
		return nil, err
	}
	region, err := imaging.AreaRegion(ps.img, ps.shape(el))
	if err != nil {
		return nil, err
	}
	text, err := ocr.ExtractAreaText(ps.img, region.Rect(), a.Language)
	if err != nil {
		return nil, err
	}
	return &areaTextResult{Area: sess.describe(el), Image: ps.path, AreaText: text}, nil
}

type overlayArgs struct {
	documentArgs
	ImagePath   string   `json:"image_path"`
	Map         string   `json:"map"`
	Dim         *float64 `json:"dim"`
	StrokeWidth *float64 `json:"stroke_width"`
	ShowLabels  *bool    `json:"show_labels"`
}

type overlayResult struct {
	Map   string     `json:"map"`
	Image string     `json:"image"`
	Areas []AreaInfo `json:"areas"`
	*imaging.OverlayResult
}

func (s *Server) handleMapOverlay(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.OverlayOptions{
		Dim:         s.cfg.Overlay.Dim,
		StrokeWidth: s.cfg.Overlay.StrokeWidth,
		ShowLabels:  s.cfg.Overlay.ShowLabels,
	}
	if a.Dim != nil {
		if *a.Dim < 0 || *a.Dim > 1 {
			return nil, invalidArgs("dim must be between 0 and 1, got %v", *a.Dim)
		}
		opts.Dim = *a.Dim
	}
	if a.StrokeWidth != nil {
		opts.StrokeWidth = *a.StrokeWidth
	}
	if a.ShowLabels != nil {
		opts.ShowLabels = *a.ShowLabels
	}

	sess, err := s.openSession(a.documentArgs)
	if err != nil {
		return nil, err
	}

	var m *htmlmap.Element
	if a.Map != "" {
		found, ok := sess.doc.FindMap(a.Map)
		if !ok {
			return nil, fmt.Errorf("map %q not found", a.Map)
		}
		m = found
	} else {
		maps := sess.doc.Maps()
		if len(maps) == 0 {
			return nil, fmt.Errorf("document has no <map>")
		}
		m = maps[0]
	}

	ps, err := s.openPixels(sess, m, a.ImagePath)
	if err != nil {
		return nil, err
	}

	infos := []AreaInfo{}
	var areas []imaging.OverlayArea
	for _, el := range sess.doc.AreasOf(m) {
		info := sess.describe(el)
		infos = append(infos, info)

		shape := ps.shape(el)
		areas = append(areas, imaging.OverlayArea{
			Label:  label(info),
			Shape:  shape,
			Marker: shape.Offset(true, ps.host),
		})
	}

	rendered, err := imaging.AreaOverlay(ps.img, areas, opts)
	if err != nil {
		return nil, err
	}
	return &overlayResult{Map: htmlmap.NameOf(m), Image: ps.path, Areas: infos, OverlayResult: rendered}, nil
}

// === Image operations ===

type suggestArgs struct {
	Path      string   `json:"path"`
	MapName   string   `json:"map_name"`
	MinArea   *int     `json:"min_area"`
	Tolerance *float64 `json:"tolerance"`
	MinRadius *int     `json:"min_radius"`
	MaxRadius *int     `json:"max_radius"`
}

type suggestResult struct {
	*detection.SuggestResult
	HTML string `json:"html"`
}

func (s *Server) handleMapSuggestAreas(args json.RawMessage) (interface{}, error) {
	var a suggestArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidArgs("path is required")
	}
	if a.MapName == "" {
		a.MapName = "suggested"
	}

	opts := detection.SuggestOptions{
		MinArea:   s.cfg.Suggest.MinArea,
		Tolerance: s.cfg.Suggest.Tolerance,
		MinRadius: s.cfg.Suggest.MinRadius,
		MaxRadius: s.cfg.Suggest.MaxRadius,
	}
	if a.MinArea != nil {
		opts.MinArea = *a.MinArea
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.MinRadius != nil {
		opts.MinRadius = *a.MinRadius
	}
	if a.MaxRadius != nil {
		opts.MaxRadius = *a.MaxRadius
	}

	img, err := s.cache.Load(s.resolvePath(a.Path))
	if err != nil {
		return nil, err
	}
	result, err := detection.SuggestAreas(img, opts)
	if err != nil {
		return nil, invalidArgs("%v", err)
	}
	return &suggestResult{SuggestResult: result, HTML: result.MapHTML(a.MapName)}, nil
}

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidArgs("path is required")
	}
	return imaging.GetDimensions(s.cache, s.resolvePath(a.Path))
}
