package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func propDefault(typ, description string, def interface{}) map[string]interface{} {
	p := prop(typ, description)
	p["default"] = def
	return p
}

// documentProps are the arguments that supply the HTML document.
func documentProps() map[string]interface{} {
	return map[string]interface{}{
		"html":      prop("string", "Inline HTML containing the <map> and the <img usemap> that uses it"),
		"html_path": prop("string", "Path to an HTML file. Relative paths resolve against the configured base_dir"),
	}
}

// selectorProps are the arguments that pick one area of a document.
func selectorProps() map[string]interface{} {
	return map[string]interface{}{
		"map":   prop("string", "Only consider areas of the map with this name (or id)"),
		"id":    prop("string", "Match the area's id attribute"),
		"href":  prop("string", "Match the area's href attribute"),
		"alt":   prop("string", "Match the area's alt attribute"),
		"index": propDefault("integer", "Zero-based position among the areas that match the other fields", 0),
	}
}

func selectorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": selectorProps(),
	}
}

// merge copies every entry of the given maps into one new map.
func merge(parts ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, p := range parts {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	imagePathProp := map[string]interface{}{
		"image_path": prop("string", "Image file to use instead of the src of the <img> that uses the map"),
	}

	return []Tool{
		// Core offset computation
		{
			Name:        "area_offset",
			Description: "Compute the offset of an image-map area from its shape and coords attributes. Returns the top-left corner, or the centre when center is true. Malformed coords give {left: 0, top: 0}.",
			InputSchema: objectSchema(map[string]interface{}{
				"shape":       prop("string", "Area shape keyword: circle, rect, poly or default. Empty or unknown values mean default"),
				"coords":      prop("string", "Comma-separated coords attribute, e.g. \"10,20,30\""),
				"center":      propDefault("boolean", "Return the centre instead of the top-left corner", false),
				"host_width":  prop("number", "Rendered width of the image using the map. Only used for the centre of a default area"),
				"host_height": prop("number", "Rendered height of the image using the map. Only used for the centre of a default area"),
			}, "coords"),
		},

		// Document operations
		{
			Name:        "map_list_areas",
			Description: "Parse an HTML document and list every <area> with its map, shape, coords, href, alt, corner offset and centre offset, plus each map's image and rendered size.",
			InputSchema: objectSchema(merge(documentProps(), map[string]interface{}{
				"map": prop("string", "Only list areas of the map with this name (or id)"),
			})),
		},
		{
			Name:        "map_area_offset",
			Description: "Compute the offset of one <area> of an HTML document. The default-area centre uses the rendered size of the <img> that uses the map.",
			InputSchema: objectSchema(merge(documentProps(), selectorProps(), map[string]interface{}{
				"center": propDefault("boolean", "Return the centre instead of the top-left corner", false),
			})),
		},

		// Pixel operations on the host image
		{
			Name:        "map_area_crop",
			Description: "Crop the image that uses the map to the bounding box of one area and return it as base64-encoded PNG. Coords are converted from the rendered size to image pixels.",
			InputSchema: objectSchema(merge(documentProps(), selectorProps(), imagePathProp, map[string]interface{}{
				"scale": propDefault("number", "Optional scale factor (e.g., 2.0 to double size). Default 1.0", 1.0),
			})),
		},
		{
			Name:        "map_area_colors",
			Description: "Sample the colour under an area's centre and the dominant colours inside its bounding box.",
			InputSchema: objectSchema(merge(documentProps(), selectorProps(), imagePathProp, map[string]interface{}{
				"count": propDefault("integer", "Number of dominant colours to return. Default 5", 5),
			})),
		},
		{
			Name:        "map_area_text",
			Description: "Extract text inside an area's bounding box using OCR. Word boxes are in image pixels.",
			InputSchema: objectSchema(merge(documentProps(), selectorProps(), imagePathProp, map[string]interface{}{
				"language": prop("string", "Tesseract language code. Defaults to the configured ocr.language"),
			})),
		},
		{
			Name:        "map_area_distance",
			Description: "Measure the distance and angle between the offsets of two areas of the same document.",
			InputSchema: objectSchema(merge(documentProps(), map[string]interface{}{
				"from":   selectorSchema(),
				"to":     selectorSchema(),
				"center": propDefault("boolean", "Measure between centres instead of top-left corners", true),
			}), "from", "to"),
		},
		{
			Name:        "map_overlay",
			Description: "Draw the outline and centre marker of every area of a map over its image and return it as base64-encoded PNG.",
			InputSchema: objectSchema(merge(documentProps(), imagePathProp, map[string]interface{}{
				"map":          prop("string", "Map to draw. Defaults to the first map in the document"),
				"dim":          prop("number", "Darken the image before drawing, 0 to 1. Defaults to overlay.dim"),
				"stroke_width": prop("number", "Outline width in pixels. Defaults to overlay.stroke_width"),
				"show_labels":  prop("boolean", "Label each area with its alt, id or href. Defaults to overlay.show_labels"),
			})),
		},

		// Image operations
		{
			Name:        "map_suggest_areas",
			Description: "Detect rectangles and circles in an image and propose <area> elements for them, with ready-to-paste <map> markup.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":       prop("string", "Path to the image file"),
				"map_name":   propDefault("string", "Name of the generated <map>", "suggested"),
				"min_area":   prop("integer", "Minimum rectangle area in square pixels. Defaults to suggest.min_area"),
				"tolerance":  prop("number", "Minimum shape score, 0 to 1. Defaults to suggest.tolerance"),
				"min_radius": prop("integer", "Minimum circle radius. Defaults to suggest.min_radius"),
				"max_radius": prop("integer", "Maximum circle radius, 0 for none. Defaults to suggest.max_radius"),
			}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Path to the image file"),
			}, "path"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
