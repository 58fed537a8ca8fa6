// Package server implements the MCP (Model Context Protocol) server for
// HTML image-map tools.
//
// The server exposes the area geometry of package areamap, the document
// access of package htmlmap, and pixel operations on the image a map is
// drawn over, through JSON-RPC 2.0 tool calls.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to the configured logger, never to stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Offset computation:
//   - area_offset: Offset of a shape/coords pair
//
// Documents:
//   - map_list_areas: Every area with its corner and centre
//   - map_area_offset: Offset of one selected area
//   - map_area_distance: Distance between two areas
//
// Pixels under an area:
//   - map_area_crop: Crop the image to an area
//   - map_area_colors: Centre and dominant colours
//   - map_area_text: OCR inside an area
//   - map_overlay: Draw all areas of a map over its image
//
// Images:
//   - map_suggest_areas: Propose areas from detected shapes
//   - image_dimensions: Width and height
//
// # Coordinates
//
// Area coords are authored against the rendered size of the <img> that uses
// the map. Offsets are reported in those units. Pixel tools convert coords
// to image pixels by the ratio between the file's size and the rendered
// size, and report regions in image pixels.
//
// # Error Handling
//
// Argument problems are returned with code -32602. Failures while running
// a tool (missing files or unknown areas) use -32000 with the Go
// error string in data.
package server
