// Package areamap computes the position of HTML image-map areas.
//
// An <area> element describes a clickable region of an image through a shape
// keyword and a comma-separated coordinate list. This package turns those two
// attributes into an Offset: either the top-left corner of the region or its
// centre.
//
// # Shapes
//
// Coordinates are validated once, when a Shape is built with NewShape:
//
//   - circle: "cx,cy,r". The corner is (cx-r, cy-r), the centre (cx, cy).
//   - rect: an even number of values, at least four. The corner is the
//     minimum X and Y, the centre the middle of the bounding box.
//   - poly: an even number of values, at least six. The corner is the
//     bounding-box minimum, the centre the area-weighted centroid.
//   - anything else: the whole-image default area. Only the centre is
//     defined, derived from the rendered size of the image using the map.
//
// Lists with two values or fewer, and lists that do not fit their shape,
// produce NoShape whose offset is always zero. Nothing in this package
// returns an error: bad input degrades to the zero offset.
//
// # Default area centre
//
// The centre of a default area is reported as (height/2, width/2), with
// the axes swapped. Consumers written against that layout depend on it, so
// it is kept unless WithUprightDefaultCenter is given.
//
// # DOM access
//
// AreaOffset works on elements of any document model through the DOM
// interface, which needs attribute lookup, the enclosing <map>, the element
// referencing that map, and the rendered size of an element. See package
// htmlmap for an implementation over parsed HTML.
//
// # Coordinate System
//
// Coordinates follow the image convention used throughout this module:
// origin at the top-left, X grows rightward and Y grows downward.
package areamap
