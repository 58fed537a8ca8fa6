// Package imaging provides the pixel-level operations behind image-map areas.
//
// Area shapes come from package areamap; this package applies them to a
// decoded image: cropping an area's bounding region, sampling its colours,
// measuring the distance between two area offsets, and drawing every area
// of a map over the image as an overlay.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based, with the origin at the
// top-left:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Area coordinates are fractional. They are widened to whole pixels
// (floor of the minimum, ceiling of the maximum) and clipped to the image
// before any pixel is read.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. It also satisfies
// htmlmap.ImageSizer, which is how a map's rendered size falls back to the
// intrinsic size of its image. Individual image operations are stateless.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Consider using Evict() or Clear() to manage memory for
// long-running processes.
package imaging
