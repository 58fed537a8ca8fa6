package areamap

// Offset is the position of an area relative to its image.
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Size is the rendered size of an element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Option adjusts how shapes are built.
type Option func(*options)

type options struct {
	uprightDefault bool
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithUprightDefaultCenter reports the centre of a default area as
// (width/2, height/2).
func WithUprightDefaultCenter() Option {
	return func(o *options) { o.uprightDefault = true }
}

// WithTransposedDefaultCenter selects between the swapped default centre
// (true) and the upright one (false). It exists for configuration code that
// holds the choice as a boolean.
func WithTransposedDefaultCenter(transposed bool) Option {
	return func(o *options) { o.uprightDefault = !transposed }
}

// ComputeOffset returns the offset of an area described by kind and coords.
// host is the rendered size of the image using the map; it is only read for
// the centre of a default area and may be nil.
func ComputeOffset(kind ShapeKind, coords []float64, center bool, host *Size, opts ...Option) Offset {
	var sizer HostSizer
	if host != nil {
		size := *host
		sizer = func() (Size, bool) { return size, true }
	}
	return NewShape(kind, coords, opts...).Offset(center, sizer)
}
