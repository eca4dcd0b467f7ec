package preview

import (
	"image/color"

	"github.com/gogpu/toolpath/extrusion"
)

type options struct {
	scale      float64
	margin     float64
	background color.Color
	speed      func(*extrusion.Path) float64
}

func defaultOptions() options {
	return options{
		scale:      20,
		margin:     10,
		background: color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
	}
}

// Option configures Render.
type Option func(*options)

// WithScale sets the resolution in pixels per mm.
func WithScale(pxPerMM float64) Option {
	return func(o *options) {
		if pxPerMM > 0 {
			o.scale = pxPerMM
		}
	}
}

// WithMargin sets the border around the framed area, in pixels.
func WithMargin(px float64) Option {
	return func(o *options) {
		if px >= 0 {
			o.margin = px
		}
	}
}

// WithBackground sets the background colour.
func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

// WithSpeed shades each path by the speed ratio fn returns for it, in
// [0, 1].
func WithSpeed(fn func(*extrusion.Path) float64) Option {
	return func(o *options) { o.speed = fn }
}
