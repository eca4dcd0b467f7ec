// Package preview rasterizes extrusion trees for visual inspection.
//
// Paths are drawn at their extrusion width, coloured by role. A speed
// function, when given, darkens slowed down paths so dynamic overhang
// regions stand out.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
)

// ErrEmpty is returned when there is nothing to frame.
var ErrEmpty = errors.New("preview: empty bounds")

// maxSide bounds the image size in pixels.
const maxSide = 8192

var roleColors = map[extrusion.Role]color.RGBA{
	extrusion.RolePerimeter:                 {R: 0xff, G: 0xe6, B: 0x4d, A: 0xff},
	extrusion.RoleExternalPerimeter:         {R: 0xff, G: 0x7d, B: 0x38, A: 0xff},
	extrusion.RoleOverhangPerimeter:         {R: 0x1f, G: 0x1f, B: 0xff, A: 0xff},
	extrusion.RoleExternalOverhangPerimeter: {R: 0x1f, G: 0x1f, B: 0xff, A: 0xff},
	extrusion.RoleThinWall:                  {R: 0xff, G: 0xc0, B: 0x00, A: 0xff},
	extrusion.RoleInternalInfill:            {R: 0xb0, G: 0x30, B: 0x29, A: 0xff},
	extrusion.RoleSolidInfill:               {R: 0x96, G: 0x54, B: 0xcc, A: 0xff},
	extrusion.RoleTopSolidInfill:            {R: 0xf0, G: 0x40, B: 0x40, A: 0xff},
	extrusion.RoleBridgeInfill:              {R: 0x4d, G: 0x80, B: 0xba, A: 0xff},
	extrusion.RoleGapFill:                   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	extrusion.RoleSkirt:                     {R: 0x00, G: 0x87, B: 0x87, A: 0xff},
}

var unknownColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// RoleColor returns the colour paths of role r are drawn with.
func RoleColor(r extrusion.Role) color.RGBA {
	if c, ok := roleColors[r]; ok {
		return c
	}
	return unknownColor
}

// Render draws e framed on bb, which is in scaled coordinates.
func Render(e extrusion.Entity, bb toolpath.BoundingBox, opts ...Option) (*image.RGBA, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !bb.Defined {
		return nil, ErrEmpty
	}
	size := bb.Size()
	w := pixels(toolpath.Unscale(size.X)*o.scale + 2*o.margin)
	h := pixels(toolpath.Unscale(size.Y)*o.scale + 2*o.margin)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	origin := bb.Min.Unscaled()
	c := canvas{
		img: img,
		ras: vector.NewRasterizer(w, h),
		view: toolpath.Translation(o.margin, float64(h)-o.margin).
			Multiply(toolpath.Scaling(o.scale, -o.scale)).
			Multiply(toolpath.Translation(-origin.X, -origin.Y)),
		scale: o.scale,
	}
	err := extrusion.Walk(e, func(p *extrusion.Path) error {
		col := RoleColor(p.Role())
		if o.speed != nil {
			col = shade(col, o.speed(p))
		}
		c.stroke(p.Polyline.Points, p.Attributes.Width, col)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func pixels(v float64) int {
	return min(maxSide, max(1, int(math.Ceil(v))))
}

// shade darkens c towards 40% brightness as ratio falls from 1 to 0.
func shade(c color.RGBA, ratio float64) color.RGBA {
	f := 0.4 + 0.6*math.Min(1, math.Max(0, ratio))
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

type canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
	// view maps mm to image coordinates, y pointing down.
	view  toolpath.Matrix
	scale float64
}

func (c *canvas) px(v toolpath.Vec2) (float32, float32) {
	p := c.view.Apply(v)
	return float32(p.X), float32(p.Y)
}

// stroke fills one quad per segment, extended by half the width at both
// ends so joints are covered. All quads share the same winding.
func (c *canvas) stroke(pts []toolpath.Point, width float64, col color.RGBA) {
	if len(pts) < 2 {
		return
	}
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	half := math.Max(width, 1/c.scale) / 2
	for i := 0; i+1 < len(pts); i++ {
		a, e := pts[i].Unscaled(), pts[i+1].Unscaled()
		d := e.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		d = d.Div(l).Mul(half)
		n := d.Perp()
		a, e = a.Sub(d), e.Add(d)
		c.ras.MoveTo(c.px(a.Add(n)))
		c.ras.LineTo(c.px(e.Add(n)))
		c.ras.LineTo(c.px(e.Sub(n)))
		c.ras.LineTo(c.px(a.Sub(n)))
		c.ras.ClosePath()
	}
	c.ras.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// Bounds returns the box enclosing every path point of e.
func Bounds(e extrusion.Entity) (toolpath.BoundingBox, error) {
	var bb toolpath.BoundingBox
	err := extrusion.Walk(e, func(p *extrusion.Path) error {
		for _, pt := range p.Polyline.Points {
			bb.MergePoint(pt)
		}
		return nil
	})
	return bb, err
}
