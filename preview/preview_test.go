package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
)

func squareLoop() *extrusion.Loop {
	attrs := extrusion.NewAttributes(extrusion.RoleExternalPerimeter, 0.08, 0.45, 0.2)
	return extrusion.NewLoop(toolpath.NewRectangle(0, 0, 10, 10), attrs, extrusion.LoopDefault)
}

func assertColor(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2, "R")
	assert.InDelta(t, want.G, got.G, 2, "G")
	assert.InDelta(t, want.B, got.B, 2, "B")
	assert.InDelta(t, want.A, got.A, 2, "A")
}

func TestRender(t *testing.T) {
	loop := squareLoop()
	bb, err := Bounds(loop)
	require.NoError(t, err)

	img, err := Render(loop, bb, WithScale(10), WithMargin(10))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 120), img.Bounds())

	want := RoleColor(extrusion.RoleExternalPerimeter)
	// Bottom edge at y=0 mm: ten pixels above the lower border.
	assertColor(t, want, img.RGBAAt(60, 110))
	assertColor(t, want, img.RGBAAt(10, 60))
	assert.Equal(t, color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}, img.RGBAAt(60, 60))
	assert.Equal(t, color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}, img.RGBAAt(1, 1))
}

func TestRenderSpeedShading(t *testing.T) {
	loop := squareLoop()
	bb, err := Bounds(loop)
	require.NoError(t, err)

	img, err := Render(loop, bb, WithScale(10), WithMargin(10),
		WithBackground(color.Black),
		WithSpeed(func(*extrusion.Path) float64 { return 0 }))
	require.NoError(t, err)
	base := RoleColor(extrusion.RoleExternalPerimeter)
	assertColor(t, shade(base, 0), img.RGBAAt(60, 110))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(60, 60))
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, shade(c, 1))
	assert.Equal(t, c, shade(c, 7))
	assert.Equal(t, color.RGBA{R: 80, G: 40, B: 20, A: 255}, shade(c, 0))
	assert.Equal(t, shade(c, 0), shade(c, -1))
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(extrusion.NewCollection(), toolpath.BoundingBox{})
	require.ErrorIs(t, err, ErrEmpty)

	bb, err := Bounds(extrusion.NewCollection())
	require.NoError(t, err)
	assert.False(t, bb.Defined)
}

func TestRoleColor(t *testing.T) {
	assert.Equal(t, unknownColor, RoleColor(extrusion.ModSolid|extrusion.ModSkirt))
	assert.NotEqual(t, RoleColor(extrusion.RolePerimeter), RoleColor(extrusion.RoleExternalPerimeter))
}
