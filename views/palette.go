package views

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteSize must match the palette array length in julia.frag.
const PaletteSize = 12

// NullColour is drawn where iteration never escapes.
var NullColour = mgl32.Vec3{0.1, 0.1, 0.1}

// Palette returns the iteration colors shared by the julia shader and the
// CPU export path.
func Palette() [PaletteSize]mgl32.Vec3 {
	var p [PaletteSize]mgl32.Vec3
	for i := range p {
		c := colorful.Hsv(float64(i)*360/PaletteSize, 0.9, 1)
		p[i] = mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
	}
	return p
}
