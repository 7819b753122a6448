package views

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/julia.vert
var juliaVertexShader string

//go:embed shaders/julia.frag
var juliaFragmentShader string

const (
	juliaIterations = 128
	juliaLimit      = 4
)

// JuliaView draws the julia set entirely in the fragment shader; GetPixel
// mirrors the shader for PNG export.
type JuliaView struct{}

func (v *JuliaView) Name() string           { return "Julia Set (Shader)" }
func (v *JuliaView) Dynamic() bool          { return false }
func (v *JuliaView) VertexShader() string   { return juliaVertexShader }
func (v *JuliaView) FragmentShader() string { return juliaFragmentShader }

func (v *JuliaView) Draw(s Settings) (DrawList, error) {
	return Surface{}, nil
}

func (v *JuliaView) Uniforms(s Settings, viewport mgl32.Vec2) interface{} {
	return struct {
		Viewport mgl32.Vec2              `uniform:"viewport"`
		Center   mgl64.Vec2              `uniform:"center"`
		Zoom     float64                 `uniform:"zoom"`
		C        mgl64.Vec2              `uniform:"c"`
		Power    int32                   `uniform:"power"`
		Palette  [PaletteSize]mgl32.Vec3 `uniform:"palette"`
	}{
		Viewport: viewport,
		Center:   s.Julia.Center,
		Zoom:     s.Julia.Zoom,
		C:        s.Julia.C,
		Power:    s.Julia.Power,
		Palette:  Palette(),
	}
}

func (v *JuliaView) GetPixel(s Settings, pos mgl64.Vec2) mgl32.Vec3 {
	z := complex(
		s.Julia.Center.X()+pos.X()*1.5/s.Julia.Zoom,
		s.Julia.Center.Y()+pos.Y()*1.5/s.Julia.Zoom,
	)
	c := complex(s.Julia.C.X(), s.Julia.C.Y())

	palette := Palette()
	for i := 0; i < juliaIterations; i++ {
		for n := int32(1); n < s.Julia.Power; n++ {
			z = z * z
		}
		z += c
		if real(z)*real(z)+imag(z)*imag(z) > juliaLimit {
			if i == 0 {
				return mgl32.Vec3{1, 1, 1}
			}
			return palette[i%PaletteSize]
		}
	}
	return NullColour
}

func (v *JuliaView) Describe(s Settings) string {
	return fmt.Sprintf(
		"c = %.3f%+.3fi, zoom %s",
		s.Julia.C.X(), s.Julia.C.Y(),
		zoomLabel(s.Julia.Zoom),
	)
}

func zoomLabel(zoom float64) string {
	if zoom >= 1000 {
		return fmt.Sprintf("10^%.1f", math.Log10(zoom))
	}
	return fmt.Sprintf("%.1fx", zoom)
}
