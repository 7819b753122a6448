package views

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/fractals/geometry"
)

//go:embed shaders/mesh.vert
var meshVertexShader string

//go:embed shaders/mesh.frag
var meshFragmentShader string

// SierpinskiView draws the sierpinski triangle as an indexed triangle list.
type SierpinskiView struct {
	sierpinski geometry.Sierpinski
}

func (v *SierpinskiView) Name() string           { return "Sierpinski Triangle" }
func (v *SierpinskiView) Dynamic() bool          { return false }
func (v *SierpinskiView) DefaultDepth() int      { return 2 }
func (v *SierpinskiView) MaxDepth() int          { return geometry.MaxDepth }
func (v *SierpinskiView) VertexShader() string   { return meshVertexShader }
func (v *SierpinskiView) FragmentShader() string { return meshFragmentShader }

func (v *SierpinskiView) Draw(s Settings) (DrawList, error) {
	vertices, indices, err := v.sierpinski.Mesh(s.Depth)
	if err != nil {
		return nil, err
	}
	return Mesh{Vertices: vertices, Indices: indices}, nil
}

func (v *SierpinskiView) Uniforms(s Settings, viewport mgl32.Vec2) interface{} {
	return struct {
		Ratio float32 `uniform:"ratio"`
	}{
		Ratio: viewport.Y() / viewport.X(),
	}
}

func (v *SierpinskiView) Describe(s Settings) string {
	return fmt.Sprintf("Painted triangle count: %v", geometry.TriangleCount(s.Depth))
}
