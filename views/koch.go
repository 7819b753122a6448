package views

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/fractals/geometry"
)

//go:embed shaders/line.vert
var lineVertexShader string

//go:embed shaders/line.frag
var lineFragmentShader string

// KochView draws a Koch snowflake or antisnowflake as a line loop.
type KochView struct {
	name string
	koch geometry.Koch
}

func (v *KochView) Name() string           { return v.name }
func (v *KochView) Dynamic() bool          { return false }
func (v *KochView) DefaultDepth() int      { return 6 }
func (v *KochView) MaxDepth() int          { return geometry.MaxDepth }
func (v *KochView) VertexShader() string   { return lineVertexShader }
func (v *KochView) FragmentShader() string { return lineFragmentShader }

func (v *KochView) Draw(s Settings) (DrawList, error) {
	loop, err := v.koch.LineLoop(s.Depth)
	if err != nil {
		return nil, err
	}
	return LineLoop{Vertices: loop}, nil
}

func (v *KochView) Uniforms(s Settings, viewport mgl32.Vec2) interface{} {
	return struct {
		Ratio float32 `uniform:"ratio"`
	}{
		Ratio: viewport.Y() / viewport.X(),
	}
}

func (v *KochView) Describe(s Settings) string {
	return fmt.Sprintf("Painted line count: %v", geometry.PointCount(s.Depth))
}
