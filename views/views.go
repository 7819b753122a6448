// Package views holds the fractal views the application can display,
// registered in a fixed order; the windows address them by index.
package views

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stewi1014/fractals/geometry"
)

// View is one fractal in the registry.
type View interface {
	Name() string

	// Dynamic views are repainted continuously.
	Dynamic() bool

	VertexShader() string
	FragmentShader() string

	// Draw produces the geometry for the given settings. Static views are
	// only asked again when the settings change.
	Draw(s Settings) (DrawList, error)

	// Uniforms returns a struct whose `uniform`-tagged fields are uploaded
	// before drawing. viewport is the drawable size in pixels.
	Uniforms(s Settings, viewport mgl32.Vec2) interface{}

	// Describe returns the status line shown in the config window.
	Describe(s Settings) string
}

// GeometryView is a View whose geometry is driven by a recursion depth.
type GeometryView interface {
	View
	DefaultDepth() int
	MaxDepth() int
}

// PixelView is a View that can be rendered on the CPU, one pixel at a time.
// pos is in view coordinates, [-1, 1] across the image's short axis.
type PixelView interface {
	View
	GetPixel(s Settings, pos mgl64.Vec2) mgl32.Vec3
}

// Settings is the full set of user-adjustable parameters. It travels from
// the config window to the render window as a single gob message.
type Settings struct {
	Depth int

	Julia JuliaSettings
	Clock ClockSettings
}

type JuliaSettings struct {
	Center mgl64.Vec2
	Zoom   float64
	C      mgl64.Vec2
	Power  int32
}

type ClockSettings struct {
	Paused bool
	// Time is seconds since midnight; only read while paused.
	Time float64
	// ZoneOffset is seconds east of UTC.
	ZoneOffset      float64
	Zoom            float32
	Depth           int
	StartLineWidth  float32
	LengthFactor    float32
	LuminanceFactor float32
	WidthFactor     float32
}

// DefaultSettings returns the state both windows start from.
func DefaultSettings() Settings {
	_, zone := time.Now().Zone()
	return Settings{
		Depth: 6,
		Julia: JuliaSettings{
			Zoom:  1,
			C:     mgl64.Vec2{0.3, 0.5},
			Power: 2,
		},
		Clock: ClockSettings{
			ZoneOffset:      float64(zone),
			Zoom:            0.25,
			Depth:           9,
			StartLineWidth:  2.5,
			LengthFactor:    0.8,
			LuminanceFactor: 0.8,
			WidthFactor:     0.9,
		},
	}
}

// DrawList is one renderable payload. The renderer switches on the concrete
// type to pick the vertex layout and draw mode.
type DrawList interface {
	isDrawList()
}

// LineLoop is a closed polyline drawn in a single color.
type LineLoop struct {
	Vertices []mgl32.Vec2
}

// Lines is a list of independent segments, two vertices each.
type Lines struct {
	Vertices []LineVertex
}

type LineVertex struct {
	Pos mgl32.Vec2
	Lum float32
	// Width is only honored by the CPU rasterizer.
	Width float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []mgl32.Vec2
	Indices  []uint32
}

// Surface covers the whole viewport; the fragment shader does the work.
type Surface struct{}

func (LineLoop) isDrawList() {}
func (Lines) isDrawList()    {}
func (Mesh) isDrawList()     {}
func (Surface) isDrawList()  {}

var views []View

// Registration happens in one place so the indices the windows and gob
// messages refer to don't depend on file names.
func init() {
	Register(&KochView{
		name: "Koch Snowflake",
		koch: geometry.Koch{Variant: geometry.Snowflake},
	})
	Register(&KochView{
		name: "Koch Antisnowflake",
		koch: geometry.Koch{Variant: geometry.Antisnowflake},
	})
	Register(&SierpinskiView{})
	Register(&JuliaView{})
	Register(&ClockView{})
}

func Register(v View) {
	views = append(views, v)
}

func NumViews() int {
	return len(views)
}

func GetView(i int) View {
	return views[i]
}
