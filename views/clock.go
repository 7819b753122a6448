package views

import (
	_ "embed"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/clock.vert
var clockVertexShader string

//go:embed shaders/clock.frag
var clockFragmentShader string

// ClockMaxDepth bounds the hand recursion, not the geometry cache.
const ClockMaxDepth = 14

// ClockView draws an analog clock whose second and minute hands recursively
// sprout scaled copies of themselves from their tips.
type ClockView struct{}

func (v *ClockView) Name() string           { return "Fractal Clock" }
func (v *ClockView) Dynamic() bool          { return true }
func (v *ClockView) VertexShader() string   { return clockVertexShader }
func (v *ClockView) FragmentShader() string { return clockFragmentShader }

// Time returns the seconds since midnight the clock should display.
func (v *ClockView) Time(s Settings) float64 {
	if s.Clock.Paused {
		return s.Clock.Time
	}
	now := time.Now().UTC()
	h, m, sec := now.Clock()
	t := float64((h*60+m)*60+sec) + float64(now.Nanosecond())*1e-9
	return math.Mod(t+s.Clock.ZoneOffset+24*60*60, 24*60*60)
}

type clockHand struct {
	length float32
	angle  float32
	vec    mgl32.Vec2
}

func newClockHand(length, angle float32) clockHand {
	return clockHand{
		length: length,
		angle:  angle,
		vec: mgl32.Vec2{
			length * float32(math.Cos(float64(angle))),
			length * float32(math.Sin(float64(angle))),
		},
	}
}

func (v *ClockView) Draw(s Settings) (DrawList, error) {
	t := v.Time(s)
	c := s.Clock

	angleFromPeriod := func(period float64) float32 {
		return float32(2*math.Pi*math.Mod(t, period)/period) - math.Pi/2
	}

	hands := [3]clockHand{
		newClockHand(c.LengthFactor, angleFromPeriod(60)),
		newClockHand(c.LengthFactor, angleFromPeriod(60*60)),
		newClockHand(0.5, angleFromPeriod(12*60*60)),
	}

	width := c.StartLineWidth
	var list Lines
	segment := func(a, b mgl32.Vec2, lum float32) {
		list.Vertices = append(list.Vertices,
			LineVertex{Pos: a, Lum: lum, Width: width},
			LineVertex{Pos: b, Lum: lum, Width: width},
		)
	}

	type node struct {
		pos mgl32.Vec2
		dir mgl32.Vec2
	}

	var nodes []node
	for i, hand := range hands {
		segment(mgl32.Vec2{}, hand.vec, 1)
		if i < 2 {
			nodes = append(nodes, node{pos: hand.vec, dir: hand.vec})
		}
	}

	// Each level hangs a rotated, scaled copy of the second and minute
	// hands off every tip from the previous level. The rotation is relative
	// to the hour hand so the whole figure turns with the time.
	rotors := [2]mgl32.Mat2{
		mgl32.Rotate2D(hands[0].angle - hands[2].angle + math.Pi).Mul(hands[0].length),
		mgl32.Rotate2D(hands[1].angle - hands[2].angle + math.Pi).Mul(hands[1].length),
	}

	luminance := float32(0.7)
	newNodes := make([]node, 0, len(nodes)*2)
	for level := 0; level < c.Depth; level++ {
		newNodes = newNodes[:0]

		luminance *= c.LuminanceFactor
		width *= c.WidthFactor
		if math.Round(float64(luminance)*255) == 0 {
			break
		}

		for _, rotor := range rotors {
			for _, a := range nodes {
				dir := rotor.Mul2x1(a.dir)
				b := node{pos: a.pos.Add(dir), dir: dir}
				segment(a.pos, b.pos, luminance)
				newNodes = append(newNodes, b)
			}
		}

		nodes, newNodes = newNodes, nodes
	}

	return list, nil
}

func (v *ClockView) Uniforms(s Settings, viewport mgl32.Vec2) interface{} {
	return struct {
		Ratio float32 `uniform:"ratio"`
		Zoom  float32 `uniform:"zoom"`
	}{
		Ratio: viewport.Y() / viewport.X(),
		Zoom:  s.Clock.Zoom,
	}
}

func (v *ClockView) Describe(s Settings) string {
	t := v.Time(s)
	list, _ := v.Draw(s)
	lines, _ := list.(Lines)
	return fmt.Sprintf(
		"Painted line count: %v, time: %02d:%02d:%02d.%02d",
		len(lines.Vertices)/2,
		int(t/3600)%24,
		int(t/60)%60,
		int(t)%60,
		int(t*100)%100,
	)
}
