package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestRegistry(t *testing.T) {
	want := []string{
		"Koch Snowflake",
		"Koch Antisnowflake",
		"Sierpinski Triangle",
		"Julia Set (Shader)",
		"Fractal Clock",
	}
	if NumViews() != len(want) {
		t.Fatalf("%v views registered, want %v", NumViews(), len(want))
	}
	for i, name := range want {
		if GetView(i).Name() != name {
			t.Fatalf("view %v is %q, want %q", i, GetView(i).Name(), name)
		}
	}
}

func TestGeometryViewDrawLists(t *testing.T) {
	s := DefaultSettings()
	s.Depth = 2

	for i := 0; i < NumViews(); i++ {
		gv, ok := GetView(i).(GeometryView)
		if !ok {
			continue
		}
		list, err := gv.Draw(s)
		if err != nil {
			t.Fatalf("%v: %v", gv.Name(), err)
		}
		switch l := list.(type) {
		case LineLoop:
			if len(l.Vertices) != 48 {
				t.Fatalf("%v: %v points at depth 2, want 48", gv.Name(), len(l.Vertices))
			}
		case Mesh:
			if len(l.Indices) != 27 {
				t.Fatalf("%v: %v indices at depth 2, want 27", gv.Name(), len(l.Indices))
			}
		default:
			t.Fatalf("%v: unexpected draw list %T", gv.Name(), list)
		}
	}
}

func TestClockDraw(t *testing.T) {
	var clock ClockView
	s := DefaultSettings()
	s.Clock.Paused = true
	s.Clock.Time = 10*3600 + 10*60 + 30.5

	list, err := clock.Draw(s)
	if err != nil {
		t.Fatal(err)
	}
	lines, ok := list.(Lines)
	if !ok {
		t.Fatalf("unexpected draw list %T", list)
	}
	if len(lines.Vertices)%2 != 0 {
		t.Fatalf("odd vertex count %v", len(lines.Vertices))
	}

	// 3 hands plus 2·2^level tips per level until luminance quantizes to 0.
	segments := len(lines.Vertices) / 2
	wantMax := 3
	for level, tips := 1, 2; level <= s.Clock.Depth; level++ {
		tips *= 2
		wantMax += tips
	}
	if segments < 3 || segments > wantMax {
		t.Fatalf("%v segments, want between 3 and %v", segments, wantMax)
	}

	// Hands start at the origin.
	if lines.Vertices[0].Pos != (mgl32.Vec2{}) {
		t.Fatalf("first hand starts at %v", lines.Vertices[0].Pos)
	}

	want := fmt.Sprintf("Painted line count: %v, time: 10:10:30", segments)
	if !strings.HasPrefix(clock.Describe(s), want) {
		t.Fatalf("describe: %q, want prefix %q", clock.Describe(s), want)
	}
}

func TestClockPausedDrawIsStable(t *testing.T) {
	var clock ClockView
	s := DefaultSettings()
	s.Clock.Paused = true
	s.Clock.Time = 12345

	a, err := clock.Draw(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := clock.Draw(s)
	if err != nil {
		t.Fatal(err)
	}
	av, bv := a.(Lines).Vertices, b.(Lines).Vertices
	if len(av) != len(bv) {
		t.Fatalf("paused clock geometry changed size: %v then %v", len(av), len(bv))
	}
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("paused clock vertex %v moved: %v -> %v", i, av[i], bv[i])
		}
	}
}

func TestJuliaPixel(t *testing.T) {
	var julia JuliaView
	s := DefaultSettings()
	s.Julia.C = mgl64.Vec2{0, 0}

	// With c = 0 the unit disk never escapes and far points escape at once.
	if got := julia.GetPixel(s, mgl64.Vec2{0, 0}); got != NullColour {
		t.Fatalf("origin escaped: %v", got)
	}
	if got := julia.GetPixel(s, mgl64.Vec2{100, 100}); got != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("far point did not escape immediately: %v", got)
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != PaletteSize {
		t.Fatalf("palette has %v entries", len(p))
	}
	for i, c := range p {
		for _, v := range c {
			if v < 0 || v > 1 {
				t.Fatalf("palette[%v] out of range: %v", i, c)
			}
		}
		if c == NullColour {
			t.Fatalf("palette[%v] collides with the null color", i)
		}
	}
	if p[0] == p[PaletteSize/2] {
		t.Fatal("palette is not varied")
	}
}
