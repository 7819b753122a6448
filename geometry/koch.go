package geometry

import "github.com/go-gl/mathgl/mgl32"

// Variant selects which side of an edge the Koch apex is erected on.
type Variant int

const (
	// Snowflake points apexes away from the polygon interior.
	Snowflake Variant = iota
	// Antisnowflake points apexes into the interior.
	Antisnowflake
)

// Koch generates Koch snowflake polylines one recursion level at a time.
// The zero value with the wanted Variant is ready to use; the seed triangle
// is depth 0. Levels are never recomputed or mutated once cached.
type Koch struct {
	Variant Variant
	levels  [][]mgl32.Vec2
}

// PointCount returns the number of points in the level at the given depth;
// drawn as a closed loop it is also the line count.
func PointCount(depth int) int {
	return 3 << (2 * depth)
}

// Ensure computes any missing levels in [0, depth], each derived from the
// level before it.
func (k *Koch) Ensure(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if len(k.levels) == 0 {
		seed := Seed()
		k.levels = append(k.levels, seed[:])
	}
	for d := len(k.levels); d <= depth; d++ {
		k.levels = append(k.levels, k.subdivide(k.levels[d-1]))
	}
	return nil
}

// LineLoop returns the closed polyline for exactly the given depth,
// computing it first if needed. The returned slice aliases the cache and
// must not be modified.
func (k *Koch) LineLoop(depth int) ([]mgl32.Vec2, error) {
	if err := k.Ensure(depth); err != nil {
		return nil, err
	}
	return k.levels[depth], nil
}

// subdivide replaces every edge (s, e) of the loop with s, l, m, r;
// e becomes the s of the next edge's replacement.
//
//	s---l\   /r---e
//	      \ /
//	       m
func (k *Koch) subdivide(prev []mgl32.Vec2) []mgl32.Vec2 {
	next := make([]mgl32.Vec2, 0, len(prev)*4)
	for i, s := range prev {
		e := prev[(i+1)%len(prev)]
		l := e.Add(s.Mul(2)).Mul(1.0 / 3.0)
		r := s.Add(e.Mul(2)).Mul(1.0 / 3.0)
		next = append(next, s, l, k.apex(s, e), r)
	}
	return next
}

// apex is the tip of the equilateral triangle erected over the middle third
// of (s, e): the edge midpoint displaced perpendicular to the edge by
// |e-s|/(2√3). The antisnowflake displaces to the opposite side.
func (k *Koch) apex(s, e mgl32.Vec2) mgl32.Vec2 {
	mid := s.Add(e).Mul(0.5)
	offset := mgl32.Vec2{
		(e.Y() - s.Y()) / (2 * sqrt3),
		(s.X() - e.X()) / (2 * sqrt3),
	}
	if k.Variant == Antisnowflake {
		return mid.Sub(offset)
	}
	return mid.Add(offset)
}
