// Package geometry generates the vertex data for the recursive fractals.
//
// Each generator caches every level it has ever computed and derives new
// levels only from the last cached one, so stepping the depth up and down
// never recomputes anything.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxDepth is the deepest recursion level any generator will compute.
const MaxDepth = 10

// ErrInvalidDepth is returned for depths outside [0, MaxDepth]. The UI clamps
// before asking, so hitting this is a bug in the caller, not a user error.
var ErrInvalidDepth = errors.New("recursion depth out of range")

var sqrt3 = float32(math.Sqrt(3))

// Seed returns the equilateral triangle all generators subdivide from.
func Seed() [3]mgl32.Vec2 {
	return [3]mgl32.Vec2{
		{-0.8, -0.8 / sqrt3},
		{0.8, -0.8 / sqrt3},
		{0, 1.6 / sqrt3},
	}
}

func checkDepth(depth int) error {
	if depth < 0 || depth > MaxDepth {
		return fmt.Errorf("%w: %v", ErrInvalidDepth, depth)
	}
	return nil
}
