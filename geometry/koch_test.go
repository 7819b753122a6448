package geometry

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

func approxEqual(a, b mgl32.Vec2) bool {
	return math.Abs(float64(a.X()-b.X())) < epsilon &&
		math.Abs(float64(a.Y()-b.Y())) < epsilon
}

func TestKochPointCounts(t *testing.T) {
	var k Koch
	for depth := 0; depth <= MaxDepth; depth++ {
		loop, err := k.LineLoop(depth)
		if err != nil {
			t.Fatalf("LineLoop(%v): %v", depth, err)
		}
		if len(loop) != PointCount(depth) {
			t.Fatalf("depth %v: got %v points, want %v", depth, len(loop), PointCount(depth))
		}
	}
	if PointCount(0) != 3 || PointCount(1) != 12 || PointCount(2) != 48 {
		t.Fatalf("PointCount formula broken: %v %v %v", PointCount(0), PointCount(1), PointCount(2))
	}
}

func TestKochDepthOneScenario(t *testing.T) {
	var k Koch
	loop, err := k.LineLoop(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(loop) != 12 {
		t.Fatalf("got %v points at depth 1, want 12", len(loop))
	}

	// First edge is the bottom of the seed; its apex must hang below it.
	seed := Seed()
	base := seed[0].Y()
	if !approxEqual(loop[0], seed[0]) {
		t.Fatalf("level does not start at the seed corner: %v", loop[0])
	}
	l := loop[1]
	m := loop[2]
	r := loop[3]
	if !approxEqual(l, mgl32.Vec2{-0.8 / 3, base}) {
		t.Fatalf("left third point %v", l)
	}
	if !approxEqual(r, mgl32.Vec2{0.8 / 3, base}) {
		t.Fatalf("right third point %v", r)
	}
	wantY := base - 1.6/(2*sqrt3)
	if !approxEqual(m, mgl32.Vec2{0, wantY}) {
		t.Fatalf("apex %v, want (0, %v)", m, wantY)
	}
}

func TestKochEnsureIdempotent(t *testing.T) {
	var once, twice Koch
	if err := once.Ensure(4); err != nil {
		t.Fatal(err)
	}
	if err := twice.Ensure(4); err != nil {
		t.Fatal(err)
	}
	if err := twice.Ensure(4); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once.levels, twice.levels) {
		t.Fatal("repeated Ensure changed the cache")
	}
}

func TestKochGrowthDoesNotMutate(t *testing.T) {
	var k Koch
	loop, err := k.LineLoop(3)
	if err != nil {
		t.Fatal(err)
	}
	snapshot := append([]mgl32.Vec2(nil), loop...)

	if err := k.Ensure(MaxDepth); err != nil {
		t.Fatal(err)
	}
	again, err := k.LineLoop(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(snapshot, again) {
		t.Fatal("growing the cache changed an earlier level")
	}
}

func TestKochEnsureOrderIndependent(t *testing.T) {
	var outOfOrder, direct Koch
	if err := outOfOrder.Ensure(5); err != nil {
		t.Fatal(err)
	}
	if err := outOfOrder.Ensure(3); err != nil {
		t.Fatal(err)
	}
	a, err := outOfOrder.LineLoop(3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := direct.LineLoop(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("extraction depends on the order of Ensure calls")
	}
}

func TestKochVariantsMirror(t *testing.T) {
	snow := Koch{Variant: Snowflake}
	anti := Koch{Variant: Antisnowflake}
	s, err := snow.LineLoop(1)
	if err != nil {
		t.Fatal(err)
	}
	a, err := anti.LineLoop(1)
	if err != nil {
		t.Fatal(err)
	}

	// Apexes sit at indices 2, 6 and 10; each pair must be mirrored across
	// its edge midpoint, everything else identical.
	for i := range s {
		if i%4 == 2 {
			mid := s[i-1].Add(s[i+1]).Mul(0.5)
			mirrored := mid.Mul(2).Sub(s[i])
			if !approxEqual(a[i], mirrored) {
				t.Fatalf("apex %v not mirrored: snowflake %v anti %v", i, s[i], a[i])
			}
			if approxEqual(a[i], s[i]) {
				t.Fatalf("apex %v identical in both variants", i)
			}
		} else if !approxEqual(a[i], s[i]) {
			t.Fatalf("non-apex point %v differs between variants", i)
		}
	}
}

func TestKochInvalidDepth(t *testing.T) {
	var k Koch
	for _, depth := range []int{-1, MaxDepth + 1, 100} {
		if err := k.Ensure(depth); !errors.Is(err, ErrInvalidDepth) {
			t.Fatalf("Ensure(%v) = %v, want ErrInvalidDepth", depth, err)
		}
		if _, err := k.LineLoop(depth); !errors.Is(err, ErrInvalidDepth) {
			t.Fatalf("LineLoop(%v) = %v, want ErrInvalidDepth", depth, err)
		}
	}
	if len(k.levels) > 1 {
		t.Fatal("failed Ensure grew the cache")
	}
}
