package geometry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSierpinskiCounts(t *testing.T) {
	var s Sierpinski
	for depth := 0; depth <= MaxDepth; depth++ {
		tris, err := s.Triangles(depth)
		if err != nil {
			t.Fatalf("Triangles(%v): %v", depth, err)
		}
		if len(tris) != TriangleCount(depth) {
			t.Fatalf("depth %v: got %v triangles, want %v", depth, len(tris), TriangleCount(depth))
		}
		if want := PoolLen(depth); len(s.vertices) != want {
			t.Fatalf("depth %v: pool has %v points, want %v", depth, len(s.vertices), want)
		}
	}
}

func TestSierpinskiDepthOneScenario(t *testing.T) {
	var s Sierpinski
	if err := s.Ensure(0); err != nil {
		t.Fatal(err)
	}
	if len(s.vertices) != 3 || len(s.levels[0]) != 1 {
		t.Fatalf("seed: %v points, %v triangles", len(s.vertices), len(s.levels[0]))
	}
	if s.levels[0][0] != (TriangleRef{L: 0, R: 1, U: 2}) {
		t.Fatalf("seed triangle %v", s.levels[0][0])
	}

	tris, err := s.Triangles(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 3 {
		t.Fatalf("got %v triangles at depth 1, want 3", len(tris))
	}
	if len(s.vertices) != 6 {
		t.Fatalf("pool grew to %v points, want 6", len(s.vertices))
	}

	want := []TriangleRef{
		{L: 0, R: 5, U: 3},
		{L: 5, R: 1, U: 4},
		{L: 3, R: 4, U: 2},
	}
	if !reflect.DeepEqual(tris, want) {
		t.Fatalf("children %v, want %v", tris, want)
	}

	seed := Seed()
	mids := []mgl32.Vec2{
		seed[0].Add(seed[2]).Mul(0.5),
		seed[1].Add(seed[2]).Mul(0.5),
		seed[0].Add(seed[1]).Mul(0.5),
	}
	for i, mid := range mids {
		if !approxEqual(s.vertices[3+i], mid) {
			t.Fatalf("midpoint %v is %v, want %v", 3+i, s.vertices[3+i], mid)
		}
	}
}

func TestSierpinskiRefsStayValid(t *testing.T) {
	var s Sierpinski
	if err := s.Ensure(6); err != nil {
		t.Fatal(err)
	}
	for depth, level := range s.levels {
		limit := uint32(PoolLen(depth))
		for _, tri := range level {
			if tri.L >= limit || tri.R >= limit || tri.U >= limit {
				t.Fatalf("depth %v ref %v exceeds its pool prefix %v", depth, tri, limit)
			}
		}
	}
}

func TestSierpinskiGrowthDoesNotMutate(t *testing.T) {
	var s Sierpinski
	verts, indices, err := s.Mesh(2)
	if err != nil {
		t.Fatal(err)
	}
	vertSnapshot := append([]mgl32.Vec2(nil), verts...)
	indexSnapshot := append([]uint32(nil), indices...)

	if err := s.Ensure(MaxDepth); err != nil {
		t.Fatal(err)
	}
	verts, indices, err = s.Mesh(2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(vertSnapshot, verts) {
		t.Fatal("growing the pool changed earlier vertices")
	}
	if !reflect.DeepEqual(indexSnapshot, indices) {
		t.Fatal("growing the cache changed an earlier level")
	}
}

func TestSierpinskiMeshExtraction(t *testing.T) {
	var s Sierpinski
	if err := s.Ensure(5); err != nil {
		t.Fatal(err)
	}
	for _, depth := range []int{3, 5, 0, 4} {
		verts, indices, err := s.Mesh(depth)
		if err != nil {
			t.Fatalf("Mesh(%v): %v", depth, err)
		}
		if len(verts) != PoolLen(depth) {
			t.Fatalf("depth %v: %v vertices, want %v", depth, len(verts), PoolLen(depth))
		}
		if len(indices) != 3*TriangleCount(depth) {
			t.Fatalf("depth %v: %v indices, want %v", depth, len(indices), 3*TriangleCount(depth))
		}
		for _, i := range indices {
			if int(i) >= len(verts) {
				t.Fatalf("depth %v: index %v outside its vertex slice", depth, i)
			}
		}
	}
}

func TestSierpinskiInvalidDepth(t *testing.T) {
	var s Sierpinski
	for _, depth := range []int{-1, MaxDepth + 1} {
		if err := s.Ensure(depth); !errors.Is(err, ErrInvalidDepth) {
			t.Fatalf("Ensure(%v) = %v, want ErrInvalidDepth", depth, err)
		}
		if _, _, err := s.Mesh(depth); !errors.Is(err, ErrInvalidDepth) {
			t.Fatalf("Mesh(%v) = %v, want ErrInvalidDepth", depth, err)
		}
	}
}
