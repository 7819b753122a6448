package geometry

import "github.com/go-gl/mathgl/mgl32"

// TriangleRef is one triangle's corners as indices into the shared vertex
// pool. Refs are never rewritten; the pool only grows, so a ref stays valid
// for the life of its generator.
type TriangleRef struct {
	L, R, U uint32
}

// Sierpinski generates sierpinski triangle meshes. All depths share one
// append-only vertex pool; each cached level is the triangle list for that
// depth only. The zero value is ready to use; depth 0 is the seed triangle.
type Sierpinski struct {
	vertices []mgl32.Vec2
	levels   [][]TriangleRef
}

// TriangleCount returns the number of triangles at the given depth.
func TriangleCount(depth int) int {
	count := 1
	for i := 0; i < depth; i++ {
		count *= 3
	}
	return count
}

// PoolLen returns how much of the vertex pool the levels through the given
// depth occupy.
func PoolLen(depth int) int {
	return (TriangleCount(depth) + 1) * 3 / 2
}

// Ensure computes any missing levels in [0, depth]. Subdividing a triangle
// appends its three edge midpoints to the pool and replaces it with the
// three corner triangles; the central hole is never emitted.
func (s *Sierpinski) Ensure(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if len(s.levels) == 0 {
		seed := Seed()
		s.vertices = append(s.vertices, seed[:]...)
		s.levels = append(s.levels, []TriangleRef{{L: 0, R: 1, U: 2}})
	}
	for d := len(s.levels); d <= depth; d++ {
		prev := s.levels[d-1]
		next := make([]TriangleRef, 0, len(prev)*3)
		for _, t := range prev {
			i := uint32(len(s.vertices))
			l := s.vertices[t.L]
			r := s.vertices[t.R]
			u := s.vertices[t.U]
			s.vertices = append(s.vertices,
				l.Add(u).Mul(0.5), // i
				r.Add(u).Mul(0.5), // i + 1
				l.Add(r).Mul(0.5), // i + 2
			)
			next = append(next,
				TriangleRef{L: t.L, R: i + 2, U: i},
				TriangleRef{L: i + 2, R: t.R, U: i + 1},
				TriangleRef{L: i, R: i + 1, U: t.U},
			)
		}
		s.levels = append(s.levels, next)
	}
	return nil
}

// Triangles returns the triangle list for exactly the given depth, computing
// it first if needed. The returned slice aliases the cache and must not be
// modified.
func (s *Sierpinski) Triangles(depth int) ([]TriangleRef, error) {
	if err := s.Ensure(depth); err != nil {
		return nil, err
	}
	return s.levels[depth], nil
}

// Mesh returns the vertex-pool prefix covering the given depth and the
// depth's triangles flattened to a raw index list. The vertex slice aliases
// the pool and must not be modified.
func (s *Sierpinski) Mesh(depth int) ([]mgl32.Vec2, []uint32, error) {
	tris, err := s.Triangles(depth)
	if err != nil {
		return nil, nil, err
	}
	indices := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		indices = append(indices, t.L, t.R, t.U)
	}
	return s.vertices[:PoolLen(depth)], indices, nil
}
