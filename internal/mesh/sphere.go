package mesh

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultStacks  = 18
	DefaultSectors = 36

	// FloatsPerVertex is position (3) followed by normal (3)
	FloatsPerVertex = 6
	// VertexStride is the byte stride of one interleaved vertex
	VertexStride = FloatsPerVertex * 4
	// NormalOffset is the byte offset of the normal inside a vertex
	NormalOffset = 3 * 4
)

var (
	ErrInvalidSubdivision = errors.New("sphere needs at least one stack and one sector")
	ErrTooManyVertices    = errors.New("sphere vertex count overflows uint32 indices")
)

// Sphere is an indexed unit sphere centered at the origin.
// Vertices are interleaved x, y, z, nx, ny, nz.
type Sphere struct {
	Stacks   int
	Sectors  int
	Vertices []float32
	Indices  []uint32
}

// GenerateSphere builds a latitude/longitude sphere with stacks+1 rings of
// sectors+1 points each. The first and last column of every ring coincide
// so that each ring can be indexed without wrapping.
func GenerateSphere(stacks, sectors int) (*Sphere, error) {
	if stacks < 1 || sectors < 1 {
		return nil, fmt.Errorf("%w: stacks=%d sectors=%d", ErrInvalidSubdivision, stacks, sectors)
	}
	vertexCount := uint64(stacks+1) * uint64(sectors+1)
	if vertexCount > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d vertices", ErrTooManyVertices, vertexCount)
	}

	s := &Sphere{
		Stacks:   stacks,
		Sectors:  sectors,
		Vertices: make([]float32, 0, int(vertexCount)*FloatsPerVertex),
		Indices:  make([]uint32, 0, stacks*sectors*6),
	}

	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		sinPhi, cosPhi := math.Sincos(phi)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			sinTheta, cosTheta := math.Sincos(theta)

			x := float32(sinPhi * cosTheta)
			y := float32(sinPhi * sinTheta)
			z := float32(cosPhi)
			// on a unit sphere the normal is the position
			s.Vertices = append(s.Vertices, x, y, z, x, y, z)
		}
	}

	ring := uint32(sectors + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < sectors; j++ {
			k1 := uint32(i)*ring + uint32(j)
			k2 := k1 + ring
			s.Indices = append(s.Indices,
				k1, k2, k1+1,
				k1+1, k2, k2+1,
			)
		}
	}

	return s, nil
}

// VertexCount returns the number of interleaved vertices
func (s *Sphere) VertexCount() int {
	return len(s.Vertices) / FloatsPerVertex
}

// TriangleCount returns the number of triangles described by Indices
func (s *Sphere) TriangleCount() int {
	return len(s.Indices) / 3
}

// Position returns the position of vertex i
func (s *Sphere) Position(i int) [3]float32 {
	o := i * FloatsPerVertex
	return [3]float32{s.Vertices[o], s.Vertices[o+1], s.Vertices[o+2]}
}

// Normal returns the normal of vertex i
func (s *Sphere) Normal(i int) [3]float32 {
	o := i*FloatsPerVertex + 3
	return [3]float32{s.Vertices[o], s.Vertices[o+1], s.Vertices[o+2]}
}
