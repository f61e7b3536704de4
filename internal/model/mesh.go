package model

import "github.com/go-gl/mathgl/mgl64"

// TriMesh is an indexed triangle mesh in volume-local space.
type TriMesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// BoundingBox returns the axis-aligned bounds of the mesh. An empty mesh
// yields zero bounds.
func (m *TriMesh) BoundingBox() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return
}

// SizeZ returns the depth of the mesh bounds along Z.
func (m *TriMesh) SizeZ() float64 {
	min, max := m.BoundingBox()
	return max.Z() - min.Z()
}

// Triangle returns the three corner vertices of face i.
func (m *TriMesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}
