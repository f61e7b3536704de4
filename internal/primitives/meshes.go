// Package primitives generates the triangle meshes used by the demo editor
// scene, both as raycastable model meshes and as uploaded raylib meshes.
// World convention is Z-up, millimeters.
package primitives

import (
	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/model"
)

// Plane returns a w by d rectangle in the XY plane at Z=0, centered at the
// origin, normal +Z.
func Plane(w, d float64) *model.TriMesh {
	hw, hd := w/2, d/2
	return &model.TriMesh{
		Vertices: []mgl64.Vec3{
			{-hw, -hd, 0}, {hw, -hd, 0}, {hw, hd, 0}, {-hw, hd, 0},
		},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

// Box returns an axis-aligned box of the given extents centered at the
// origin, faces wound outward.
func Box(sx, sy, sz float64) *model.TriMesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	return &model.TriMesh{
		Vertices: []mgl64.Vec3{
			{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
			{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
		},
		Faces: [][3]int{
			{4, 5, 6}, {4, 6, 7}, // top (+z)
			{0, 2, 1}, {0, 3, 2}, // bottom (-z)
			{0, 1, 5}, {0, 5, 4}, // front (-y)
			{2, 3, 7}, {2, 7, 6}, // back (+y)
			{1, 2, 6}, {1, 6, 5}, // right (+x)
			{3, 0, 4}, {3, 4, 7}, // left (-x)
		},
	}
}
