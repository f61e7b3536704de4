package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-editor/internal/model"
)

// cached holds the uploaded render mesh and material for one model mesh,
// plus the backing slices so the GPU-visible data is not collected.
type cached struct {
	mesh     rl.Mesh
	mtl      rl.Material
	vertices []float32
	normals  []float32
}

// Registry uploads model meshes to the GPU on first use and caches the
// result, so GPU resources are allocated after the window/GL context exists.
type Registry struct {
	cache map[*model.TriMesh]*cached
}

// NewRegistry returns an empty registry; meshes are uploaded on first Draw.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[*model.TriMesh]*cached)}
}

// Draw renders tri with the given world transform and tint.
func (r *Registry) Draw(tri *model.TriMesh, transform rl.Matrix, tint rl.Color) {
	c := r.ensure(tri)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// ensure uploads tri as a flat-shaded raylib mesh if not yet cached.
func (r *Registry) ensure(tri *model.TriMesh) *cached {
	if c, ok := r.cache[tri]; ok {
		return c
	}
	count := len(tri.Faces) * 3
	c := &cached{
		vertices: make([]float32, 0, count*3),
		normals:  make([]float32, 0, count*3),
	}
	for i := range tri.Faces {
		a, b, cc := tri.Triangle(i)
		n := b.Sub(a).Cross(cc.Sub(a)).Normalize()
		for _, v := range [3][3]float64{
			{a.X(), a.Y(), a.Z()}, {b.X(), b.Y(), b.Z()}, {cc.X(), cc.Y(), cc.Z()},
		} {
			c.vertices = append(c.vertices, float32(v[0]), float32(v[1]), float32(v[2]))
			c.normals = append(c.normals, float32(n.X()), float32(n.Y()), float32(n.Z()))
		}
	}
	c.mesh.VertexCount = int32(count)
	c.mesh.TriangleCount = int32(len(tri.Faces))
	c.mesh.Vertices = &c.vertices[0]
	c.mesh.Normals = &c.normals[0]
	rl.UploadMesh(&c.mesh, false)
	c.mtl = rl.LoadMaterialDefault()
	r.cache[tri] = c
	return c
}
