package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/model"
)

// rayEpsilon rejects ray/triangle intersections that are parallel or behind
// the ray origin within numeric noise.
const rayEpsilon = 1e-12

// MeshRaycaster is a brute-force Raycaster over the triangle meshes of one
// instance. Every query walks all triangles of all cached volumes; adequate
// for editor-scale meshes, and the natural place to hang an acceleration
// structure later.
type MeshRaycaster struct {
	entries []meshEntry
}

type meshEntry struct {
	key      TrKey
	mesh     *model.TriMesh
	world    mgl64.Mat4
	worldInv mgl64.Mat4
}

// NewMeshRaycaster returns an empty raycaster; call Actualize before querying.
func NewMeshRaycaster() *MeshRaycaster {
	return &MeshRaycaster{}
}

// Actualize rebuilds the per-volume caches for inst, skipping volumes matched
// by filter. When meshes is non-nil it overrides the volume meshes by ID.
func (r *MeshRaycaster) Actualize(inst *model.Instance, filter Filter, meshes map[int]*model.TriMesh) {
	r.entries = r.entries[:0]
	if inst == nil || inst.Object == nil {
		return
	}
	for _, v := range inst.Object.Volumes {
		if filter != nil && filter.Skip(v.ID) {
			continue
		}
		mesh := v.Mesh
		if meshes != nil {
			if m, ok := meshes[v.ID]; ok {
				mesh = m
			}
		}
		if mesh == nil || len(mesh.Faces) == 0 {
			continue
		}
		world := inst.Transform.Mul4(v.Transform)
		r.entries = append(r.entries, meshEntry{
			key:      TrKey{Volume: v.ID},
			mesh:     mesh,
			world:    world,
			worldInv: world.Inv(),
		})
	}
}

// ClosestHit returns the nearest forward intersection of the world-space ray
// with a cached, non-excluded volume, or nil. The hit is in the owning
// volume's local space; candidates across volumes are compared in world space.
func (r *MeshRaycaster) ClosestHit(origin, dir mgl64.Vec3, filter Filter) *Hit {
	var best *Hit
	bestWorldSq := math.Inf(1)
	for i := range r.entries {
		e := &r.entries[i]
		if filter != nil && filter.Skip(e.key.Volume) {
			continue
		}
		localOrigin := e.worldInv.Mul4x1(origin.Vec4(1)).Vec3()
		localDir := e.worldInv.Mul4x1(dir.Vec4(0)).Vec3()
		for f := range e.mesh.Faces {
			a, b, c := e.mesh.Triangle(f)
			t, ok := rayTriangle(localOrigin, localDir, a, b, c)
			if !ok {
				continue
			}
			p := localOrigin.Add(localDir.Mul(t))
			worldP := e.world.Mul4x1(p.Vec4(1)).Vec3()
			worldSq := worldP.Sub(origin).Dot(worldP.Sub(origin))
			if worldSq >= bestWorldSq {
				continue
			}
			bestWorldSq = worldSq
			d := p.Sub(localOrigin)
			best = &Hit{
				TrKey:           e.key,
				Position:        p,
				Normal:          b.Sub(a).Cross(c.Sub(a)).Normalize(),
				SquaredDistance: d.Dot(d),
			}
		}
	}
	return best
}

// Closest returns the nearest surface point to the world-space query point
// across all cached volumes, or nil when no geometry is cached.
func (r *MeshRaycaster) Closest(point mgl64.Vec3) *ClosePoint {
	var best *ClosePoint
	bestWorldSq := math.Inf(1)
	for i := range r.entries {
		e := &r.entries[i]
		localPoint := e.worldInv.Mul4x1(point.Vec4(1)).Vec3()
		for f := range e.mesh.Faces {
			a, b, c := e.mesh.Triangle(f)
			p := closestOnTriangle(localPoint, a, b, c)
			worldP := e.world.Mul4x1(p.Vec4(1)).Vec3()
			worldSq := worldP.Sub(point).Dot(worldP.Sub(point))
			if worldSq >= bestWorldSq {
				continue
			}
			bestWorldSq = worldSq
			d := p.Sub(localPoint)
			best = &ClosePoint{
				TrKey:           e.key,
				Point:           p,
				SquaredDistance: d.Dot(d),
			}
		}
	}
	return best
}

// Transformation resolves a query key to the local-to-world transform cached
// by the last Actualize. Unknown keys yield the identity.
func (r *MeshRaycaster) Transformation(key TrKey) mgl64.Mat4 {
	for i := range r.entries {
		if r.entries[i].key == key {
			return r.entries[i].world
		}
	}
	return mgl64.Ident4()
}

// rayTriangle is the Moller-Trumbore ray/triangle test. Returns the ray
// parameter of the intersection and whether a forward hit exists.
func rayTriangle(origin, dir, a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// closestOnTriangle returns the point of triangle abc nearest to p
// (Ericson, Real-Time Collision Detection, 5.1.5).
func closestOnTriangle(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		return b.Add(c.Sub(b).Mul((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denom := 1 / (va + vb + vc)
	return a.Add(ab.Mul(vb * denom)).Add(ac.Mul(vc * denom))
}
