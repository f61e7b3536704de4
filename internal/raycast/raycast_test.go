package raycast

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-editor/internal/model"
)

// planeMesh is a 100x100 square in the XY plane at Z=0, normal +Z.
func planeMesh() *model.TriMesh {
	return &model.TriMesh{
		Vertices: []mgl64.Vec3{
			{-50, -50, 0}, {50, -50, 0}, {50, 50, 0}, {-50, 50, 0},
		},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

func planeInstance(instTr mgl64.Mat4) *model.Instance {
	obj := &model.Object{}
	obj.AddVolume(&model.Volume{ID: 1, Name: "plate", Part: true, Mesh: planeMesh(), Transform: mgl64.Ident4()})
	return obj.AddInstance(instTr)
}

// stubCamera returns a fixed ray for any screen position.
type stubCamera struct {
	origin, dir mgl64.Vec3
}

func (s stubCamera) Ray(mgl64.Vec2) (mgl64.Vec3, mgl64.Vec3) { return s.origin, s.dir }

// TestClosestHitPlane casts straight down at a plane and expects the hit
// point, face normal and squared distance in the volume's local space.
func TestClosestHitPlane(t *testing.T) {
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(mgl64.Ident4()), nil, nil)

	hit := r.ClosestHit(mgl64.Vec3{10, 5, 50}, mgl64.Vec3{0, 0, -1}, nil)

	require.NotNil(t, hit)
	assert.Equal(t, TrKey{Volume: 1}, hit.TrKey)
	assert.InDelta(t, 10, hit.Position.X(), 1e-9)
	assert.InDelta(t, 5, hit.Position.Y(), 1e-9)
	assert.InDelta(t, 0, hit.Position.Z(), 1e-9)
	assert.InDelta(t, 1, hit.Normal.Z(), 1e-9)
	assert.InDelta(t, 2500, hit.SquaredDistance, 1e-6)
}

// TestClosestHitMiss returns nil for a ray pointing away from all geometry.
func TestClosestHitMiss(t *testing.T) {
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(mgl64.Ident4()), nil, nil)

	hit := r.ClosestHit(mgl64.Vec3{0, 0, 50}, mgl64.Vec3{0, 0, 1}, nil)

	assert.Nil(t, hit)
}

// TestFilterSkip verifies both actualize-time and query-time exclusion.
func TestFilterSkip(t *testing.T) {
	inst := planeInstance(mgl64.Ident4())
	origin, down := mgl64.Vec3{0, 0, 10}, mgl64.Vec3{0, 0, -1}

	r := NewMeshRaycaster()
	r.Actualize(inst, SkipVolume{ID: 1}, nil)
	assert.Nil(t, r.ClosestHit(origin, down, nil))

	r.Actualize(inst, nil, nil)
	assert.Nil(t, r.ClosestHit(origin, down, SkipVolume{ID: 1}))
	assert.NotNil(t, r.ClosestHit(origin, down, nil))
}

// TestAllowed builds the drag filter: sibling parts only, never the edited
// volume and never modifiers.
func TestAllowed(t *testing.T) {
	volumes := []*model.Volume{
		{ID: 1, Part: true},
		{ID: 2, Part: true},
		{ID: 3, Part: false}, // modifier
	}

	cond := Allowed(volumes, 2)

	assert.False(t, cond.Skip(1))
	assert.True(t, cond.Skip(2))
	assert.True(t, cond.Skip(3))
	assert.True(t, cond.Skip(99))
}

// TestClosestFallback finds the nearest surface point when no directed ray
// is involved.
func TestClosestFallback(t *testing.T) {
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(mgl64.Ident4()), nil, nil)

	cp := r.Closest(mgl64.Vec3{3, 4, 5})

	require.NotNil(t, cp)
	assert.InDelta(t, 3, cp.Point.X(), 1e-9)
	assert.InDelta(t, 4, cp.Point.Y(), 1e-9)
	assert.InDelta(t, 0, cp.Point.Z(), 1e-9)
	assert.InDelta(t, 25, cp.SquaredDistance, 1e-9)
}

// TestClosestCorner clamps the query to the nearest vertex when the point
// lies outside the triangle's edges.
func TestClosestCorner(t *testing.T) {
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(mgl64.Ident4()), nil, nil)

	cp := r.Closest(mgl64.Vec3{60, 60, 0})

	require.NotNil(t, cp)
	assert.InDelta(t, 50, cp.Point.X(), 1e-9)
	assert.InDelta(t, 50, cp.Point.Y(), 1e-9)
}

// TestTransformation resolves hit keys to the cached local-to-world map and
// yields the identity for unknown keys.
func TestTransformation(t *testing.T) {
	instTr := mgl64.Translate3D(100, 0, 0)
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(instTr), nil, nil)

	hit := r.ClosestHit(mgl64.Vec3{110, 0, 10}, mgl64.Vec3{0, 0, -1}, nil)
	require.NotNil(t, hit)

	world := r.Transformation(hit.TrKey).Mul4x1(hit.Position.Vec4(1)).Vec3()
	assert.InDelta(t, 110, world.X(), 1e-9)
	assert.InDelta(t, 0, world.Z(), 1e-9)

	assert.Equal(t, mgl64.Ident4(), r.Transformation(TrKey{Volume: 42}))
}

// TestRayFromCamera maps the closest hit into world space, normal included.
func TestRayFromCamera(t *testing.T) {
	instTr := mgl64.Translate3D(0, 0, 7)
	r := NewMeshRaycaster()
	r.Actualize(planeInstance(instTr), nil, nil)

	cam := stubCamera{origin: mgl64.Vec3{2, 3, 50}, dir: mgl64.Vec3{0, 0, -1}}
	hit := RayFromCamera(r, mgl64.Vec2{}, cam, nil)

	require.NotNil(t, hit)
	assert.InDelta(t, 2, hit.Position.X(), 1e-9)
	assert.InDelta(t, 3, hit.Position.Y(), 1e-9)
	assert.InDelta(t, 7, hit.Position.Z(), 1e-9)
	assert.InDelta(t, 1, hit.Normal.Z(), 1e-9)
}

// TestActualizeMeshOverride replaces a volume's mesh for the duration of the
// caches, leaving the model untouched.
func TestActualizeMeshOverride(t *testing.T) {
	inst := planeInstance(mgl64.Ident4())
	raised := planeMesh()
	for i := range raised.Vertices {
		raised.Vertices[i][2] = 5
	}

	r := NewMeshRaycaster()
	r.Actualize(inst, nil, map[int]*model.TriMesh{1: raised})

	hit := r.ClosestHit(mgl64.Vec3{0, 0, 50}, mgl64.Vec3{0, 0, -1}, nil)
	require.NotNil(t, hit)
	assert.InDelta(t, 5, hit.Position.Z(), 1e-9)
	assert.InDelta(t, 0, inst.Object.Volumes[0].Mesh.Vertices[0].Z(), 1e-12)
}
