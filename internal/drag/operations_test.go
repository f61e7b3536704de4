package drag

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-editor/internal/camera"
	"mesh-editor/internal/model"
	"mesh-editor/internal/raycast"
	"mesh-editor/internal/transform"
)

// cameraAt is a perspective test camera with a fixed viewport.
func cameraAt(eye, target, up mgl64.Vec3) camera.Camera {
	return camera.Perspective(eye, target, up, mgl64.DegToRad(45), 800, 600)
}

// TestSurfaceOffset measures the volume-local offset from a floating badge
// down to the plate.
func TestSurfaceOffset(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})

	off, ok := SurfaceOffset(f.scn, raycast.NewMeshRaycaster())

	require.True(t, ok)
	assertVec3(t, mgl64.Vec3{0, 0, -5}, off, 1e-9)
}

// TestSurfaceOffsetSuppressed reports no offset when the badge already sits
// on the surface within the suppression threshold.
func TestSurfaceOffsetSuppressed(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 0.001), &model.Attachment{})

	_, ok := SurfaceOffset(f.scn, raycast.NewMeshRaycaster())

	assert.False(t, ok)
}

// TestSurfaceOffsetFallback uses the globally nearest surface point when the
// projection ray misses, here a badge hanging past the plate edge.
func TestSurfaceOffsetFallback(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(104, 0, 3), &model.Attachment{})

	off, ok := SurfaceOffset(f.scn, raycast.NewMeshRaycaster())

	require.True(t, ok)
	// nearest point is the plate edge at (100, 0, 0)
	assertVec3(t, mgl64.Vec3{-4, 0, -3}, off, 1e-9)
}

// TestSurfaceDistance returns the signed distance along the projection
// direction, positive when the badge floats above the surface.
func TestSurfaceDistance(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 1.5), &model.Attachment{Depth: 2})

	d, ok := SurfaceDistance(f.scn, f.badge, raycast.NewMeshRaycaster())

	require.True(t, ok)
	assert.InDelta(t, 1.5, d, 1e-9)
}

// TestSurfaceDistanceBounds declines distances below the suppression
// threshold and beyond the depth-scaled maximum.
func TestSurfaceDistanceBounds(t *testing.T) {
	near := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 0.001), &model.Attachment{})
	_, ok := SurfaceDistance(near.scn, near.badge, raycast.NewMeshRaycaster())
	assert.False(t, ok)

	// badge depth 2 bounds the distance at max((2*2)^2, 10) = 16 squared
	far := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})
	_, ok = SurfaceDistance(far.scn, far.badge, raycast.NewMeshRaycaster())
	assert.False(t, ok)

	within := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 3.5), &model.Attachment{})
	d, ok := SurfaceDistance(within.scn, within.badge, raycast.NewMeshRaycaster())
	require.True(t, ok)
	assert.InDelta(t, 3.5, d, 1e-9)
}

// TestSurfaceDistanceSolePart declines when the badge has no sibling surface.
func TestSurfaceDistanceSolePart(t *testing.T) {
	m := &model.Model{}
	obj := m.AddObject()
	obj.AddVolume(&model.Volume{ID: 1, Part: true, Mesh: boxMesh(10, 10, 2), Transform: mgl64.Ident4(), Attachment: &model.Attachment{}})
	obj.AddInstance(mgl64.Ident4())
	scn := model.NewScene(m)
	sv := scn.AddVolume(0, 0, 0)

	_, ok := SurfaceDistance(scn, sv, raycast.NewMeshRaycaster())

	assert.False(t, ok)
}

// TestFaceToCameraAlreadyFacing reports no edit when the projection
// direction already points at the camera.
func TestFaceToCameraAlreadyFacing(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})
	// straight above, looking down the badge's forward axis
	cam := cameraAt(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 1, 0})

	assert.False(t, FaceToCamera(f.scn, cam))
}

// TestFaceToCameraRotates turns the badge toward a camera off to the side
// while keeping its world anchor fixed.
func TestFaceToCameraRotates(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})
	cam := cameraAt(mgl64.Vec3{100, 0, 5}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1})

	require.True(t, FaceToCamera(f.scn, cam))

	assertVec3(t, mgl64.Vec3{1, 0, 0}, transform.ZBase(f.badge.Transform), 1e-9)
	assertVec3(t, mgl64.Vec3{0, 0, 5}, transform.Translation(f.badge.Transform), 1e-9)
	// edits propagate to the other instance
	assert.Equal(t, f.badge.Transform, f.badge1.Transform)
}

// TestFaceToCameraOpposite handles the camera exactly behind the badge with
// a half turn instead of a degenerate axis.
func TestFaceToCameraOpposite(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})
	// below, looking straight up: opposite of the badge's view direction
	cam := cameraAt(mgl64.Vec3{0, 0, -100}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 1, 0})

	require.True(t, FaceToCamera(f.scn, cam))

	assertVec3(t, mgl64.Vec3{0, 0, -1}, transform.ZBase(f.badge.Transform), 1e-9)
	assertVec3(t, mgl64.Vec3{0, 0, 5}, transform.Translation(f.badge.Transform), 1e-9)
}

// TestLocalZRotate rotates about the badge's own forward axis and commits
// the edit into the model without an undo boundary.
func TestLocalZRotate(t *testing.T) {
	f := newFixture(mgl64.Ident4(), mgl64.Translate3D(0, 0, 5), &model.Attachment{})
	var labels []string
	f.scn.OnSnapshot = func(label string) { labels = append(labels, label) }

	LocalZRotate(f.scn, math.Pi/2)

	assertVec3(t, mgl64.Vec3{0, 1, 0}, transform.TransformDir(f.badge.Transform, mgl64.Vec3{1, 0, 0}), 1e-12)
	assert.Equal(t, f.badge.Transform, f.obj.Volumes[1].Transform)
	assert.Empty(t, labels)
}

// TestLocalZRotateMirrored flips the rotation sense under a mirrored
// placement so the on-screen turn matches the request.
func TestLocalZRotateMirrored(t *testing.T) {
	mirrored := mgl64.Translate3D(0, 0, 5).Mul4(mgl64.Scale3D(-1, 1, 1))
	f := newFixture(mgl64.Ident4(), mirrored, &model.Attachment{})

	LocalZRotate(f.scn, math.Pi/2)

	want := mirrored.Mul4(mgl64.HomogRotate3DZ(-math.Pi / 2))
	for i := range want {
		assert.InDelta(t, want[i], f.badge.Transform[i], 1e-12)
	}
}

// TestLocalZMove translates along the badge's own forward axis, here tilted
// to point down world -Y.
func TestLocalZMove(t *testing.T) {
	tilted := mgl64.Translate3D(0, 0, 5).Mul4(mgl64.HomogRotate3DX(math.Pi / 2))
	f := newFixture(mgl64.Ident4(), tilted, &model.Attachment{})

	LocalZMove(f.scn, 2)

	assertVec3(t, mgl64.Vec3{0, -2, 5}, transform.Translation(f.badge.Transform), 1e-12)
	assert.Equal(t, f.badge.Transform, f.obj.Volumes[1].Transform)
}

// TestLegacyFixUnbakedEdits runs a local edit in the canonical frame of a
// volume carrying a baked legacy correction and re-applies it afterwards.
func TestLegacyFixUnbakedEdits(t *testing.T) {
	fix := mgl64.HomogRotate3DZ(0.7)
	att := &model.Attachment{LegacyFix: &fix}
	f := newFixture(mgl64.Ident4(), fix, att) // canonical frame is identity

	LocalZMove(f.scn, 2)

	want := mgl64.Translate3D(0, 0, 2).Mul4(fix)
	for i := range want {
		assert.InDelta(t, want[i], f.badge.Transform[i], 1e-12)
	}
}
