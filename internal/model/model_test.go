package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPartObject() (*Model, *Object) {
	m := &Model{}
	obj := m.AddObject()
	obj.AddVolume(&Volume{ID: 1, Name: "plate", Part: true, Transform: mgl64.Ident4()})
	obj.AddVolume(&Volume{ID: 2, Name: "badge", Part: true, Transform: mgl64.Translate3D(0, 0, 5), Attachment: &Attachment{}})
	return m, obj
}

// TestIsSolePart covers the cases that decide whether a volume has sibling
// surface to drag over: sole part, one of several parts, and modifiers.
func TestIsSolePart(t *testing.T) {
	m := &Model{}
	obj := m.AddObject()
	part := obj.AddVolume(&Volume{ID: 1, Part: true})
	assert.True(t, part.IsSolePart())

	mod := obj.AddVolume(&Volume{ID: 2, Part: false})
	assert.True(t, part.IsSolePart(), "modifiers are not sibling surface")
	assert.False(t, mod.IsSolePart(), "a modifier is never a sole part")

	obj.AddVolume(&Volume{ID: 3, Part: true})
	assert.False(t, part.IsSolePart())
}

// TestHasSurfaceAttachment distinguishes surface-glued volumes from ordinary
// parts.
func TestHasSurfaceAttachment(t *testing.T) {
	_, obj := twoPartObject()

	assert.False(t, obj.Volumes[0].HasSurfaceAttachment())
	assert.True(t, obj.Volumes[1].HasSurfaceAttachment())
}

// TestSceneVolumeResolution checks index-based resolution of volume and
// instance, including out-of-range scene volumes.
func TestSceneVolumeResolution(t *testing.T) {
	m, obj := twoPartObject()
	obj.AddInstance(mgl64.Ident4())
	scn := NewScene(m)
	sv := scn.AddVolume(0, 1, 0)

	require.NotNil(t, scn.VolumeOf(sv))
	assert.Equal(t, 2, scn.VolumeOf(sv).ID)
	require.NotNil(t, scn.InstanceOf(sv))

	bogus := &SceneVolume{ObjectIdx: 0, VolumeIdx: 9, InstanceIdx: 0}
	assert.Nil(t, scn.VolumeOf(bogus))
}

// TestWorldMatrix composes plate shift, instance and volume-local transforms
// in that order.
func TestWorldMatrix(t *testing.T) {
	m, obj := twoPartObject()
	obj.AddInstance(mgl64.Translate3D(100, 0, 0))
	scn := NewScene(m)
	sv := scn.AddVolume(0, 1, 0)
	sv.ShiftZ = 30

	w := scn.WorldMatrix(sv)
	anchor := w.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()

	assert.InDelta(t, 100, anchor.X(), 1e-12)
	assert.InDelta(t, 35, anchor.Z(), 1e-12) // 5 local + 30 shift
}

// TestBroadcast updates every scene volume of the same identity across
// instances and leaves other volumes alone.
func TestBroadcast(t *testing.T) {
	m, obj := twoPartObject()
	obj.AddInstance(mgl64.Ident4())
	obj.AddInstance(mgl64.Translate3D(200, 0, 0))
	scn := NewScene(m)
	plate0 := scn.AddVolume(0, 0, 0)
	badge0 := scn.AddVolume(0, 1, 0)
	badge1 := scn.AddVolume(0, 1, 1)

	moved := mgl64.Translate3D(7, 8, 9)
	scn.Broadcast(badge0, moved)

	assert.Equal(t, moved, badge0.Transform)
	assert.Equal(t, moved, badge1.Transform)
	assert.NotEqual(t, moved, plate0.Transform)
}

// TestCommitWritesModelAndSnapshots persists scene transforms into the model
// and records an undo boundary only for labeled commits.
func TestCommitWritesModelAndSnapshots(t *testing.T) {
	m, obj := twoPartObject()
	obj.AddInstance(mgl64.Ident4())
	scn := NewScene(m)
	sv := scn.AddVolume(0, 1, 0)

	var labels []string
	scn.OnSnapshot = func(label string) { labels = append(labels, label) }

	moved := mgl64.Translate3D(1, 2, 3)
	sv.Transform = moved
	scn.CommitMove("Move over surface")
	scn.CommitRotate("")

	assert.Equal(t, moved, obj.Volumes[1].Transform)
	assert.Equal(t, []string{"Move over surface"}, labels)
	assert.True(t, scn.TakeDirty())
	assert.False(t, scn.TakeDirty())
}

// TestSelectionAndHover exercises the selection bookkeeping the drag
// controller relies on.
func TestSelectionAndHover(t *testing.T) {
	m, obj := twoPartObject()
	obj.AddInstance(mgl64.Ident4())
	scn := NewScene(m)
	scn.AddVolume(0, 0, 0)
	sv := scn.AddVolume(0, 1, 0)

	assert.Nil(t, scn.Selected())
	scn.Select(1)
	assert.Same(t, sv, scn.Selected())

	assert.False(t, scn.IsHovered(sv))
	scn.SetHovered(1)
	assert.True(t, scn.IsHovered(sv))
	scn.SetHovered(-1)
	assert.False(t, scn.IsHovered(sv))
}

// TestTriMeshBounds checks bounds and Z size for a simple mesh and the empty
// mesh.
func TestTriMeshBounds(t *testing.T) {
	mesh := &TriMesh{Vertices: []mgl64.Vec3{{-1, 0, 2}, {3, -4, 5}}}

	min, max := mesh.BoundingBox()
	assert.Equal(t, mgl64.Vec3{-1, -4, 2}, min)
	assert.Equal(t, mgl64.Vec3{3, 0, 5}, max)
	assert.InDelta(t, 3, mesh.SizeZ(), 1e-12)

	empty := &TriMesh{}
	assert.InDelta(t, 0, empty.SizeZ(), 1e-12)
}
