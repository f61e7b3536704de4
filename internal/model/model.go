// Package model holds the persisted scene entities: objects made of volumes,
// instances placing an object in the world, and the editor-side scene volumes
// that visualize them. Transforms are mgl64 affine maps in millimeters.
package model

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Attachment marks a volume as glued to the surface of its sibling parts
// (an embossed decal, text, or similar). Volumes without an Attachment are
// ordinary parts and are not surface-draggable.
type Attachment struct {
	// Depth is the projection depth of the volume along its local forward (Z)
	// axis, used to bound the surface distance query.
	Depth float64
	// UseSurface is set when the shape is carved into the surface itself; the
	// user then has no editable surface distance to preserve.
	UseSurface bool
	// LegacyFix is a baked correction kept only for content from an older
	// persisted format. It must be un-applied before any meaningful edit and
	// re-applied after, so edits operate in the canonical frame.
	LegacyFix *mgl64.Mat4
}

// Volume is one part of an object: a mesh with a local transform relative to
// the owning instance.
type Volume struct {
	ID        int
	Name      string
	Part      bool // true for printable parts; false for modifiers
	Mesh      *TriMesh
	Transform mgl64.Mat4
	Attachment *Attachment

	object *Object
}

// Object owns a set of volumes and the instances that place them.
type Object struct {
	Volumes   []*Volume
	Instances []*Instance
}

// Instance supplies one world placement for a whole object.
type Instance struct {
	Object    *Object
	Transform mgl64.Mat4
}

// AddVolume appends v to the object and wires its back reference.
func (o *Object) AddVolume(v *Volume) *Volume {
	v.object = o
	o.Volumes = append(o.Volumes, v)
	return v
}

// AddInstance appends a new instance of the object with the given placement.
func (o *Object) AddInstance(tr mgl64.Mat4) *Instance {
	inst := &Instance{Object: o, Transform: tr}
	o.Instances = append(o.Instances, inst)
	return inst
}

// Object returns the owning object.
func (v *Volume) Object() *Object {
	return v.object
}

// HasSurfaceAttachment reports whether the volume is glued to a surface.
func (v *Volume) HasSurfaceAttachment() bool {
	return v.Attachment != nil
}

// IsSolePart reports whether the volume is the only part of its object.
// Such a volume has no sibling surface to be dragged over.
func (v *Volume) IsSolePart() bool {
	if v.object == nil || !v.Part {
		return false
	}
	parts := 0
	for _, o := range v.object.Volumes {
		if o.Part {
			parts++
		}
	}
	return parts == 1
}

// Model is the persisted document: a list of objects.
type Model struct {
	Objects []*Object
}

// AddObject appends a new empty object.
func (m *Model) AddObject() *Object {
	o := &Object{}
	m.Objects = append(m.Objects, o)
	return o
}
