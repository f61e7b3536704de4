package model

import "github.com/go-gl/mathgl/mgl64"

// SceneVolume is the drawable counterpart of one (object, volume) pair under
// one instance. Several scene volumes may reference the same logical pair
// (one per instance) and must be kept transform-synchronized by their writer.
type SceneVolume struct {
	ObjectIdx   int
	VolumeIdx   int
	InstanceIdx int
	// Transform is the mutable volume-local transform shown by the renderer.
	// It may run ahead of the persisted Volume.Transform during an edit.
	Transform mgl64.Mat4
	// ShiftZ is a secondary vertical shift applied on top of the world matrix
	// for multi-plate layouts. Zero for ordinary placements.
	ShiftZ float64
}

// Scene is the editor-side store: the persisted model, its scene volumes,
// selection and hover state, and the flags the drag controller toggles while
// a session is active.
type Scene struct {
	Model   *Model
	Volumes []*SceneVolume

	selected int
	hovered  int
	moving   bool
	picking  bool
	dirty    bool

	// OnSnapshot, when set, records an undo boundary with the given label.
	// Commit calls skip it for empty labels.
	OnSnapshot func(label string)
}

// NewScene returns a scene over m with nothing selected, picking and moving
// enabled.
func NewScene(m *Model) *Scene {
	return &Scene{Model: m, selected: -1, hovered: -1, moving: true, picking: true}
}

// AddVolume appends a scene volume mirroring the given logical identity and
// seeds its transform from the persisted volume.
func (s *Scene) AddVolume(objectIdx, volumeIdx, instanceIdx int) *SceneVolume {
	sv := &SceneVolume{
		ObjectIdx:   objectIdx,
		VolumeIdx:   volumeIdx,
		InstanceIdx: instanceIdx,
		Transform:   s.Model.Objects[objectIdx].Volumes[volumeIdx].Transform,
	}
	s.Volumes = append(s.Volumes, sv)
	return sv
}

// VolumeOf resolves the persisted volume a scene volume visualizes.
func (s *Scene) VolumeOf(sv *SceneVolume) *Volume {
	if sv.ObjectIdx < 0 || sv.ObjectIdx >= len(s.Model.Objects) {
		return nil
	}
	o := s.Model.Objects[sv.ObjectIdx]
	if sv.VolumeIdx < 0 || sv.VolumeIdx >= len(o.Volumes) {
		return nil
	}
	return o.Volumes[sv.VolumeIdx]
}

// InstanceOf resolves the instance a scene volume is placed under.
func (s *Scene) InstanceOf(sv *SceneVolume) *Instance {
	if sv.ObjectIdx < 0 || sv.ObjectIdx >= len(s.Model.Objects) {
		return nil
	}
	o := s.Model.Objects[sv.ObjectIdx]
	if sv.InstanceIdx < 0 || sv.InstanceIdx >= len(o.Instances) {
		return nil
	}
	return o.Instances[sv.InstanceIdx]
}

// WorldMatrix returns the scene volume's full world transform:
// plate shift * instance * volume-local.
func (s *Scene) WorldMatrix(sv *SceneVolume) mgl64.Mat4 {
	inst := s.InstanceOf(sv)
	if inst == nil {
		return sv.Transform
	}
	w := inst.Transform.Mul4(sv.Transform)
	if sv.ShiftZ != 0 {
		w = mgl64.Translate3D(0, 0, sv.ShiftZ).Mul4(w)
	}
	return w
}

// Select marks the scene volume at index i as the single selection; -1 clears.
func (s *Scene) Select(i int) { s.selected = i }

// SetHovered marks the scene volume at index i as hovered by the pointer.
func (s *Scene) SetHovered(i int) { s.hovered = i }

// Selected returns the single selected scene volume, or nil.
func (s *Scene) Selected() *SceneVolume {
	if s.selected < 0 || s.selected >= len(s.Volumes) {
		return nil
	}
	return s.Volumes[s.selected]
}

// IsHovered reports whether sv is the volume currently under the pointer.
func (s *Scene) IsHovered(sv *SceneVolume) bool {
	return s.hovered >= 0 && s.hovered < len(s.Volumes) && s.Volumes[s.hovered] == sv
}

// EnableMoving toggles ordinary move-by-translation of the selection.
func (s *Scene) EnableMoving(on bool) { s.moving = on }

// EnablePicking toggles object picking.
func (s *Scene) EnablePicking(on bool) { s.picking = on }

// MovingEnabled reports whether ordinary selection moves are allowed.
func (s *Scene) MovingEnabled() bool { return s.moving }

// PickingEnabled reports whether object picking is allowed.
func (s *Scene) PickingEnabled() bool { return s.picking }

// MarkDirty requests a redraw.
func (s *Scene) MarkDirty() { s.dirty = true }

// TakeDirty returns the dirty flag and clears it.
func (s *Scene) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Broadcast assigns tr to every scene volume sharing sv's (object, volume)
// identity, keeping all instances synchronized.
func (s *Scene) Broadcast(sv *SceneVolume, tr mgl64.Mat4) {
	for _, other := range s.Volumes {
		if other.ObjectIdx == sv.ObjectIdx && other.VolumeIdx == sv.VolumeIdx {
			other.Transform = tr
		}
	}
}

// CommitMove writes every scene volume transform into the persisted model as
// one move edit. A non-empty label records an undo boundary.
func (s *Scene) CommitMove(label string) { s.commit(label) }

// CommitRotate writes every scene volume transform into the persisted model
// as one rotate edit. A non-empty label records an undo boundary.
func (s *Scene) CommitRotate(label string) { s.commit(label) }

func (s *Scene) commit(label string) {
	if label != "" && s.OnSnapshot != nil {
		s.OnSnapshot(label)
	}
	for _, sv := range s.Volumes {
		if v := s.VolumeOf(sv); v != nil {
			v.Transform = sv.Transform
		}
	}
	s.dirty = true
}
