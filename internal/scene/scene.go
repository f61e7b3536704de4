package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-editor/internal/model"
	"mesh-editor/internal/primitives"
)

const (
	gridExtent     = 100
	gridMinorStep  = 5
	gridMajorStep  = 25
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Volume tints: ordinary parts, the hovered volume and the selected volume.
var (
	partColor     = rl.NewColor(160, 160, 170, 255)
	hoverColor    = rl.NewColor(120, 190, 255, 255)
	selectedColor = rl.NewColor(255, 170, 60, 255)
)

// View holds a 3D camera and draws the editor world. Update runs camera
// orbiting (middle mouse); Draw renders between BeginMode3D and EndMode3D.
// The world is Z-up, matching the model space.
type View struct {
	Camera      rl.Camera3D
	GridVisible bool
	registry    *primitives.Registry
}

// New returns a view with a perspective camera looking at the origin.
// Camera: position (120,-120,90), target (0,0,0), up (0,0,1), fovy 45°.
// Grid is visible by default.
func New() *View {
	v := &View{registry: primitives.NewRegistry()}
	v.Camera.Position = rl.NewVector3(120, -120, 90)
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 0, 1)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	v.GridVisible = true
	return v
}

// SetGridVisible sets whether the editor grid is drawn.
func (v *View) SetGridVisible(visible bool) {
	v.GridVisible = visible
}

// Update runs once per frame. The camera orbits only while the middle mouse
// button is held, so left-button drags stay with the drag controller.
func (v *View) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		rl.UpdateCamera(&v.Camera, rl.CameraThirdPerson)
	}
}

// Draw renders the grid and every scene volume of st. The hovered and
// selected volumes are tinted. Call after ClearBackground.
func (v *View) Draw(st *model.Scene) {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawEditorGrid()
	}
	for _, sv := range st.Volumes {
		vol := st.VolumeOf(sv)
		if vol == nil || vol.Mesh == nil {
			continue
		}
		tint := partColor
		if st.IsHovered(sv) {
			tint = hoverColor
		}
		if st.Selected() == sv {
			tint = selectedColor
		}
		v.registry.Draw(vol.Mesh, toRlMatrix(st.WorldMatrix(sv)), tint)
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a build-plate grid on the XY plane (Z=0) with
// major/minor lines and axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), float32(-gridExtent), 0
		end.X, end.Y, end.Z = float32(x), float32(gridExtent), 0
		rl.DrawLine3D(start, end, c)
	}
	for y := -gridExtent; y <= gridExtent; y += gridMinorStep {
		c := major
		if y%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), float32(y), 0
		end.X, end.Y, end.Z = float32(gridExtent), float32(y), 0
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, 0
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
