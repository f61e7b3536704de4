// Package camera provides the world/screen mapping the drag engine needs:
// projecting a world point to top-left-origin screen coordinates and
// unprojecting a screen position into a world ray.
package camera

import "github.com/go-gl/mathgl/mgl64"

// Near and far clip planes used by Perspective. The drag math only needs the
// ray direction, so the exact planes are not critical.
const (
	nearClip = 0.1
	farClip  = 10000.0
)

// Camera is a perspective camera over a viewport. Screen coordinates use a
// top-left origin with Y growing downward, matching pointer events.
type Camera struct {
	View   mgl64.Mat4
	Proj   mgl64.Mat4
	Width  int
	Height int
}

// Perspective returns a camera at eye looking at target. fovY is the vertical
// field of view in radians; w, h the viewport size in pixels.
func Perspective(eye, target, up mgl64.Vec3, fovY float64, w, h int) Camera {
	return Camera{
		View:   mgl64.LookAtV(eye, target, up),
		Proj:   mgl64.Perspective(fovY, float64(w)/float64(h), nearClip, farClip),
		Width:  w,
		Height: h,
	}
}

// Project maps a world point to screen coordinates.
func (c Camera) Project(world mgl64.Vec3) mgl64.Vec2 {
	win := mgl64.Project(world, c.View, c.Proj, 0, 0, c.Width, c.Height)
	return mgl64.Vec2{win.X(), float64(c.Height) - win.Y()}
}

// Ray unprojects a screen position into a world ray through the frustum.
// A degenerate view/projection yields a zero ray, which no mesh query hits.
func (c Camera) Ray(screen mgl64.Vec2) (origin, dir mgl64.Vec3) {
	winY := float64(c.Height) - screen.Y()
	near, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 0}, c.View, c.Proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	far, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 1}, c.View, c.Proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	return near, far.Sub(near).Normalize()
}

// Forward returns the unit direction the camera looks along.
func (c Camera) Forward() mgl64.Vec3 {
	row := c.View.Row(2)
	return mgl64.Vec3{-row.X(), -row.Y(), -row.Z()}.Normalize()
}
