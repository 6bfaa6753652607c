package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/vincent/types"
)

// Stores the ray directions at the four corners of the camera frustrum
// (top-left, top-right, bottom-left, bottom-right). Per pixel rays are
// generated by bilinear interpolation of the corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Pending rotations (in radians) that are applied and reset by Update.
	Pitch float32
	Yaw   float32

	// Vertical field of view in degrees.
	FOV float32

	Frustrum Frustrum

	aspect float32
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
		aspect:   1,
	}
}

// Set the frame aspect ratio (width / height) and update the frustrum.
func (c *Camera) SetupProjection(aspect float32) {
	c.aspect = aspect
	c.Update()
}

// Apply any pending pitch/yaw rotation and recalculate the frustrum.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, c.Pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()
	dir = orientQuat.Rotate(dir)
	c.LookAt = c.Position.Add(dir)
	c.Pitch, c.Yaw = 0, 0

	c.updateFrustrum(dir)
}

func (c *Camera) updateFrustrum(dir types.Vec3) {
	right := dir.Cross(c.Up).Normalize()
	up := right.Cross(dir)

	halfH := float32(math.Tan(float64(c.FOV) * math.Pi / 360.0))
	halfW := halfH * c.aspect

	vUp := up.Mul(halfH)
	vRight := right.Mul(halfW)
	c.Frustrum[0] = dir.Add(vUp).Sub(vRight)
	c.Frustrum[1] = dir.Add(vUp).Add(vRight)
	c.Frustrum[2] = dir.Sub(vUp).Sub(vRight)
	c.Frustrum[3] = dir.Sub(vUp).Add(vRight)
}

// Generate a primary ray for normalized frame coordinates tx, ty in [0, 1]
// where (0, 0) is the top-left frame corner.
func (c *Camera) Ray(tx, ty float32) types.Ray {
	lVec := c.Frustrum[0].Mul(1.0 - ty).Add(c.Frustrum[2].Mul(ty))
	rVec := c.Frustrum[1].Mul(1.0 - ty).Add(c.Frustrum[3].Mul(ty))
	dir := lVec.Mul(1.0 - tx).Add(rVec.Mul(tx)).Normalize()
	return types.NewRay(c.Position, dir, 0)
}
