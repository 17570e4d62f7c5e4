package internal

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PositionUniform is the camera position as a vec3 uniform.
func (f *Frame) PositionUniform() mgl32.Vec3 {
	return mgl32.Vec3{float32(f.CameraPosition.X), float32(f.CameraPosition.Y), float32(f.CameraPosition.Z)}
}

// FlatCameraRotation is the camera matrix flattened row by row, the exact buffer handed to
// uniformMatrix3fv(location, false, ...) by a WebGL client (so GLSL reads it transposed).
func (f *Frame) FlatCameraRotation() [9]float32 {
	var res [9]float32
	for i, v := range f.CameraRotation.Flatten() {
		res[i] = float32(v)
	}
	return res
}

// CameraRotationUniform is the camera matrix in column-major order: GLSL reads it untransposed.
func (f *Frame) CameraRotationUniform() mgl32.Mat3 {
	return f.CameraRotation.MGL32()
}

// ObjectRotationUniform is the object matrix in column-major order.
func (f *Frame) ObjectRotationUniform() mgl32.Mat3 {
	return f.ObjectRotation.MGL32()
}
