package internal

import (
	"github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"math"
)

// Mat3 is a 3x3 row-major matrix: m[row][col].
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// ObjectRotation builds the object matrix: rotation about X first, then Y, then Z.
// NaN and infinite angles are not handled (they propagate to the result).
func ObjectRotation(a OrientationAngles) Mat3 {
	var m Mat3
	writeObjectRotation(&m, a)
	return m
}

// CameraRotation builds the camera matrix from pan (yaw) then tilt (pitch). There is no roll axis.
func CameraRotation(c CameraAngles) Mat3 {
	var m Mat3
	writeCameraRotation(&m, c)
	return m
}

func writeObjectRotation(m *Mat3, a OrientationAngles) {
	sinX, cosX := math.Sincos(a.RotateX)
	sinY, cosY := math.Sincos(a.RotateY)
	sinZ, cosZ := math.Sincos(a.RotateZ)
	m[0][0] = cosY * cosZ
	m[0][1] = cosX*sinZ + sinX*sinY*cosZ
	m[0][2] = sinX*sinZ - cosX*sinY*cosZ
	m[1][0] = -cosY * sinZ
	m[1][1] = cosX*cosZ - sinX*sinY*sinZ
	m[1][2] = sinX*cosZ + cosX*sinY*sinZ
	m[2][0] = sinY
	m[2][1] = -sinX * cosY
	m[2][2] = cosX * cosY
}

func writeCameraRotation(m *Mat3, c CameraAngles) {
	sinP, cosP := math.Sincos(c.Pan)
	sinT, cosT := math.Sincos(c.Tilt)
	m[0][0] = cosP
	m[0][1] = -sinP * sinT
	m[0][2] = -sinP * cosT
	m[1][0] = sinP
	m[1][1] = cosP * sinT
	m[1][2] = cosP * cosT
	m[2][0] = 0
	m[2][1] = -cosT
	m[2][2] = sinT
}

// UpdateObjectMatrix overwrites ObjectMatrix from the current object angles.
// Must be called after every change of s.Object (there is no lazy evaluation).
func (s *SessionState) UpdateObjectMatrix() {
	writeObjectRotation(&s.ObjectMatrix, s.Object)
}

// UpdateCameraMatrix overwrites CameraMatrix from the current camera angles.
func (s *SessionState) UpdateCameraMatrix() {
	writeCameraRotation(&s.CameraMatrix, s.Camera)
}

// Row returns row r as a vector.
func (m Mat3) Row(r int) v3.Vec {
	return v3.Vec{X: m[r][0], Y: m[r][1], Z: m[r][2]}
}

// Transpose returns the transposed matrix (the inverse, for rotations).
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t[c][r] = m[r][c]
		}
	}
	return t
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var res Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			res[r][c] = m[r][0]*o[0][c] + m[r][1]*o[1][c] + m[r][2]*o[2][c]
		}
	}
	return res
}

// MulVec returns m * v.
func (m Mat3) MulVec(v v3.Vec) v3.Vec {
	return v3.Vec{X: m.Row(0).Dot(v), Y: m.Row(1).Dot(v), Z: m.Row(2).Dot(v)}
}

// Flatten returns the matrix in row-major order, which is the layout the shader uniform was uploaded with.
func (m Mat3) Flatten() [9]float64 {
	return [9]float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	}
}

// MGL64 converts to the column-major mathgl representation (same mathematical matrix).
func (m Mat3) MGL64() mgl64.Mat3 {
	return mgl64.Mat3{
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
	}
}

// MGL32 is MGL64 with single precision, ready for a GL uniform upload.
func (m Mat3) MGL32() mgl32.Mat3 {
	var res mgl32.Mat3
	for i, v := range m.MGL64() {
		res[i] = float32(v)
	}
	return res
}

// Fauxgl embeds the rotation into a 4x4 affine matrix followed by the given translation (applied after rotating).
func (m Mat3) Fauxgl(translate v3.Vec) fauxgl.Matrix {
	return fauxgl.Matrix{
		X00: m[0][0], X01: m[0][1], X02: m[0][2], X03: translate.X,
		X10: m[1][0], X11: m[1][1], X12: m[1][2], X13: translate.Y,
		X20: m[2][0], X21: m[2][1], X22: m[2][2], X23: translate.Z,
		X30: 0, X31: 0, X32: 0, X33: 1,
	}
}
