package internal

import (
	"github.com/deadsy/sdfx/vec/v3"
)

// ViewMode selects the projection used by renderers consuming a frame.
type ViewMode int

const (
	ViewPerspective ViewMode = iota // First person view
	ViewIsometric                   // Orthographic view
	viewModeCount
)

func (v ViewMode) String() string {
	switch v {
	case ViewPerspective:
		return "Perspective"
	case ViewIsometric:
		return "Isometric"
	default:
		return "Unknown"
	}
}

// Next cycles through the available view modes.
func (v ViewMode) Next() ViewMode {
	return (v + 1) % viewModeCount
}

// MaterialMode selects how renderers shade the scene objects.
type MaterialMode int

const (
	MaterialBasic     MaterialMode = iota // Constant color, no lighting
	MaterialLambert                       // Constant color with diffuse shading
	MaterialNormal                        // Surface normal XYZ as RGB
	MaterialWireframe                     // MaterialNormal, edges only
	materialModeCount
)

func (m MaterialMode) String() string {
	switch m {
	case MaterialBasic:
		return "Basic"
	case MaterialLambert:
		return "Lambert"
	case MaterialNormal:
		return "Normal"
	case MaterialWireframe:
		return "Wireframe"
	default:
		return "Unknown"
	}
}

// Next cycles through the available material modes.
func (m MaterialMode) Next() MaterialMode {
	return (m + 1) % materialModeCount
}

// OrientationAngles are the object rotation angles, in radians (unbounded, never wrapped).
type OrientationAngles struct {
	RotateX, RotateY, RotateZ float64
}

// CameraAngles are the camera yaw (Pan) and pitch (Tilt), in radians. There is no roll.
type CameraAngles struct {
	Pan, Tilt float64
}

// SessionState is an internal struct that has to be exported for RPC.
// It holds everything the tick loop mutates: zero-initialized on load and never persisted.
type SessionState struct {
	Tick           uint64            // Ticks advanced since the session started (or was reset)
	Object         OrientationAngles // Mutated by middle/secondary mouse drag
	Camera         CameraAngles      // Mutated by primary mouse drag
	CameraPosition v3.Vec            // Mutated by keyboard and wheel (free navigation)
	View           ViewMode          // Projection mode requested to the renderer
	Material       MaterialMode      // Shading requested for the scene objects
	// Derived from the angles above, rebuilt on every angle change
	ObjectMatrix, CameraMatrix Mat3
}

// NewSessionState returns the state of a freshly loaded session.
// Both matrices start as identity, which is not CameraRotation of zero angles: the camera looks along -Z (Y up) until
// the first camera drag rebuilds its matrix.
func NewSessionState() *SessionState {
	s := &SessionState{}
	s.Reset()
	return s
}

// Reset re-initializes the state in place (zero angles and position, identity matrices).
func (s *SessionState) Reset() {
	*s = SessionState{
		ObjectMatrix: Identity3(),
		CameraMatrix: Identity3(),
	}
}

// Frame is an internal struct that has to be exported for RPC.
// It is the read-only snapshot handed to a render bridge once per tick.
type Frame struct {
	Tick           uint64
	CameraPosition v3.Vec
	CameraRotation Mat3
	ObjectRotation Mat3
	View           ViewMode
	Material       MaterialMode
}

// BridgeImpl is the interface implemented by every consumer of frames (local rasterizers, remote clients, etc.).
type BridgeImpl interface {
	// Upload receives the transform data of the current tick. It is called from the tick loop, so it should not block
	// for long: a slow upload delays the next tick.
	Upload(frame *Frame) error
}
