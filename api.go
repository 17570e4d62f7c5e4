package lab3d

import (
	"github.com/Yeicor/lab3d/internal"
	"github.com/barkimedes/go-deepcopy"
)

// Types shared with the internal packages (and the remote bridge protocol).
type (
	// SessionState is everything a tick can read: angles, camera position and the derived matrices.
	SessionState = internal.SessionState
	// Frame is the per-tick snapshot uploaded to a Bridge.
	Frame = internal.Frame
	// Event is a host-independent input event.
	Event = internal.Event
	// MouseButton is the host-independent mouse button index.
	MouseButton = internal.MouseButton
	// Tuning holds the input mapping constants.
	Tuning = internal.Tuning
	// ViewMode is the projection requested to the renderer.
	ViewMode = internal.ViewMode
	// MaterialMode is the object shading requested to the renderer.
	MaterialMode = internal.MaterialMode
	// Mat3 is a 3x3 row-major matrix.
	Mat3 = internal.Mat3
	// Bridge consumes one Frame per tick (see RasterBridge and RemoteBridge).
	Bridge = internal.BridgeImpl
)

const (
	MousePrimary   = internal.MousePrimary
	MouseMiddle    = internal.MouseMiddle
	MouseSecondary = internal.MouseSecondary

	ViewPerspective = internal.ViewPerspective
	ViewIsometric   = internal.ViewIsometric

	MaterialBasic     = internal.MaterialBasic
	MaterialLambert   = internal.MaterialLambert
	MaterialNormal    = internal.MaterialNormal
	MaterialWireframe = internal.MaterialWireframe

	KeyForward  = internal.KeyForward
	KeyLeft     = internal.KeyLeft
	KeyBackward = internal.KeyBackward
	KeyRight    = internal.KeyRight
	KeyReset    = internal.KeyReset
	KeyView     = internal.KeyView
	KeyMaterial = internal.KeyMaterial
)

// Event constructors
var (
	KeyDown   = internal.KeyDown
	KeyUp     = internal.KeyUp
	MouseDown = internal.MouseDown
	MouseUp   = internal.MouseUp
	MouseMove = internal.MouseMove
	Wheel     = internal.Wheel
)

// DefaultTuning see internal.DefaultTuning
func DefaultTuning() Tuning {
	return internal.DefaultTuning()
}

// State returns the live state. It must only be read or written from the session's execution context.
func (s *Session) State() *SessionState {
	return s.state
}

// Snapshot returns a deep copy of the state that can be handed to other goroutines.
func (s *Session) Snapshot() *SessionState {
	return deepcopy.MustAnything(s.state).(*SessionState)
}

// frameOf builds the snapshot sent to the bridge for the current tick.
func frameOf(s *SessionState) *Frame {
	return &Frame{
		Tick:           s.Tick,
		CameraPosition: s.CameraPosition,
		CameraRotation: s.CameraMatrix,
		ObjectRotation: s.ObjectMatrix,
		View:           s.View,
		Material:       s.Material,
	}
}
