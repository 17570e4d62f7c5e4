package internal

import (
	"time"
)

// MouseButton is the host-independent mouse button index (0: primary, 1: middle, 2: secondary).
type MouseButton int

const (
	MousePrimary MouseButton = iota
	MouseMiddle
	MouseSecondary
)

// EventKind identifies the kind of input event.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventWheel
)

// Event is an abstract input event that every host (window, terminal, tests) translates its own events into.
type Event struct {
	Kind   EventKind
	Key    string      // EventKeyDown, EventKeyUp: lower-case key identifier ("w", "a", ...)
	Button MouseButton // EventMouseDown, EventMouseUp
	DX, DY float64     // EventMouseMove: movement deltas; EventWheel: DY is the scroll delta (> 0 scrolls down)
}

// KeyDown is a key press (or auto-repeat) of the lower-case key identifier.
func KeyDown(key string) Event { return Event{Kind: EventKeyDown, Key: key} }

// KeyUp is a key release.
func KeyUp(key string) Event { return Event{Kind: EventKeyUp, Key: key} }

// MouseDown is a mouse button press.
func MouseDown(button MouseButton) Event { return Event{Kind: EventMouseDown, Button: button} }

// MouseUp is a mouse button release.
func MouseUp(button MouseButton) Event { return Event{Kind: EventMouseUp, Button: button} }

// MouseMove is a relative pointer movement, in pixels.
func MouseMove(movementX, movementY float64) Event {
	return Event{Kind: EventMouseMove, DX: movementX, DY: movementY}
}

// Wheel is a scroll event: only the sign of deltaY matters (> 0 scrolls down).
func Wheel(deltaY float64) Event { return Event{Kind: EventWheel, DY: deltaY} }

// Key identifiers with a meaning for the mapper
const (
	KeyForward  = "w"
	KeyLeft     = "a"
	KeyBackward = "s"
	KeyRight    = "d"
	KeyReset    = "r"
	KeyView     = "v"
	KeyMaterial = "m"
)

// Tuning holds the constants of the input mapping. It can be reloaded while running.
type Tuning struct {
	Sensitivity  float64       // Radians per pixel of mouse movement
	MoveStep     float64       // Camera displacement per tick for each held movement key
	WheelStep    float64       // Vertical camera displacement per wheel event
	TickInterval time.Duration // Nominal period of the tick loop
}

// DefaultTuning: 0.002 rad/px, 0.05 units per tick or wheel notch, 33ms ticks.
func DefaultTuning() Tuning {
	return Tuning{
		Sensitivity:  0.002,
		MoveStep:     0.05,
		WheelStep:    0.05,
		TickInterval: 33 * time.Millisecond,
	}
}

// Mapper translates input events into state changes. It owns the held state of every key and mouse button.
// It is not safe for concurrent use: events and ticks must come from a single execution context.
type Mapper struct {
	Tuning  Tuning
	keys    map[string]bool
	buttons map[MouseButton]bool
}

// NewMapper returns a mapper with nothing held.
func NewMapper(tuning Tuning) *Mapper {
	return &Mapper{
		Tuning:  tuning,
		keys:    map[string]bool{},
		buttons: map[MouseButton]bool{},
	}
}

// KeyHeld reports whether the key is currently held.
func (m *Mapper) KeyHeld(key string) bool {
	return m.keys[key]
}

// HeldKeys returns every key currently held, in no particular order.
func (m *Mapper) HeldKeys() []string {
	var res []string
	for k, held := range m.keys {
		if held {
			res = append(res, k)
		}
	}
	return res
}

// ButtonHeld reports whether the mouse button is currently held.
func (m *Mapper) ButtonHeld(button MouseButton) bool {
	return m.buttons[button]
}

// Apply processes a single event. Mouse movement rebuilds the affected matrices immediately (not on the next tick).
func (m *Mapper) Apply(s *SessionState, ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		if !m.keys[ev.Key] { // Ignore auto-repeat for one-shot actions
			switch ev.Key {
			case KeyReset:
				s.Reset()
			case KeyView:
				s.View = s.View.Next()
			case KeyMaterial:
				s.Material = s.Material.Next()
			}
		}
		m.keys[ev.Key] = true
	case EventKeyUp:
		m.keys[ev.Key] = false
	case EventMouseDown:
		m.buttons[ev.Button] = true
	case EventMouseUp:
		m.buttons[ev.Button] = false
	case EventMouseMove:
		sens := m.Tuning.Sensitivity
		if m.buttons[MousePrimary] {
			s.Camera.Pan += sens * ev.DX
			s.Camera.Tilt += sens * ev.DY
			s.UpdateCameraMatrix()
		}
		if m.buttons[MouseMiddle] {
			s.Object.RotateY += sens * ev.DX
			s.UpdateObjectMatrix()
		}
		if m.buttons[MouseSecondary] {
			s.Object.RotateX += sens * ev.DY
			s.Object.RotateZ += sens * ev.DX
			s.UpdateObjectMatrix()
		}
	case EventWheel:
		// Only the sign matters: no smoothing or acceleration
		if ev.DY > 0 {
			s.CameraPosition.Y -= m.Tuning.WheelStep
		} else if ev.DY < 0 {
			s.CameraPosition.Y += m.Tuning.WheelStep
		}
	}
}

// Tick applies one fixed step of keyboard movement for every held movement key.
func (m *Mapper) Tick(s *SessionState) {
	step := m.Tuning.MoveStep
	if m.keys[KeyForward] {
		s.CameraPosition.Z -= step
	}
	if m.keys[KeyLeft] {
		s.CameraPosition.X -= step
	}
	if m.keys[KeyBackward] {
		s.CameraPosition.Z += step
	}
	if m.keys[KeyRight] {
		s.CameraPosition.X += step
	}
}

// ReleaseAll marks every key and button as released (e.g. when the host loses focus).
func (m *Mapper) ReleaseAll() {
	m.keys = map[string]bool{}
	m.buttons = map[MouseButton]bool{}
}
