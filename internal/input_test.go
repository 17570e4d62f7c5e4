package internal

import (
	"math"
	"testing"
)

func newTestMapper() (*Mapper, *SessionState) {
	return NewMapper(DefaultTuning()), NewSessionState()
}

func TestMapper_KeyHeldForNTicks(t *testing.T) {
	m, s := newTestMapper()
	const n = 7
	m.Apply(s, KeyDown(KeyForward))
	for i := 0; i < n; i++ {
		m.Tick(s)
	}
	m.Apply(s, KeyUp(KeyForward))
	expected := -n * 0.05
	if math.Abs(s.CameraPosition.Z-expected) > 1e-12 {
		t.Fatalf("expected Z=%g after %d ticks, got %g", expected, n, s.CameraPosition.Z)
	}
	// Released: further ticks do not move
	for i := 0; i < n; i++ {
		m.Tick(s)
	}
	if math.Abs(s.CameraPosition.Z-expected) > 1e-12 {
		t.Fatalf("camera kept moving after release: Z=%g", s.CameraPosition.Z)
	}
	if s.CameraPosition.X != 0 || s.CameraPosition.Y != 0 {
		t.Fatalf("unexpected movement on other axes: %v", s.CameraPosition)
	}
}

func TestMapper_MovementKeys(t *testing.T) {
	cases := []struct {
		key     string
		x, y, z float64
	}{
		{KeyForward, 0, 0, -0.05},
		{KeyLeft, -0.05, 0, 0},
		{KeyBackward, 0, 0, 0.05},
		{KeyRight, 0.05, 0, 0},
		{"x", 0, 0, 0}, // Unmapped
	}
	for _, tc := range cases {
		m, s := newTestMapper()
		m.Apply(s, KeyDown(tc.key))
		m.Tick(s)
		p := s.CameraPosition
		if p.X != tc.x || p.Y != tc.y || p.Z != tc.z {
			t.Fatalf("key %q: expected (%g, %g, %g), got %v", tc.key, tc.x, tc.y, tc.z, p)
		}
	}
}

func TestMapper_OppositeKeysCancel(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, KeyDown(KeyLeft))
	m.Apply(s, KeyDown(KeyRight))
	m.Tick(s)
	if s.CameraPosition.X != 0 {
		t.Fatalf("expected no net movement, got X=%g", s.CameraPosition.X)
	}
}

func TestMapper_NoMovementWithoutTick(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, KeyDown(KeyForward))
	m.Apply(s, KeyUp(KeyForward))
	m.Tick(s)
	if s.CameraPosition.Z != 0 {
		t.Fatalf("a press released before the tick must not move, got Z=%g", s.CameraPosition.Z)
	}
}

func TestMapper_PrimaryDragPansCamera(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, MouseDown(MousePrimary))
	m.Apply(s, MouseMove(10, 0))
	if math.Abs(s.Camera.Pan-0.02) > 1e-15 {
		t.Fatalf("expected pan 0.02, got %.17g", s.Camera.Pan)
	}
	if s.Camera.Tilt != 0 {
		t.Fatalf("expected tilt unchanged, got %g", s.Camera.Tilt)
	}
	// Rebuilt immediately, without any tick
	if s.CameraMatrix != CameraRotation(s.Camera) {
		t.Fatalf("camera matrix was not rebuilt: %v", s.CameraMatrix)
	}
	if s.ObjectMatrix != Identity3() {
		t.Fatalf("object matrix changed on camera drag: %v", s.ObjectMatrix)
	}
}

func TestMapper_MoveWithoutButtonsDoesNothing(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, MouseMove(100, -50))
	m.Apply(s, MouseDown(MousePrimary))
	m.Apply(s, MouseUp(MousePrimary))
	m.Apply(s, MouseMove(100, -50))
	if s.Camera != (CameraAngles{}) || s.Object != (OrientationAngles{}) {
		t.Fatalf("angles changed without a held button: %+v %+v", s.Camera, s.Object)
	}
}

func TestMapper_MiddleAndSecondaryDragRotateObject(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, MouseDown(MouseMiddle))
	m.Apply(s, MouseMove(5, 7))
	if math.Abs(s.Object.RotateY-0.01) > 1e-15 || s.Object.RotateX != 0 || s.Object.RotateZ != 0 {
		t.Fatalf("middle drag: unexpected angles %+v", s.Object)
	}
	m.Apply(s, MouseUp(MouseMiddle))
	m.Apply(s, MouseDown(MouseSecondary))
	m.Apply(s, MouseMove(5, 7))
	if math.Abs(s.Object.RotateX-0.014) > 1e-15 || math.Abs(s.Object.RotateZ-0.01) > 1e-15 {
		t.Fatalf("secondary drag: unexpected angles %+v", s.Object)
	}
	if s.ObjectMatrix != ObjectRotation(s.Object) {
		t.Fatalf("object matrix was not rebuilt")
	}
	if s.Camera != (CameraAngles{}) {
		t.Fatalf("camera changed on object drag: %+v", s.Camera)
	}
}

func TestMapper_Wheel(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, Wheel(100))
	if math.Abs(s.CameraPosition.Y+0.05) > 1e-15 {
		t.Fatalf("expected Y=-0.05, got %g", s.CameraPosition.Y)
	}
	m.Apply(s, Wheel(-100))
	m.Apply(s, Wheel(-3)) // Magnitude is ignored
	if math.Abs(s.CameraPosition.Y-0.05) > 1e-15 {
		t.Fatalf("expected Y=0.05, got %g", s.CameraPosition.Y)
	}
	m.Apply(s, Wheel(0))
	if math.Abs(s.CameraPosition.Y-0.05) > 1e-15 {
		t.Fatalf("a zero delta must not move, got %g", s.CameraPosition.Y)
	}
}

func TestMapper_ResetViewAndMaterial(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, MouseDown(MousePrimary))
	m.Apply(s, MouseMove(30, 40))
	m.Apply(s, Wheel(1))
	m.Apply(s, KeyDown(KeyView))
	if s.View != ViewIsometric {
		t.Fatalf("expected isometric view, got %s", s.View)
	}
	m.Apply(s, KeyDown(KeyView)) // Auto-repeat: ignored while held
	if s.View != ViewIsometric {
		t.Fatalf("auto-repeat changed the view to %s", s.View)
	}
	m.Apply(s, KeyUp(KeyView))
	m.Apply(s, KeyDown(KeyView))
	if s.View != ViewPerspective {
		t.Fatalf("expected the view to cycle back, got %s", s.View)
	}
	m.Apply(s, KeyDown(KeyMaterial))
	m.Apply(s, KeyDown(KeyMaterial))
	m.Apply(s, KeyUp(KeyMaterial))
	m.Apply(s, KeyDown(KeyMaterial))
	if s.Material != MaterialNormal {
		t.Fatalf("expected two material steps, got %s", s.Material)
	}
	m.Apply(s, KeyDown(KeyReset))
	if *s != *NewSessionState() {
		t.Fatalf("reset did not restore the initial state: %+v", s)
	}
	// The held button survives the reset (it belongs to the mapper)
	if !m.ButtonHeld(MousePrimary) {
		t.Fatalf("reset released the mouse button")
	}
}

func TestMapper_ReleaseAll(t *testing.T) {
	m, s := newTestMapper()
	m.Apply(s, KeyDown(KeyForward))
	m.Apply(s, MouseDown(MouseSecondary))
	if len(m.HeldKeys()) != 1 {
		t.Fatalf("expected 1 held key, got %v", m.HeldKeys())
	}
	m.ReleaseAll()
	m.Tick(s)
	if m.KeyHeld(KeyForward) || m.ButtonHeld(MouseSecondary) || s.CameraPosition.Z != 0 {
		t.Fatalf("inputs still held after ReleaseAll")
	}
}

func TestMaterialMode_Next(t *testing.T) {
	m := MaterialBasic
	seen := map[MaterialMode]bool{}
	for i := 0; i < 4; i++ {
		seen[m] = true
		if m.String() == "Unknown" {
			t.Fatalf("mode %d has no name", m)
		}
		m = m.Next()
	}
	if m != MaterialBasic || len(seen) != 4 {
		t.Fatalf("expected a cycle of 4 modes, ended at %s after %v", m, seen)
	}
}
