package lab3d

import (
	"time"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptTuning replaces every input mapping constant at once. A non-positive TickInterval keeps the current one.
func OptTuning(t Tuning) Option {
	return func(s *Session) {
		if t.TickInterval <= 0 {
			t.TickInterval = s.mapper.Tuning.TickInterval
		}
		s.mapper.Tuning = t
	}
}

// OptSensitivity sets the radians of rotation per pixel of mouse movement (default 0.002).
func OptSensitivity(radiansPerPixel float64) Option {
	return func(s *Session) {
		s.mapper.Tuning.Sensitivity = radiansPerPixel
	}
}

// OptMoveStep sets the camera displacement applied per tick for each held movement key (default 0.05).
func OptMoveStep(step float64) Option {
	return func(s *Session) {
		s.mapper.Tuning.MoveStep = step
	}
}

// OptWheelStep sets the vertical camera displacement applied per wheel event (default 0.05).
func OptWheelStep(step float64) Option {
	return func(s *Session) {
		s.mapper.Tuning.WheelStep = step
	}
}

// OptTickInterval sets the period of the tick loop (default 33ms, about 30 ticks per second).
func OptTickInterval(interval time.Duration) Option {
	return func(s *Session) {
		if interval > 0 {
			s.mapper.Tuning.TickInterval = interval
		}
	}
}

// OptWatchTuning loads the given JSON tuning file and reloads it whenever it changes, while the session runs.
// Missing keys keep their current value. Example: {"sensitivity": 0.004, "moveStep": 0.1, "tickMillis": 16}
func OptWatchTuning(path string) Option {
	return func(s *Session) {
		s.watchTuning = path
	}
}

// OptOnTick registers a function run after every tick (after the frame upload), in the session's execution context.
func OptOnTick(hook func()) Option {
	return func(s *Session) {
		s.onTick = append(s.onTick, hook)
	}
}
