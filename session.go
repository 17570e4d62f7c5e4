package lab3d

import (
	"context"
	"github.com/Yeicor/lab3d/internal"
	"log"
	"os/signal"
	"time"
)

// Session owns the orientation state and the input mapper, and feeds a Bridge once per tick.
//
// A Session is not safe for concurrent use: Handle and Advance must be called from a single execution context
// (Run, RunWindow and RunTerminal all provide one).
type Session struct {
	state  *internal.SessionState
	mapper *internal.Mapper
	bridge Bridge
	// Tuning reloads (produced by the watcher goroutine, consumed at the start of the next tick)
	tuningUpdates chan Tuning
	watchTuning   string
	// Host hooks, run after each tick's upload
	onTick []func()
}

// Option configures a Session.
type Option func(s *Session)

// NewSession creates a freshly loaded session (zero angles and position, identity matrices).
// The bridge may be nil to only track state.
func NewSession(bridge Bridge, opts ...Option) *Session {
	s := &Session{
		state:         internal.NewSessionState(),
		mapper:        internal.NewMapper(internal.DefaultTuning()),
		bridge:        bridge,
		tuningUpdates: make(chan Tuning, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tuning returns the tuning currently applied by the input mapper.
func (s *Session) Tuning() Tuning {
	return s.mapper.Tuning
}

// Handle applies one input event synchronously.
func (s *Session) Handle(ev Event) {
	s.mapper.Apply(s.state, ev)
}

// Advance runs exactly one tick: pending tuning reloads, held-key movement and the frame upload.
// It returns the upload error, if any (the state has already advanced).
func (s *Session) Advance() error {
	select {
	case t := <-s.tuningUpdates:
		s.mapper.Tuning = t
		log.Printf("[lab3d] Tuning reloaded: %+v", t)
	default:
	}
	s.mapper.Tick(s.state)
	s.state.Tick++
	var err error
	if s.bridge != nil {
		err = s.bridge.Upload(frameOf(s.state))
	}
	for _, hook := range s.onTick {
		hook()
	}
	return err
}

// Run is the tick loop: a single goroutine that applies events as they arrive and advances one tick per tick
// interval, until ctx is cancelled (returns ctx.Err()) or events is closed (returns nil).
//
// A tick that takes longer than the interval delays the next one (missed ticks are dropped, not queued).
// Upload errors are logged and the loop continues.
func (s *Session) Run(ctx context.Context, events <-chan Event) error {
	ctx, cancel := context.WithCancel(ctx) // Also stops the tuning watcher when events is closed
	defer cancel()
	if err := s.watch(ctx); err != nil {
		return err
	}
	interval := s.mapper.Tuning.TickInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.Handle(ev)
		case <-ticker.C:
			if ctx.Err() != nil { // Both ready: cancellation wins
				return ctx.Err()
			}
			if err := s.Advance(); err != nil {
				log.Println("[lab3d] Frame upload error:", err)
			}
			if s.mapper.Tuning.TickInterval != interval {
				interval = s.mapper.Tuning.TickInterval
				ticker.Reset(interval)
			}
		}
	}
}

// RunUntilSignal is Run, stopping cleanly (nil error) when the process receives an interrupt or terminate signal.
func (s *Session) RunUntilSignal(events <-chan Event) error {
	ctx, cancel := signal.NotifyContext(context.Background(), signals()...)
	defer cancel()
	err := s.Run(ctx, events)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ticksPerSecond converts a tick interval into an integer rate (at least 1).
func ticksPerSecond(interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	tps := int(time.Second / interval) // Truncated: 33ms -> 30 TPS
	if tps < 1 {
		tps = 1
	}
	return tps
}
