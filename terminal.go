package lab3d

import (
	"context"
	"errors"
	"fmt"
	"github.com/gdamore/tcell/v2"
	"image"
	"unicode"
)

// terminalCellPixels approximates the size of a terminal cell in screen pixels, to keep the mouse sensitivity close
// to the window host.
const terminalCellPixels = 8

// RunTerminal runs the session inside the terminal, drawing raster (which should also be the session's bridge) with
// two pixels per character cell. It blocks until Esc, Ctrl+C or Q is pressed (returns nil) or ctx is cancelled.
//
// Terminals do not report key releases: every key press moves for a single tick (hold the key to auto-repeat).
func (s *Session) RunTerminal(ctx context.Context, raster *RasterBridge) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t := &terminalHost{screen: screen, raster: raster, session: s}
	t.resize()
	hooks := s.onTick
	s.onTick = append(s.onTick[:len(s.onTick):len(s.onTick)], t.afterTick)
	defer func() { s.onTick = hooks }()

	events := make(chan Event, 64)
	go t.pollEvents(ctx, cancel, events)
	err = s.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type terminalHost struct {
	screen  tcell.Screen
	raster  *RasterBridge
	session *Session
	size    image.Point
	// Only accessed by the polling goroutine
	mouse        image.Point
	mouseKnown   bool
	mouseButtons tcell.ButtonMask
}

var terminalButtons = []struct {
	mask tcell.ButtonMask
	id   MouseButton
}{
	{tcell.Button1, MousePrimary},
	{tcell.Button3, MouseMiddle},
	{tcell.Button2, MouseSecondary},
}

// pollEvents translates tcell events into session events until the screen is finalized or the user quits.
func (t *terminalHost) pollEvents(ctx context.Context, quit func(), events chan<- Event) {
	emit := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil: // Screen finalized
			return
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				quit()
				return
			case tcell.KeyRune:
				r := unicode.ToLower(ev.Rune())
				if r == 'q' {
					quit()
					return
				}
				if !emit(KeyDown(string(r))) {
					return
				}
			}
		case *tcell.EventMouse:
			if !t.translateMouse(ev, emit) {
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *terminalHost) translateMouse(ev *tcell.EventMouse, emit func(Event) bool) bool {
	buttons := ev.Buttons()
	for _, b := range terminalButtons {
		was, is := t.mouseButtons&b.mask != 0, buttons&b.mask != 0
		if !was && is && !emit(MouseDown(b.id)) {
			return false
		}
		if was && !is && !emit(MouseUp(b.id)) {
			return false
		}
	}
	t.mouseButtons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	if buttons&tcell.WheelUp != 0 && !emit(Wheel(-1)) {
		return false
	}
	if buttons&tcell.WheelDown != 0 && !emit(Wheel(1)) {
		return false
	}
	x, y := ev.Position()
	pos := image.Point{X: x, Y: y}
	if t.mouseKnown && pos != t.mouse {
		delta := pos.Sub(t.mouse).Mul(terminalCellPixels)
		if !emit(MouseMove(float64(delta.X), float64(delta.Y))) {
			return false
		}
	}
	t.mouse, t.mouseKnown = pos, true
	return true
}

// afterTick runs in the session's execution context, right after the frame was rendered.
func (t *terminalHost) afterTick() {
	for _, k := range t.session.mapper.HeldKeys() {
		t.session.Handle(KeyUp(k))
	}
	t.draw()
	t.resize() // Applies to the next tick
}

func (t *terminalHost) resize() {
	w, h := t.screen.Size()
	size := image.Point{X: w, Y: h}
	if size != t.size {
		t.size = size
		t.raster.Resize(w, 2*(h-1)) // Last line is the status bar
	}
}

func (t *terminalHost) draw() {
	render, frame, ok := t.raster.Image(context.Background())
	if !ok || render == nil {
		return
	}
	t.screen.Clear()
	bounds := render.Bounds()
	for y := 0; y < t.size.Y-1; y++ {
		for x := 0; x < t.size.X; x++ {
			top, bottom := image.Point{X: x, Y: 2 * y}, image.Point{X: x, Y: 2*y + 1}
			if !top.In(bounds) || !bottom.In(bounds) {
				continue
			}
			style := tcell.StyleDefault.Foreground(terminalColor(render, top)).Background(terminalColor(render, bottom))
			t.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	info := fmt.Sprintf("Tick %d | %s [V] | %s [M] | Reset [R] | Move [W/A/S/D] | Drag to rotate | Quit [Q]",
		frame.Tick, frame.View, frame.Material)
	drawText(t.screen, 0, t.size.Y-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
	t.screen.Show()
}

func terminalColor(img *image.NRGBA, p image.Point) tcell.Color {
	c := img.NRGBAAt(p.X, p.Y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
