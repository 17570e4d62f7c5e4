package lab3d

import (
	"fmt"
	"github.com/Yeicor/lab3d/internal"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
	"image"
	"image/color"
	"strings"
)

var defaultFont = basicfont.Face7x13

// ebitenKeys maps the physical keys to the identifiers understood by the input mapper
var ebitenKeys = []struct {
	key ebiten.Key
	id  string
}{
	{ebiten.KeyW, KeyForward},
	{ebiten.KeyA, KeyLeft},
	{ebiten.KeyS, KeyBackward},
	{ebiten.KeyD, KeyRight},
	{ebiten.KeyR, KeyReset},
	{ebiten.KeyV, KeyView},
	{ebiten.KeyM, KeyMaterial},
}

var ebitenButtons = []struct {
	button ebiten.MouseButton
	id     MouseButton
}{
	{ebiten.MouseButtonLeft, MousePrimary},
	{ebiten.MouseButtonMiddle, MouseMiddle},
	{ebiten.MouseButtonRight, MouseSecondary},
}

// onUpdateInputs translates this update's ebiten input state into events
func (g *sessionEbitenGame) onUpdateInputs() {
	// Keys
	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.Handle(KeyDown(k.id))
		}
		if inpututil.IsKeyJustReleased(k.key) {
			g.Handle(KeyUp(k.id))
		}
	}
	// Buttons (before movement, so that a drag starting on this update is not lost)
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.button) {
			g.Handle(MouseDown(b.id))
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			g.Handle(MouseUp(b.id))
		}
	}
	// Movement: ebiten only reports absolute positions
	cx, cy := ebiten.CursorPosition()
	cursor := image.Point{X: cx, Y: cy}
	if g.cursorKnown && cursor != g.cursor {
		delta := cursor.Sub(g.cursor)
		g.Handle(MouseMove(float64(delta.X), float64(delta.Y)))
	}
	g.cursor, g.cursorKnown = cursor, true
	// Wheel: ebiten reports scrolling up as positive, the opposite of a DOM wheel event's deltaY
	if _, wheelUpDown := ebiten.Wheel(); wheelUpDown != 0 {
		g.Handle(Wheel(-wheelUpDown))
	}
	// Releases are lost while unfocused: do not keep moving forever
	if !ebiten.IsFocused() {
		g.mapper.ReleaseAll()
	}
}

// drawViewerUI notifies when rendering
func (g *rasterEbitenGame) drawViewerUI(screen *ebiten.Image) {
	if g.busy {
		drawDefaultTextWithShadow(screen, "Rendering...", 5, 5+12, color.RGBA{R: 255, A: 255})
	}
	msg := fmt.Sprintf("Viewer\n======\nTPS: %0.2f\nTick: %d\nView: %s\nMaterial: %s", ebiten.ActualTPS(),
		g.lastFrame.Tick, g.lastFrame.View, g.lastFrame.Material)
	boundString := text.BoundString(defaultFont, msg)
	drawDefaultTextWithShadow(screen, msg, 5, g.screenSize.Y-boundString.Size().Y+10, color.RGBA{G: 255, A: 255})
}

// drawUI draws the debug panel (every numeric state field) and the controls help
func (g *sessionEbitenGame) drawUI(screen *ebiten.Image) {
	if g.busy {
		drawDefaultTextWithShadow(screen, "Rendering...", 5, 5+12, color.RGBA{R: 255, A: 255})
	}

	// Debug panel
	fields, err := internal.NumericFields(g.state)
	if err == nil {
		var sb strings.Builder
		for _, f := range fields {
			_, _ = fmt.Fprintf(&sb, "%s: %.4f\n", f.Path, f.Value)
		}
		panel := sb.String()
		boundString := text.BoundString(defaultFont, panel)
		drawDefaultTextWithShadow(screen, panel, g.screenSize.X-boundString.Size().X-10, 5+12, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}

	// Current state and controls
	msgFmt := "Lab3D\n=====\nTPS: %0.2f/%d\nView: %s [V]\nMaterial: %s [M]\nReset [R]\nMove cam [W/A/S/D]\nRaise/lower cam [MouseWheel]" +
		"\nRotate cam [LeftMouse]\nRotate object Y [MiddleMouse]\nRotate object X/Z [RightMouse]"
	msg := fmt.Sprintf(msgFmt, ebiten.ActualTPS(), ebiten.TPS(), g.state.View, g.state.Material)
	boundString := text.BoundString(defaultFont, msg)
	drawDefaultTextWithShadow(screen, msg, 5, g.screenSize.Y-boundString.Size().Y+10, color.RGBA{G: 255, A: 255})
}

func drawDefaultTextWithShadow(screen *ebiten.Image, msg string, x, y int, clr color.Color) {
	text.Draw(screen, msg, defaultFont, x+1, y+1, color.RGBA{A: 255})
	text.Draw(screen, msg, defaultFont, x, y, clr)
}
