package lab3d

import (
	"context"
	"github.com/hajimehoshi/ebiten/v2"
	"image"
	"log"
	"time"
)

// windowResInv is the number of screen pixels (per axis) for each rendered pixel.
const windowResInv = 2

// RunWindow opens a desktop (or browser) window showing raster, which should also be (part of) the session's bridge.
// Input is translated into Events on every ebiten update, and each update advances one tick.
// It blocks until the window is closed.
func (s *Session) RunWindow(raster *RasterBridge, title string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.watch(ctx); err != nil {
		return err
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(ticksPerSecond(s.mapper.Tuning.TickInterval))
	return ebiten.RunGame(&sessionEbitenGame{
		rasterEbitenGame: &rasterEbitenGame{raster: raster},
		Session:          s,
	})
}

// RunViewer opens a window that only displays raster (e.g. fed by ServeBridge). It blocks until the window is closed.
func RunViewer(raster *RasterBridge, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(&rasterEbitenGame{raster: raster})
}

// rasterEbitenGame displays the last render of a RasterBridge, scaled to the window.
type rasterEbitenGame struct {
	raster     *RasterBridge
	screenSize image.Point
	img        *ebiten.Image
	lastFrame  Frame
	busy       bool // The last Draw could not get the image (a render was in progress)
}

func (g *rasterEbitenGame) Update() error {
	return nil
}

func (g *rasterEbitenGame) Draw(screen *ebiten.Image) {
	g.drawRender(screen)
	g.drawViewerUI(screen)
}

func (g *rasterEbitenGame) drawRender(screen *ebiten.Image) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	render, frame, ok := g.raster.Image(ctx)
	g.busy = !ok
	if ok && render != nil {
		size := render.Bounds().Size()
		if g.img == nil || g.img.Bounds().Size() != size {
			if g.img != nil {
				g.img.Deallocate()
			}
			g.img = ebiten.NewImage(size.X, size.Y)
		}
		g.img.WritePixels(render.Pix) // Always opaque: non-premultiplied == premultiplied
		g.lastFrame = frame
	}
	if g.img == nil {
		return // Nothing rendered yet
	}
	op := &ebiten.DrawImageOptions{}
	imgSize := g.img.Bounds().Size()
	op.GeoM.Scale(float64(g.screenSize.X)/float64(imgSize.X), float64(g.screenSize.Y)/float64(imgSize.Y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.img, op)
}

func (g *rasterEbitenGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	newScreenSize := image.Point{X: outsideWidth, Y: outsideHeight}
	if g.screenSize != newScreenSize {
		g.screenSize = newScreenSize
		g.raster.Resize(outsideWidth/windowResInv, outsideHeight/windowResInv)
	}
	return outsideWidth, outsideHeight // Use all available pixels, no re-scaling
}

// sessionEbitenGame hides the private ebiten implementation while behaving like a *Session internally
type sessionEbitenGame struct {
	*rasterEbitenGame
	*Session
	cursor      image.Point
	cursorKnown bool
}

func (g *sessionEbitenGame) Update() error {
	g.onUpdateInputs()
	if err := g.Advance(); err != nil {
		log.Println("[lab3d] Frame upload error:", err)
	}
	if tps := ticksPerSecond(g.mapper.Tuning.TickInterval); tps != ebiten.TPS() { // Tuning reloaded
		ebiten.SetTPS(tps)
	}
	return nil
}

func (g *sessionEbitenGame) Draw(screen *ebiten.Image) {
	g.drawRender(screen)
	g.drawUI(screen)
}
