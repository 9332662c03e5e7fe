// Package debugview renders the automation engine's live view: the most
// recent captured frame and a crosshair over its last pattern match, in
// an ebiten window, for watching a script run instead of flying blind.
package debugview

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	imaginglib "github.com/bdwalton/huntress/imaging"
)

// Match records where the last successful find landed, for drawing a
// crosshair over it.
type Match struct {
	X, Y int
	Ok   bool
}

// View is an ebiten.Game that displays whatever frame and match were last
// pushed to it via Push. It never drives the automation loop itself; the
// caller runs that on its own goroutine and calls Push after each tick.
type View struct {
	mu      sync.Mutex
	frame   *ebiten.Image
	width   int
	height  int
	match   Match
}

// New creates an empty View sized to w x h; Push resizes it automatically
// if later frames differ.
func New(w, h int) *View {
	return &View{width: w, height: h}
}

// Push installs screenshot as the next frame to render, along with the
// last match (if any) found against it.
func (v *View) Push(screenshot *imaginglib.Screenshot, match Match) {
	v.mu.Lock()
	defer v.mu.Unlock()

	w, h := screenshot.Width(), screenshot.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := screenshot.Pixel(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R(), G: p.G(), B: p.B(), A: 255})
		}
	}
	v.frame = ebiten.NewImageFromImage(img)
	v.width, v.height = w, h
	v.match = match
}

// Update is part of the ebiten.Game interface; the view is driven entirely
// by Push from outside, so there is nothing to advance here.
func (v *View) Update() error {
	return nil
}

// Draw paints the latest pushed frame and, if present, a crosshair over the
// last match.
func (v *View) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.frame == nil {
		return
	}
	screen.DrawImage(v.frame, nil)

	if !v.match.Ok {
		return
	}
	const r = 6
	crosshair := ebiten.NewImage(2*r+1, 1)
	crosshair.Fill(color.RGBA{R: 255, A: 255})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(v.match.X-r), float64(v.match.Y))
	screen.DrawImage(crosshair, op)

	vertical := ebiten.NewImage(1, 2*r+1)
	vertical.Fill(color.RGBA{R: 255, A: 255})
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(v.match.X), float64(v.match.Y-r))
	screen.DrawImage(vertical, op)
}

// Layout returns the captured display's own resolution as fixed logical
// constants, letting ebiten handle any window scaling itself.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.width == 0 || v.height == 0 {
		return 1, 1
	}
	return v.width, v.height
}
