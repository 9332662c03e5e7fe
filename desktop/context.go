// Package desktop adapts the raw capture and input-injection primitives an
// FSM preset state needs to a concrete display backend.
package desktop

import (
	"context"

	"golang.org/x/mobile/event/mouse"

	"github.com/bdwalton/huntress/imaging"
)

// MouseButton reuses the mobile event package's button identity instead of
// declaring a parallel enum.
type MouseButton = mouse.Button

const (
	MouseButtonLeft   = mouse.ButtonLeft
	MouseButtonMiddle = mouse.ButtonMiddle
	MouseButtonRight  = mouse.ButtonRight
)

// Capturer produces screenshots of the current display. Implementations may
// block until a frame is available.
type Capturer interface {
	// ScreenSize reports the dimensions of the display being captured.
	ScreenSize() (width, height int)
	// Frame captures and returns the current screen contents.
	Frame(ctx context.Context) (*imaging.Screenshot, error)
}

// Simulator injects mouse input into the display.
type Simulator interface {
	MouseMoveTo(ctx context.Context, x, y int) error
	MouseMoveBy(ctx context.Context, dx, dy int) error
	MouseClick(ctx context.Context, btn MouseButton) error
	MouseScroll(ctx context.Context, dx, dy int) error
}

// Context bundles a Capturer and a Simulator, the two desktop adapters every
// FSM preset state is driven against.
type Context struct {
	capturer  Capturer
	simulator Simulator
}

// NewContext wires an existing Capturer/Simulator pair into a Context. It is
// the caller's job to pick a matching pair (real X11 backend, or a
// file-backed fake for tests).
func NewContext(capturer Capturer, simulator Simulator) *Context {
	return &Context{capturer: capturer, simulator: simulator}
}

func (c *Context) Capturer() Capturer   { return c.capturer }
func (c *Context) Simulator() Simulator { return c.simulator }
