//go:build linux

package desktop

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/bdwalton/huntress/imaging"
)

// X11Capturer captures the root window of an X display via XGetImage. It is
// the production Capturer on Linux.
type X11Capturer struct {
	conn *xgb.Conn
	root xproto.Window
	w, h int
}

// NewX11Capturer binds to an already open conn (the caller owns its
// lifetime) and resolves the
// dimensions of the default screen's root window.
func NewX11Capturer(conn *xgb.Conn) (*X11Capturer, error) {
	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		return nil, fmt.Errorf("desktop: X server returned no screens")
	}
	screen := setup.Roots[0]
	return &X11Capturer{
		conn: conn,
		root: screen.Root,
		w:    int(screen.WidthInPixels),
		h:    int(screen.HeightInPixels),
	}, nil
}

func (c *X11Capturer) ScreenSize() (int, int) { return c.w, c.h }

// Frame pulls a full-screen ZPixmap image from the root window and repacks
// it into a BGRA Screenshot. X11's default visual already stores pixels in
// BGRX order on little-endian hosts, so the repack is a straight copy with
// alpha forced to opaque.
func (c *X11Capturer) Frame(ctx context.Context) (*imaging.Screenshot, error) {
	reply, err := xproto.GetImage(
		c.conn, xproto.ImageFormatZPixmap, xproto.Drawable(c.root),
		0, 0, uint16(c.w), uint16(c.h), 0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("desktop: GetImage failed: %w", err)
	}

	buf := make([]byte, c.w*c.h*4)
	for i := 0; i < c.w*c.h; i++ {
		buf[i*4+0] = reply.Data[i*4+0] // B
		buf[i*4+1] = reply.Data[i*4+1] // G
		buf[i*4+2] = reply.Data[i*4+2] // R
		buf[i*4+3] = 0xff
	}
	return imaging.FromBGRA(c.w, c.h, buf)
}

// X11Simulator injects mouse events via the XTEST extension's FakeInput
// request, the same mechanism xdotool and similar tools use.
type X11Simulator struct {
	conn *xgb.Conn
}

// NewX11Simulator initializes the XTEST extension on conn.
func NewX11Simulator(conn *xgb.Conn) (*X11Simulator, error) {
	if err := xtest.Init(conn); err != nil {
		return nil, fmt.Errorf("desktop: XTEST extension unavailable: %w", err)
	}
	return &X11Simulator{conn: conn}, nil
}

func (s *X11Simulator) MouseMoveTo(ctx context.Context, x, y int) error {
	setup := xproto.Setup(s.conn)
	root := setup.Roots[0].Root
	return xtest.FakeInputChecked(
		s.conn, xproto.MotionNotify, 0, 0, root, int16(x), int16(y), 0,
	).Check()
}

func (s *X11Simulator) MouseMoveBy(ctx context.Context, dx, dy int) error {
	return xtest.FakeInputChecked(
		s.conn, xproto.MotionNotify, 1, 0, 0, int16(dx), int16(dy), 0,
	).Check()
}

// button maps a MouseButton to the X11 pointer button index FakeInput
// expects (1-indexed: left, middle, right).
func button(btn MouseButton) byte {
	switch btn {
	case MouseButtonMiddle:
		return 2
	case MouseButtonRight:
		return 3
	default:
		return 1
	}
}

func (s *X11Simulator) MouseClick(ctx context.Context, btn MouseButton) error {
	b := button(btn)
	if err := xtest.FakeInputChecked(s.conn, xproto.ButtonPress, b, 0, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("desktop: button press: %w", err)
	}
	if err := xtest.FakeInputChecked(s.conn, xproto.ButtonRelease, b, 0, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("desktop: button release: %w", err)
	}
	return nil
}

func (s *X11Simulator) MouseScroll(ctx context.Context, dx, dy int) error {
	var vertical, horizontal byte
	if dy > 0 {
		vertical = 4
	} else if dy < 0 {
		vertical = 5
	}
	if dx > 0 {
		horizontal = 6
	} else if dx < 0 {
		horizontal = 7
	}

	for _, b := range []byte{vertical, horizontal} {
		if b == 0 {
			continue
		}
		if err := xtest.FakeInputChecked(s.conn, xproto.ButtonPress, b, 0, 0, 0, 0, 0).Check(); err != nil {
			return fmt.Errorf("desktop: scroll press: %w", err)
		}
		if err := xtest.FakeInputChecked(s.conn, xproto.ButtonRelease, b, 0, 0, 0, 0, 0).Check(); err != nil {
			return fmt.Errorf("desktop: scroll release: %w", err)
		}
	}
	return nil
}
