package desktop

import (
	"context"
	"fmt"
	"sync"

	"github.com/bdwalton/huntress/imaging"
)

// FileCapturer serves a fixed screenshot loaded from disk, for tests and
// for exercising an FSM against a recorded scene instead of a live display.
type FileCapturer struct {
	screenshot *imaging.Screenshot
}

// NewFileCapturer decodes path once and serves it as every subsequent frame.
func NewFileCapturer(path string) (*FileCapturer, error) {
	s, err := imaging.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("desktop: couldn't load capture fixture: %w", err)
	}
	return &FileCapturer{screenshot: s}, nil
}

func (c *FileCapturer) ScreenSize() (int, int) {
	return c.screenshot.Width(), c.screenshot.Height()
}

func (c *FileCapturer) Frame(ctx context.Context) (*imaging.Screenshot, error) {
	return c.screenshot, nil
}

// RecordingSimulator records every call instead of touching real input
// devices, so preset states can be exercised deterministically in tests.
type RecordingSimulator struct {
	mu      sync.Mutex
	Moves   []struct{ X, Y int }
	Clicks  []MouseButton
	Scrolls []struct{ DX, DY int }
}

func (s *RecordingSimulator) MouseMoveTo(ctx context.Context, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Moves = append(s.Moves, struct{ X, Y int }{x, y})
	return nil
}

func (s *RecordingSimulator) MouseMoveBy(ctx context.Context, dx, dy int) error {
	return s.MouseMoveTo(ctx, dx, dy)
}

func (s *RecordingSimulator) MouseClick(ctx context.Context, btn MouseButton) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clicks = append(s.Clicks, btn)
	return nil
}

func (s *RecordingSimulator) MouseScroll(ctx context.Context, dx, dy int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Scrolls = append(s.Scrolls, struct{ DX, DY int }{dx, dy})
	return nil
}
