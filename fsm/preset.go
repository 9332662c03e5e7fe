package fsm

import (
	"context"

	"github.com/bdwalton/huntress/desktop"
	"github.com/bdwalton/huntress/imaging"
)

// PresetState is the small vocabulary of state behaviors a "click where you
// see X" script needs, so most scripts never implement the State interface
// by hand.
type PresetState struct {
	kind presetKind

	pattern *imaging.Pattern
	dir     imaging.Direction
	btn     desktop.MouseButton
	dx, dy  int
}

type presetKind int

const (
	kindEmpty presetKind = iota
	kindEntry
	kindExit
	kindMouseMoveTo
	kindMouseClick
	kindMouseClickAt
	kindMouseScroll
)

// MouseMoveTo moves the pointer onto pattern once it is found, searching
// ties in favor of dir.
func MouseMoveTo(pattern *imaging.Pattern, dir imaging.Direction) PresetState {
	return PresetState{kind: kindMouseMoveTo, pattern: pattern, dir: dir}
}

// MouseClick clicks btn immediately on entry, without moving the pointer.
func MouseClick(btn desktop.MouseButton) PresetState {
	return PresetState{kind: kindMouseClick, btn: btn}
}

// MouseClickAt moves onto pattern, then clicks btn, once pattern is found.
func MouseClickAt(pattern *imaging.Pattern, dir imaging.Direction, btn desktop.MouseButton) PresetState {
	return PresetState{kind: kindMouseClickAt, pattern: pattern, dir: dir, btn: btn}
}

// MouseScroll scrolls by (dx,dy) immediately on entry.
func MouseScroll(dx, dy int) PresetState {
	return PresetState{kind: kindMouseScroll, dx: dx, dy: dy}
}

// Empty finishes immediately, useful as a no-op waypoint between transitions.
func Empty() PresetState { return PresetState{kind: kindEmpty} }

// Entry and Exit build the bookend states every Fsm needs; callers normally
// never construct these directly since NewPreset builds them internally.
func Entry() PresetState { return PresetState{kind: kindEntry} }
func Exit() PresetState  { return PresetState{kind: kindExit} }

func (s PresetState) Enter(ctx *desktop.Context) {
	switch s.kind {
	case kindMouseClick:
		ctx.Simulator().MouseClick(context.Background(), s.btn)
	case kindMouseScroll:
		ctx.Simulator().MouseScroll(context.Background(), s.dx, s.dy)
	}
}

// Tick runs the state's per-frame work and reports whether it has finished.
// MouseMoveTo and MouseClickAt return false (stay in this state, retry next
// tick) until the pattern is actually found on screen.
func (s PresetState) Tick(ctx *desktop.Context) bool {
	switch s.kind {
	case kindMouseMoveTo:
		x, y, ok := findOnScreen(ctx, s.pattern, s.dir)
		if !ok {
			return false
		}
		ctx.Simulator().MouseMoveTo(context.Background(), x, y)
		return true
	case kindMouseClickAt:
		x, y, ok := findOnScreen(ctx, s.pattern, s.dir)
		if !ok {
			return false
		}
		ctx.Simulator().MouseMoveTo(context.Background(), x, y)
		ctx.Simulator().MouseClick(context.Background(), s.btn)
		return true
	default:
		return true
	}
}

func (s PresetState) Exit(ctx *desktop.Context) {}

func findOnScreen(ctx *desktop.Context, pattern *imaging.Pattern, dir imaging.Direction) (int, int, bool) {
	screenshot, err := ctx.Capturer().Frame(context.Background())
	if err != nil {
		return 0, 0, false
	}
	return imaging.NewFinder(screenshot).Find(pattern, dir)
}

// PresetTransition is the matching vocabulary of edge conditions: either
// unconditional (Direct), or gated on the target pattern being visible
// (PatternFound).
type PresetTransition struct {
	kind    transitionKind
	pattern *imaging.Pattern
	dir     imaging.Direction
}

type transitionKind int

const (
	kindDirect transitionKind = iota
	kindPatternFound
)

// Direct always fires once the source state has finished.
func Direct() PresetTransition { return PresetTransition{kind: kindDirect} }

// PatternFound fires once pattern is visible on screen.
func PatternFound(pattern *imaging.Pattern, dir imaging.Direction) PresetTransition {
	return PresetTransition{kind: kindPatternFound, pattern: pattern, dir: dir}
}

func (t PresetTransition) Satisfied(ctx *desktop.Context, src, dst PresetState) bool {
	switch t.kind {
	case kindPatternFound:
		_, _, ok := findOnScreen(ctx, t.pattern, t.dir)
		return ok
	default:
		return true
	}
}

// PresetFsm is the Fsm instantiation every preset-built script runs on.
type PresetFsm = Fsm[desktop.Context, PresetState, PresetTransition]

// NewPreset builds a PresetFsm with the standard Entry/Exit states installed.
func NewPreset() *PresetFsm {
	return New[desktop.Context, PresetState, PresetTransition](Entry(), Exit())
}
