// Command huntress drives a preset-built FSM against the live screen, or,
// in -find-pattern mode, runs a single offline pattern search for
// debugging a capture.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb"
	"golang.org/x/sync/errgroup"

	"github.com/bdwalton/huntress/debugview"
	"github.com/bdwalton/huntress/desktop"
	"github.com/bdwalton/huntress/fsm"
	"github.com/bdwalton/huntress/imaging"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	findPattern  = flag.String("find-pattern", "", "Run a single offline search for this pattern PNG against -find-screenshot and exit.")
	findScreen   = flag.String("find-screenshot", "", "Screenshot PNG to search when -find-pattern is set.")
	startPattern = flag.String("start-pattern", "", "Pattern PNG that, once visible, triggers the scripted click.")
	clickPattern = flag.String("click-pattern", "", "Pattern PNG to click on once -start-pattern is seen.")
	debugWindow  = flag.Bool("debug-view", false, "Show a live window of the captured frame (no match position is drawn).")
	tickInterval = flag.Duration("tick-interval", 200*time.Millisecond, "Sleep between FSM ticks.")
)

func main() {
	flag.Parse()

	if *findPattern != "" {
		if err := runFindPattern(*findPattern, *findScreen); err != nil {
			log.Fatalf("find-pattern: %v", err)
		}
		return
	}

	if err := run(); err != nil {
		log.Fatalf("huntress: %v", err)
	}
}

// runFindPattern mirrors the original project's standalone search_pattern
// example: load a pattern and a screenshot from disk and report where (if
// anywhere) the pattern was found.
func runFindPattern(patternPath, screenshotPath string) error {
	patternBuf, err := os.ReadFile(patternPath)
	if err != nil {
		return fmt.Errorf("reading pattern: %w", err)
	}
	pattern, err := imaging.PatternFromFileBuf(patternBuf)
	if err != nil {
		return fmt.Errorf("decoding pattern: %w", err)
	}

	screenshot, err := imaging.FromFile(screenshotPath)
	if err != nil {
		return fmt.Errorf("decoding screenshot: %w", err)
	}

	x, y, ok := imaging.NewFinder(screenshot).Find(pattern, imaging.Left)
	if !ok {
		fmt.Println("pattern not found")
		return nil
	}
	fmt.Printf("pattern found, position: (%d, %d)\n", x, y)
	return nil
}

// run builds the real X11 desktop context, a small click-on-sight FSM, and
// drives it to completion (or until interrupted), optionally alongside a
// live debug window.
func run() error {
	if *startPattern == "" || *clickPattern == "" {
		return fmt.Errorf("-start-pattern and -click-pattern are required outside -find-pattern mode")
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connecting to X server: %w", err)
	}
	defer conn.Close()

	capturer, err := desktop.NewX11Capturer(conn)
	if err != nil {
		return fmt.Errorf("initializing capturer: %w", err)
	}
	simulator, err := desktop.NewX11Simulator(conn)
	if err != nil {
		return fmt.Errorf("initializing simulator: %w", err)
	}
	ctx := desktop.NewContext(capturer, simulator)

	startBuf, err := os.ReadFile(*startPattern)
	if err != nil {
		return fmt.Errorf("reading start pattern: %w", err)
	}
	start, err := imaging.PatternFromFileBuf(startBuf)
	if err != nil {
		return fmt.Errorf("decoding start pattern: %w", err)
	}

	clickBuf, err := os.ReadFile(*clickPattern)
	if err != nil {
		return fmt.Errorf("reading click pattern: %w", err)
	}
	click, err := imaging.PatternFromFileBuf(clickBuf)
	if err != nil {
		return fmt.Errorf("decoding click pattern: %w", err)
	}

	machine := fsm.NewPreset()
	entry := machine.EntryStateId()
	exit := machine.ExitStateId()

	clickState := machine.AddState(fsm.MouseClickAt(click, imaging.Up, desktop.MouseButtonLeft))
	machine.AddTransition(entry, clickState, fsm.PatternFound(start, imaging.Up))
	machine.AddTransition(clickState, exit, fsm.Direct())

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var view *debugview.View
	if *debugWindow {
		w, h := capturer.ScreenSize()
		view = debugview.New(w, h)
	}

	g, gctx := errgroup.WithContext(signalCtx)
	g.Go(func() error {
		return driveFsm(gctx, machine, ctx, capturer, view)
	})
	if view != nil {
		g.Go(func() error {
			return ebiten.RunGame(view)
		})
	}

	return g.Wait()
}

func driveFsm(ctx context.Context, machine *fsm.PresetFsm, fctx *desktop.Context, capturer desktop.Capturer, view *debugview.View) error {
	for machine.CurrStateId() != machine.ExitStateId() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		machine.Tick(fctx)

		if view != nil {
			if frame, err := capturer.Frame(ctx); err == nil {
				view.Push(frame, debugview.Match{})
			}
		}

		time.Sleep(*tickInterval)
	}
	return nil
}
