package fsm

import "testing"

// bareCtx is the zero-value context used by tests that don't need a real
// desktop.Context to exercise the engine's own bookkeeping.
type bareCtx struct{}

// bareState is a tiny State[bareCtx] used to probe engine mechanics
// (handle stability, add/remove symmetry, at-most-one-transition) without
// any eating or napping logic attached.
type bareState struct {
	name    string
	entered int
	ticked  int
}

func (s *bareState) Enter(ctx *bareCtx) { s.entered++ }
func (s *bareState) Tick(ctx *bareCtx) bool {
	s.ticked++
	return true
}
func (s *bareState) Exit(ctx *bareCtx) {}

type alwaysTransition struct{ fired int }

func (t *alwaysTransition) Satisfied(ctx *bareCtx, src, dst *bareState) bool {
	t.fired++
	return true
}

func TestHandleStability(t *testing.T) {
	f := New[bareCtx, *bareState, *alwaysTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	a := f.AddState(&bareState{name: "A"})
	b := f.AddState(&bareState{name: "B"})
	if a == b {
		t.Fatalf("AddState returned same id for A and B: %d", a)
	}
	// Adding B must not have changed A's id: confirm A's id still names a
	// live state by wiring a transition from it to B.
	if _, ok := f.AddTransition(a, b, &alwaysTransition{}); !ok {
		t.Fatalf("AddTransition(a,b) failed, ids may have shifted")
	}
}

func TestAddRemoveSymmetry(t *testing.T) {
	f := New[bareCtx, *bareState, *alwaysTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	a := f.AddState(&bareState{name: "A"})
	b := f.AddState(&bareState{name: "B"})
	tid, ok := f.AddTransition(a, b, &alwaysTransition{})
	if !ok {
		t.Fatal("AddTransition failed")
	}

	f.RemoveState(a)
	if _, ok := f.edges[tid]; ok {
		t.Error("edge survived RemoveState(a): no edge should reference a removed state")
	}
	if _, ok := f.nodes[b].in[tid]; ok {
		t.Error("b's in-set still references a removed transition")
	}
}

func TestRemoveTransitionDetaches(t *testing.T) {
	f := New[bareCtx, *bareState, *alwaysTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	a := f.AddState(&bareState{name: "A"})
	b := f.AddState(&bareState{name: "B"})
	tid, _ := f.AddTransition(a, b, &alwaysTransition{})

	f.RemoveTransition(tid)
	if _, ok := f.nodes[a].out[tid]; ok {
		t.Error("a's out-set still references a removed transition")
	}
	if _, ok := f.nodes[b].in[tid]; ok {
		t.Error("b's in-set still references a removed transition")
	}
}

func TestAtMostOneTransitionPerTick(t *testing.T) {
	f := New[bareCtx, *bareState, *alwaysTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	mid := f.AddState(&bareState{name: "mid"})
	f.AddTransition(f.EntryStateId(), mid, &alwaysTransition{})
	tr2 := &alwaysTransition{}
	f.AddTransition(mid, f.ExitStateId(), tr2)
	// A second, redundant satisfied transition out of entry: even though
	// both outgoing edges of entry would be satisfied, only one can fire
	// this tick.
	extra := f.AddState(&bareState{name: "extra"})
	f.AddTransition(f.EntryStateId(), extra, &alwaysTransition{})

	var ctx bareCtx
	f.Tick(&ctx)
	if got := f.CurrStateId(); got != mid && got != extra {
		t.Fatalf("after first tick curr = %d, want mid (%d) or extra (%d)", got, mid, extra)
	}
	// Whichever state fired, it must be exactly one: confirm the tick did
	// not go on past mid/extra into exit.
	if f.Exited() {
		t.Fatal("exited after a single tick through only one edge of entry")
	}
}

func TestTerminationIdempotence(t *testing.T) {
	f := New[bareCtx, *bareState, *alwaysTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	f.AddTransition(f.EntryStateId(), f.ExitStateId(), &alwaysTransition{})

	var ctx bareCtx
	f.Tick(&ctx)
	if !f.Exited() {
		t.Fatal("expected exited after direct Entry->Exit transition")
	}
	if got := f.CurrStateId(); got != f.ExitStateId() {
		t.Fatalf("curr = %d, want exit (%d)", got, f.ExitStateId())
	}

	f.Tick(&ctx) // should be a no-op
	if got := f.CurrStateId(); got != f.ExitStateId() {
		t.Fatalf("curr after a post-exit tick = %d, want still exit (%d)", got, f.ExitStateId())
	}
}

// --- eat/nap scenarios ---

// eatState finishes after eating sum units: one on enter, one per
// subsequent tick.
type eatState struct {
	sum, eaten int
}

func (s *eatState) Enter(ctx *bareCtx) { s.eaten = 1 }
func (s *eatState) Tick(ctx *bareCtx) bool {
	if s.eaten < s.sum {
		s.eaten++
	}
	return s.eaten >= s.sum
}
func (s *eatState) Exit(ctx *bareCtx) {}

// napState finishes once it has been ticked `duration` times.
type napState struct {
	duration, remaining int
}

func (s *napState) Enter(ctx *bareCtx) { s.remaining = s.duration }
func (s *napState) Tick(ctx *bareCtx) bool {
	if s.remaining > 0 {
		s.remaining--
	}
	return s.remaining <= 0
}
func (s *napState) Exit(ctx *bareCtx) {}

type anyState interface {
	Enter(ctx *bareCtx)
	Tick(ctx *bareCtx) bool
	Exit(ctx *bareCtx)
}

type directTransition struct{}

func (directTransition) Satisfied(ctx *bareCtx, src, dst anyState) bool { return true }

func TestExitDirectly(t *testing.T) {
	f := New[bareCtx, anyState, directTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	f.AddTransition(f.EntryStateId(), f.ExitStateId(), directTransition{})

	var ctx bareCtx
	f.Tick(&ctx)
	if got := f.CurrStateId(); got != f.ExitStateId() {
		t.Fatalf("after 1 tick curr = %d, want exit", got)
	}
	f.Tick(&ctx)
	if got := f.CurrStateId(); got != f.ExitStateId() {
		t.Fatalf("after 2 ticks curr = %d, want still exit", got)
	}
}

func TestEatFishThenChip(t *testing.T) {
	f := New[bareCtx, anyState, directTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	fish := f.AddState(&eatState{sum: 2})
	chip := f.AddState(&eatState{sum: 3})
	f.AddTransition(f.EntryStateId(), fish, directTransition{})
	f.AddTransition(fish, chip, directTransition{})
	f.AddTransition(chip, f.ExitStateId(), directTransition{})

	var ctx bareCtx
	wantAfter := []StateId{fish, chip, chip, f.ExitStateId()}
	for i, want := range wantAfter {
		f.Tick(&ctx)
		if got := f.CurrStateId(); got != want {
			t.Errorf("after tick %d, curr = %d, want %d", i+1, got, want)
		}
	}
	if !f.Exited() {
		t.Fatal("expected exited after 4 ticks")
	}
}

func TestEatFishThenNap(t *testing.T) {
	f := New[bareCtx, anyState, directTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	fish := f.AddState(&eatState{sum: 2})
	nap := f.AddState(&napState{duration: 2})
	f.AddTransition(f.EntryStateId(), fish, directTransition{})
	f.AddTransition(fish, nap, directTransition{})
	f.AddTransition(nap, f.ExitStateId(), directTransition{})

	var ctx bareCtx
	wantAfter := []StateId{fish, nap, nap, f.ExitStateId()}
	for i, want := range wantAfter {
		f.Tick(&ctx)
		if got := f.CurrStateId(); got != want {
			t.Errorf("after tick %d, curr = %d, want %d", i+1, got, want)
		}
	}
	if !f.Exited() {
		t.Fatal("expected exited after 4 ticks")
	}
}

// loopTransition fires unconditionally in its "direct" mode; in "loopback"
// mode it fires while loopsRemaining > 0 (consuming one loop); in
// "exitward" mode it fires once loopsRemaining has hit zero. The loopback
// and exitward values for a given napState share the *int so they agree on
// when the loop is spent.
type loopKind int

const (
	loopDirect loopKind = iota
	loopBack
	loopExit
)

type loopTransition struct {
	loopsRemaining *int
	kind           loopKind
}

func (lt loopTransition) Satisfied(ctx *bareCtx, src, dst anyState) bool {
	switch lt.kind {
	case loopBack:
		if *lt.loopsRemaining > 0 {
			*lt.loopsRemaining--
			return true
		}
		return false
	case loopExit:
		return *lt.loopsRemaining <= 0
	default:
		return true
	}
}

func TestEatAndNapByTurns(t *testing.T) {
	f := New[bareCtx, anyState, loopTransition](&bareState{name: "entry"}, &bareState{name: "exit"})
	fish := f.AddState(&eatState{sum: 3})
	nap := f.AddState(&napState{duration: 2})
	loopsRemaining := 1

	f.AddTransition(f.EntryStateId(), fish, loopTransition{kind: loopDirect})
	f.AddTransition(fish, nap, loopTransition{kind: loopDirect})
	f.AddTransition(nap, fish, loopTransition{loopsRemaining: &loopsRemaining, kind: loopBack})
	f.AddTransition(nap, f.ExitStateId(), loopTransition{loopsRemaining: &loopsRemaining, kind: loopExit})

	var ctx bareCtx
	// Entry->Fish(2 ticks)->Nap(2 ticks)->Fish(2 ticks)->Nap(2 ticks)->Exit:
	// 9 ticks total, looping through Fish and Nap once before exiting.
	for i := 0; i < 8; i++ {
		f.Tick(&ctx)
		if f.Exited() {
			t.Fatalf("exited early, after only %d ticks", i+1)
		}
	}
	f.Tick(&ctx)
	if !f.Exited() {
		t.Fatal("expected exited after 9 ticks")
	}
}
