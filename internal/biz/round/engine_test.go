package round

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"vaultspin/internal/biz/game/base"

	"github.com/go-kratos/kratos/v2/log"
)

type stubGame struct {
	*base.Default
	win bool
}

func newStubGame(ticks int, interval time.Duration, win bool) *stubGame {
	return &stubGame{
		Default: base.NewBaseGame("stub", "Stub", base.Cadence{Ticks: ticks, Interval: interval}, 0.5),
		win:     win,
	}
}

func (g *stubGame) Frame(r *rand.Rand, tick int) base.Frame {
	return base.Frame{"tick": tick}
}

func (g *stubGame) Resolve(r *rand.Rand, call string) base.Outcome {
	return base.Outcome{Win: g.win, Label: "stub"}
}

type recordSink struct {
	mu      sync.Mutex
	frames  []int
	settled chan base.Outcome
}

func newRecordSink() *recordSink {
	return &recordSink{settled: make(chan base.Outcome, 8)}
}

func (s *recordSink) OnFrame(r *Round, tick int, frame base.Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, tick)
	s.mu.Unlock()
}

func (s *recordSink) OnSettle(r *Round, out base.Outcome) {
	r.Settle(out, 0)
	s.settled <- out
}

func TestEngineRunsCadence(t *testing.T) {
	e, cleanup, err := NewEngine(4, log.DefaultLogger)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	g := newStubGame(3, 2*time.Millisecond, true)
	rd := New("r1", "s1", "stub", "")
	sink := newRecordSink()

	start := time.Now()
	e.Run(rd, g, sink)

	var out base.Outcome
	select {
	case out = <-sink.settled:
	case <-time.After(2 * time.Second):
		t.Fatal("round never settled")
	}
	if elapsed := time.Since(start); elapsed < g.Cadence().Total() {
		t.Fatalf("settled too early: %v < %v", elapsed, g.Cadence().Total())
	}
	if !out.Win {
		t.Fatalf("outcome: %+v", out)
	}

	sink.mu.Lock()
	frames := append([]int{}, sink.frames...)
	sink.mu.Unlock()
	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Fatalf("frames = %v, want [1 2]", frames)
	}
	if rd.Phase() != PhaseSettled {
		t.Fatalf("round phase = %v", rd.Phase())
	}
}

// 池满降级：所有局都必须定局，一局不丢
func TestEngineDegradesWhenPoolFull(t *testing.T) {
	e, cleanup, err := NewEngine(1, log.DefaultLogger)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	g := newStubGame(2, 5*time.Millisecond, false)
	sink := newRecordSink()

	const n = 4
	for i := 0; i < n; i++ {
		e.Run(New("r", "s", "stub", ""), g, sink)
	}

	for i := 0; i < n; i++ {
		select {
		case <-sink.settled:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d/%d rounds settled", i, n)
		}
	}
}

// 单帧节奏（硬币）：没有过场帧，直接定局
func TestEngineSingleTick(t *testing.T) {
	e, cleanup, err := NewEngine(2, log.DefaultLogger)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	g := newStubGame(1, 2*time.Millisecond, true)
	sink := newRecordSink()
	e.Run(New("r1", "s1", "stub", "heads"), g, sink)

	select {
	case <-sink.settled:
	case <-time.After(time.Second):
		t.Fatal("round never settled")
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.frames) != 0 {
		t.Fatalf("frames = %v, want none", sink.frames)
	}
}
