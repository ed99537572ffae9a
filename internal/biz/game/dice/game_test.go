package dice

import (
	"math"
	"math/rand/v2"
	"testing"
)

const testRounds = 100000

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(13, 17))
}

func TestRollConvergence(t *testing.T) {
	g := New()
	r := testRand()
	wins := 0
	for i := 0; i < testRounds; i++ {
		if g.Resolve(r, "").Win {
			wins++
		}
	}
	rate := float64(wins) / float64(testRounds)
	if math.Abs(rate-0.5) > 0.01 {
		t.Fatalf("win rate %.4f, want about 0.5", rate)
	}
	t.Logf("dice win rate %.4f (%d rounds)", rate, testRounds)
}

// 点数 4/5/6 算赢，1..6 均匀
func TestWinMatchesFace(t *testing.T) {
	g := New()
	r := testRand()
	seen := make(map[int]int)
	for i := 0; i < 30000; i++ {
		out := g.Resolve(r, "")
		face, ok := out.Detail["face"].(int)
		if !ok || face < 1 || face > 6 {
			t.Fatalf("bad face %v", out.Detail)
		}
		seen[face]++
		if out.Win != (face > 3) {
			t.Fatalf("face=%d win=%v", face, out.Win)
		}
	}
	for face := 1; face <= 6; face++ {
		if seen[face] == 0 {
			t.Fatalf("face %d never rolled", face)
		}
	}
}

func TestFrameFaceDomain(t *testing.T) {
	g := New()
	r := testRand()
	for tick := 1; tick < cadenceTicks; tick++ {
		f := g.Frame(r, tick)
		face, ok := f["face"].(int)
		if !ok || face < 1 || face > 6 {
			t.Fatalf("tick %d: bad frame %v", tick, f)
		}
	}
}

func TestCadence(t *testing.T) {
	c := New().Cadence()
	if c.Ticks != 16 {
		t.Fatalf("ticks = %d, want 16", c.Ticks)
	}
	if c.Interval.Milliseconds() != 80 {
		t.Fatalf("interval = %v, want 80ms", c.Interval)
	}
}
