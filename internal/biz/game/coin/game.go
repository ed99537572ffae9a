package coin

import (
	"math/rand/v2"
	"time"

	"vaultspin/internal/biz/game/base"
)

const Name = "coin"
const Title = "Coin Flip"

const (
	Heads = "heads"
	Tails = "tails"
)

// 无过场帧，固定 1s 后开奖
const (
	cadenceTicks    = 1
	cadenceInterval = 1000 * time.Millisecond
)

const theoreticalWinRate = 0.5

var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(Name, Title,
		base.Cadence{Ticks: cadenceTicks, Interval: cadenceInterval},
		theoreticalWinRate,
	)}
}

func (g *Game) RequiresCall() bool {
	return true
}

func (g *Game) Calls() []string {
	return []string{Heads, Tails}
}

func (g *Game) ValidCall(call string) bool {
	return call == Heads || call == Tails
}

func (g *Game) Resolve(r *rand.Rand, call string) base.Outcome {
	side := Tails
	if r.IntN(2) == 0 {
		side = Heads
	}
	return base.Outcome{
		Win:    side == call,
		Label:  side,
		Detail: map[string]any{"side": side, "call": call},
	}
}
