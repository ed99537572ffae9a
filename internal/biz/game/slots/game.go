package slots

import (
	"math/rand/v2"
	"strings"
	"time"

	"vaultspin/internal/biz/game/base"
)

const Name = "slots"
const Title = "Lucky Reels"

// 过场 21 帧、每帧 100ms，最后一帧定局
const (
	cadenceTicks    = 21
	cadenceInterval = 100 * time.Millisecond
)

// 定局先抽一次偏置：超过 0.4 直接强制三连出赢，否则三轴独立、全同才赢
const forceWinCut = 0.4

// 理论赢率 0.6 + 0.4×(1/36) ≈ 0.611
const theoreticalWinRate = 0.6 + 0.4/36.0

var symbols = []string{"🍒", "🍋", "🍊", "🔔", "⭐", "💎"}

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

func (g *Game) Frame(r *rand.Rand, tick int) base.Frame {
	return base.Frame{"symbols": drawReels(r)}
}

func (g *Game) Resolve(r *rand.Rand, call string) base.Outcome {
	var reels []string
	if r.Float64() > forceWinCut {
		s := symbols[r.IntN(len(symbols))]
		reels = []string{s, s, s}
	} else {
		reels = drawReels(r)
	}
	win := reels[0] == reels[1] && reels[1] == reels[2]
	return base.Outcome{
		Win:    win,
		Label:  strings.Join(reels, " "),
		Detail: map[string]any{"symbols": reels},
	}
}

func drawReels(r *rand.Rand) []string {
	return []string{
		symbols[r.IntN(len(symbols))],
		symbols[r.IntN(len(symbols))],
		symbols[r.IntN(len(symbols))],
	}
}
