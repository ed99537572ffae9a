package dice

import (
	"math/rand/v2"
	"strconv"
	"time"

	"vaultspin/internal/biz/game/base"
)

const Name = "dice"
const Title = "Dice Roll"

// 过场 16 帧、每帧 80ms
const (
	cadenceTicks    = 16
	cadenceInterval = 80 * time.Millisecond
)

// 掷出 4/5/6 算赢
const winFloor = 3

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

func (g *Game) Frame(r *rand.Rand, tick int) base.Frame {
	return base.Frame{"face": rollFace(r)}
}

func (g *Game) Resolve(r *rand.Rand, call string) base.Outcome {
	face := rollFace(r)
	return base.Outcome{
		Win:    face > winFloor,
		Label:  strconv.Itoa(face),
		Detail: map[string]any{"face": face},
	}
}

func rollFace(r *rand.Rand) int {
	return r.IntN(6) + 1
}
