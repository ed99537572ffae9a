package base

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// Cadence 开奖节奏：Ticks 次过场刷新，每次间隔 Interval，最后一次刷新即定局
type Cadence struct {
	Ticks    int
	Interval time.Duration
}

// Total 一局从开始到定局的总时长
func (c Cadence) Total() time.Duration {
	return time.Duration(c.Ticks) * c.Interval
}

// Frame 过场刷新的一帧，纯展示数据，局终即弃
type Frame map[string]any

// Outcome 单局开奖结果
type Outcome struct {
	Win    bool
	Label  string         // 面板文本，如 "7 7 7"、"heads"、"5"
	Detail map[string]any // 玩法私有展示字段
}

// IGame 玩法接口，三个玩法共用一套开奖流程
type IGame interface {
	Name() string  // 标识，如 "slots"
	Title() string // 展示名

	Cadence() Cadence
	RequiresCall() bool // 开局前是否要先选边
	Calls() []string    // 可选边，无需选边返回 nil
	ValidCall(call string) bool

	// Frame 生成一帧过场画面；tick 从 1 递增到 Cadence().Ticks-1
	Frame(r *rand.Rand, tick int) Frame
	// Resolve 定局：产出最终结果，call 仅选边玩法使用
	Resolve(r *rand.Rand, call string) Outcome

	// WinRate 理论赢率，统计与收敛校验用
	WinRate() float64
}

// Default 基础玩法实现，提供默认行为
type Default struct {
	name    string
	title   string
	cadence Cadence
	winRate float64
}

// NewBaseGame 创建基础玩法实例
func NewBaseGame(name, title string, cadence Cadence, winRate float64) *Default {
	return &Default{
		name:    name,
		title:   title,
		cadence: cadence,
		winRate: winRate,
	}
}

func (g *Default) Name() string {
	return g.name
}

func (g *Default) Title() string {
	return g.title
}

func (g *Default) Cadence() Cadence {
	return g.cadence
}

func (g *Default) RequiresCall() bool {
	return false
}

func (g *Default) Calls() []string {
	return nil
}

func (g *Default) ValidCall(call string) bool {
	return call == ""
}

func (g *Default) Frame(r *rand.Rand, tick int) Frame {
	return nil
}

func (g *Default) Resolve(r *rand.Rand, call string) Outcome {
	return Outcome{}
}

func (g *Default) WinRate() float64 {
	return g.winRate
}

// NewRand 每局独立的伪随机源，用 crypto 熵做种
func NewRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		seed := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	))
}
