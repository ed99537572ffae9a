package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"vaultspin/internal/biz/game/base"
	"vaultspin/pkg/xgo"
)

// 默认规则：派彩 [400,500]，3 赢解锁宝库，历史最多 5 条
const (
	defaultWinMin         = 400
	defaultWinMax         = 500
	defaultVaultThreshold = 3
	defaultHistoryLimit   = 5
)

type Phase int32

const (
	PhaseIdle Phase = 1
	PhaseBusy Phase = 2 // 开奖动画进行中
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBusy:
		return "busy"
	default:
		return "unknown"
	}
}

const OutcomeWin = "win"

// HistoryEntry 历史记录一条；只记赢局，输局从不入列
type HistoryEntry struct {
	Game    string    `json:"game"`
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}

// Config 会话规则参数，零值回退默认
type Config struct {
	WinMin         int64
	WinMax         int64
	VaultThreshold int64
	HistoryLimit   int
}

func (c Config) withDefaults() Config {
	c.WinMin = xgo.Or(c.WinMin, defaultWinMin)
	c.WinMax = xgo.Or(c.WinMax, defaultWinMax)
	if c.WinMax < c.WinMin {
		c.WinMax = c.WinMin
	}
	c.VaultThreshold = xgo.Or(c.VaultThreshold, defaultVaultThreshold)
	c.HistoryLimit = xgo.Clamp(xgo.Or(c.HistoryLimit, defaultHistoryLimit), 1, 100)
	return c
}

// Session 单个玩家的全部可变状态；不变量只在这里维护：
// wins 单调不减、balance 只在赢局按 [WinMin,WinMax] 增加、
// showVault 一旦置位不再回退、动画中不接受换玩法与开新局。
type Session struct {
	id        string
	createdAt time.Time
	cfg       Config

	mu          sync.Mutex
	phase       Phase
	currentGame string
	wins        int64
	balance     int64
	showVault   bool
	lastResult  string
	history     []HistoryEntry
	lastSeen    time.Time
	rng         *rand.Rand
}

// Option 会话选项
type Option func(*Session)

// WithRand 指定派彩随机源
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// New 创建会话，初始玩法 game，全部计数归零
func New(id, game string, cfg Config, opts ...Option) *Session {
	now := time.Now()
	s := &Session{
		id:          id,
		createdAt:   now,
		cfg:         cfg.withDefaults(),
		phase:       PhaseIdle,
		currentGame: game,
		lastSeen:    now,
		rng:         base.NewRand(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) CurrentGame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentGame
}

func (s *Session) ShowVault() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showVault
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Touch 记一次访问，空闲回收以此为准
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// SelectGame 切换玩法并清空上局面板；动画中静默忽略，返回 false
func (s *Session) SelectGame(game string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		return false
	}
	s.currentGame = game
	s.lastResult = ""
	s.lastSeen = time.Now()
	return true
}

// BeginRound 申请开局租约 Idle→Busy；动画中返回 false，静默拒绝。
// 拿到租约的一方负责用 ResolveRound 归还。
func (s *Session) BeginRound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		return false
	}
	s.phase = PhaseBusy
	s.lastSeen = time.Now()
	return true
}

// Result 单局结算汇总
type Result struct {
	Win           bool
	Amount        int64
	Wins          int64
	Balance       int64
	ShowVault     bool
	VaultUnlocked bool // 本局首次达到阈值
	LastResult    string
}

// ResolveRound 归还租约 Busy→Idle 并结算。赢局在同一临界区内完成：
// 抽派彩、加赢局数、加余额、判宝库、头插历史并截断、刷新面板。
// 输局只归还租约，其余字段一概不动。
func (s *Session) ResolveRound(out base.Outcome) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBusy {
		return Result{}, false
	}
	s.phase = PhaseIdle
	s.lastSeen = time.Now()

	if !out.Win {
		return Result{
			Wins:       s.wins,
			Balance:    s.balance,
			ShowVault:  s.showVault,
			LastResult: s.lastResult,
		}, true
	}

	amount := s.cfg.WinMin + s.rng.Int64N(s.cfg.WinMax-s.cfg.WinMin+1)
	return s.applyWinLocked(amount), true
}

// applyWinLocked 赢局结算，调用方持锁
func (s *Session) applyWinLocked(amount int64) Result {
	s.wins++
	s.balance += amount

	unlocked := false
	if !s.showVault && s.wins >= s.cfg.VaultThreshold {
		s.showVault = true
		unlocked = true
	}

	s.history = append([]HistoryEntry{{
		Game:    s.currentGame,
		Outcome: OutcomeWin,
		At:      time.Now(),
	}}, s.history...)
	if len(s.history) > s.cfg.HistoryLimit {
		s.history = s.history[:s.cfg.HistoryLimit]
	}

	s.lastResult = fmt.Sprintf("+$%d!", amount)

	return Result{
		Win:           true,
		Amount:        amount,
		Wins:          s.wins,
		Balance:       s.balance,
		ShowVault:     s.showVault,
		VaultUnlocked: unlocked,
		LastResult:    s.lastResult,
	}
}

// Snapshot 完整状态快照，一次取整
type Snapshot struct {
	ID          string
	Phase       Phase
	CurrentGame string
	Wins        int64
	Balance     int64
	ShowVault   bool
	LastResult  string
	History     []HistoryEntry
	CreatedAt   time.Time
	LastSeen    time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := make([]HistoryEntry, len(s.history))
	copy(hist, s.history)
	return Snapshot{
		ID:          s.id,
		Phase:       s.phase,
		CurrentGame: s.currentGame,
		Wins:        s.wins,
		Balance:     s.balance,
		ShowVault:   s.showVault,
		LastResult:  s.lastResult,
		History:     hist,
		CreatedAt:   s.createdAt,
		LastSeen:    s.lastSeen,
	}
}

// History 历史副本，新局在前
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := make([]HistoryEntry, len(s.history))
	copy(hist, s.history)
	return hist
}
