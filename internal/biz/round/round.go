package round

import (
	"sync"
	"time"

	"vaultspin/internal/biz/game/base"
)

type Phase int32

const (
	PhaseRevealing Phase = 1
	PhaseSettled   Phase = 2
)

func (p Phase) String() string {
	switch p {
	case PhaseRevealing:
		return "revealing"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Round 一局的可寻址记录。过场帧只作为事件发出，从不落在这里
type Round struct {
	id        string
	sessionID string
	game      string
	call      string
	startedAt time.Time

	mu        sync.RWMutex
	phase     Phase
	outcome   base.Outcome
	amount    int64
	settledAt time.Time
}

// New 创建一局，初始为开奖中
func New(id, sessionID, game, call string) *Round {
	return &Round{
		id:        id,
		sessionID: sessionID,
		game:      game,
		call:      call,
		startedAt: time.Now(),
		phase:     PhaseRevealing,
	}
}

func (r *Round) ID() string {
	return r.id
}

func (r *Round) SessionID() string {
	return r.sessionID
}

func (r *Round) Game() string {
	return r.game
}

func (r *Round) Call() string {
	return r.call
}

func (r *Round) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

func (r *Round) SettledAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settledAt
}

// Settle 写入定局结果；重复结算是空操作
func (r *Round) Settle(out base.Outcome, amount int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseSettled {
		return false
	}
	r.phase = PhaseSettled
	r.outcome = out
	r.amount = amount
	r.settledAt = time.Now()
	return true
}

// Snapshot 一局状态快照
type Snapshot struct {
	ID        string
	SessionID string
	Game      string
	Call      string
	Phase     Phase
	Win       bool
	Amount    int64
	Label     string
	Detail    map[string]any
	StartedAt time.Time
	SettledAt time.Time
}

func (r *Round) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		ID:        r.id,
		SessionID: r.sessionID,
		Game:      r.game,
		Call:      r.call,
		Phase:     r.phase,
		Win:       r.outcome.Win,
		Amount:    r.amount,
		Label:     r.outcome.Label,
		Detail:    r.outcome.Detail,
		StartedAt: r.startedAt,
		SettledAt: r.settledAt,
	}
}
