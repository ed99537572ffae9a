package stats

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"vaultspin/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
)

// Component 跨会话聚合计数，全部原子操作
type Component struct {
	startedAt time.Time

	sessionsCreated atomic.Int64
	roundsStarted   atomic.Int64
	roundsSettled   atomic.Int64
	roundsWon       atomic.Int64
	creditsWon      atomic.Int64
	vaultsUnlocked  atomic.Int64
	busyRejected    atomic.Int64 // 动画中被静默忽略的请求数

	mu      sync.Mutex
	perGame map[string]*gameCounters
}

type gameCounters struct {
	rounds atomic.Int64
	wins   atomic.Int64
}

func New() *Component {
	return &Component{
		startedAt: time.Now(),
		perGame:   make(map[string]*gameCounters),
	}
}

func (c *Component) game(name string) *gameCounters {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.perGame[name]
	if !ok {
		g = &gameCounters{}
		c.perGame[name] = g
	}
	return g
}

func (c *Component) AddSession() {
	c.sessionsCreated.Add(1)
}

func (c *Component) AddRoundStarted(game string) {
	c.roundsStarted.Add(1)
	c.game(game).rounds.Add(1)
}

// AddRoundSettled 定局入账；赢局带派彩金额
func (c *Component) AddRoundSettled(game string, win bool, amount int64) {
	c.roundsSettled.Add(1)
	if win {
		c.roundsWon.Add(1)
		c.creditsWon.Add(amount)
		c.game(game).wins.Add(1)
	}
}

func (c *Component) AddVaultUnlock() {
	c.vaultsUnlocked.Add(1)
}

func (c *Component) AddBusyReject() {
	c.busyRejected.Add(1)
}

// GameSnapshot 单玩法计数
type GameSnapshot struct {
	Name       string
	Rounds     int64
	Wins       int64
	WinRatePct float64
}

// Snapshot 全量统计快照
type Snapshot struct {
	StartedAt       time.Time
	Uptime          time.Duration
	SessionsCreated int64
	RoundsStarted   int64
	RoundsSettled   int64
	RoundsWon       int64
	WinRatePct      float64
	CreditsWon      int64
	AvgWinAmount    float64
	VaultsUnlocked  int64
	BusyRejected    int64
	PerGame         []GameSnapshot
}

func (c *Component) Snapshot() Snapshot {
	c.mu.Lock()
	games := make([]GameSnapshot, 0, len(c.perGame))
	for name, g := range c.perGame {
		rounds, wins := g.rounds.Load(), g.wins.Load()
		games = append(games, GameSnapshot{
			Name:       name,
			Rounds:     rounds,
			Wins:       wins,
			WinRatePct: xgo.Pct(wins, rounds),
		})
	}
	c.mu.Unlock()
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })

	settled, won, credits := c.roundsSettled.Load(), c.roundsWon.Load(), c.creditsWon.Load()
	avgWin := 0.0
	if won > 0 {
		avgWin = float64(credits) / float64(won)
	}
	return Snapshot{
		StartedAt:       c.startedAt,
		Uptime:          time.Since(c.startedAt),
		SessionsCreated: c.sessionsCreated.Load(),
		RoundsStarted:   c.roundsStarted.Load(),
		RoundsSettled:   settled,
		RoundsWon:       won,
		WinRatePct:      xgo.Pct(won, settled),
		CreditsWon:      credits,
		AvgWinAmount:    avgWin,
		VaultsUnlocked:  c.vaultsUnlocked.Load(),
		BusyRejected:    c.busyRejected.Load(),
		PerGame:         games,
	}
}

// Monitor 周期打点，ctx 取消后打印末次汇总并退出
func (c *Component) Monitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.print("final")
			return
		case <-ticker.C:
			c.print("progress")
		}
	}
}

func (c *Component) print(tag string) {
	s := c.Snapshot()
	log.Infof("[stats:%s] uptime:%s sessions:%d rounds:%d/%d win:%.2f%% credited:%d avg:%.1f vaults:%d rejected:%d",
		tag, xgo.ShortDuration(s.Uptime),
		s.SessionsCreated, s.RoundsSettled, s.RoundsStarted,
		s.WinRatePct, s.CreditsWon, s.AvgWinAmount,
		s.VaultsUnlocked, s.BusyRejected,
	)
}
