package biz

import (
	"context"
	"strings"
	"time"

	"vaultspin/internal/biz/game"
	"vaultspin/internal/biz/game/base"
	"vaultspin/internal/biz/round"
	"vaultspin/internal/biz/session"
	"vaultspin/internal/biz/stats"
	"vaultspin/internal/conf"
	"vaultspin/internal/notify"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewUseCase)

// 业务常量
const (
	defaultSessionTTL     = 30 * time.Minute
	defaultCleanupEvery   = time.Minute
	settledRoundRetention = 10 * time.Minute
	statsReportInterval   = 30 * time.Second
	defaultCollectURL     = "https://play.example.com/vault/collect"
)

// DataRepo 数据层接口：ID 签发
type DataRepo interface {
	NewSessionID(ctx context.Context) (string, error)
	NextRoundID(ctx context.Context, game string) (string, error)
}

// UseCase 编排层：通过 DataRepo + 领域池（Game/Session/Round）编排业务
type UseCase struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo DataRepo
	log  *log.Helper
	c    *conf.Game

	gamePool *game.Pool
	sessions *session.Pool
	rounds   *round.Registry
	engine   *round.Engine

	notify notify.Notifier
	stats  *stats.Component
}

// NewUseCase 创建 UseCase
func NewUseCase(repo DataRepo, logger log.Logger, c *conf.Game, n notify.Notifier, hub *notify.Hub) (*UseCase, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	engine, engineCleanup, err := round.NewEngine(workerPoolSize(c), logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	uc := &UseCase{
		ctx:      ctx,
		cancel:   cancel,
		repo:     repo,
		log:      log.NewHelper(logger),
		c:        c,
		gamePool: game.NewPool(),
		sessions: session.NewPool(),
		rounds:   round.NewRegistry(),
		engine:   engine,
		notify:   n,
		stats:    stats.New(),
	}

	ttl, every := cleanupCadence(c)
	go uc.sessions.StartAutoCleanup(ctx, logger, ttl, every)
	go uc.rounds.StartAutoCleanup(ctx, logger, settledRoundRetention, every)
	go uc.stats.Monitor(ctx, statsReportInterval)
	go ReportMetrics(ctx, uc.stats, uc.sessions, engine, hub)

	cleanup := func() {
		uc.cancel()
		engineCleanup()
	}
	return uc, cleanup, nil
}

// CreateSession 开新会话，落座即默认玩法
func (uc *UseCase) CreateSession(ctx context.Context) (session.Snapshot, error) {
	id, err := uc.repo.NewSessionID(ctx)
	if err != nil {
		return session.Snapshot{}, err
	}
	s := session.New(id, uc.gamePool.Default().Name(), uc.sessionConfig())
	uc.sessions.Add(s)
	uc.stats.AddSession()
	uc.log.Infof("[%s] session created", id)
	return s.Snapshot(), nil
}

// GetSession 查询会话快照，读到即续活
func (uc *UseCase) GetSession(sessionID string) (session.Snapshot, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// ListGames 返回游戏列表副本（按注册顺序）
func (uc *UseCase) ListGames() []base.IGame {
	return uc.gamePool.List()
}

// SelectGame 切换玩法；动画中静默忽略，返回当前快照
func (uc *UseCase) SelectGame(sessionID, gameName string) (session.Snapshot, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if !uc.gamePool.Known(gameName) {
		return session.Snapshot{}, errors.Newf(400, "GAME_NOT_FOUND", "unknown game: %s", gameName)
	}
	if s.SelectGame(gameName) {
		uc.emit(&notify.Event{
			Type:      notify.EventGameSelected,
			SessionID: s.ID(),
			Game:      gameName,
		})
	} else {
		uc.stats.AddBusyReject()
	}
	return s.Snapshot(), nil
}

// StartRound 开一局。动画中返回 accepted=false 静默拒绝；
// 开奖全程异步跑在引擎上，定局经由 OnSettle 回写会话。
func (uc *UseCase) StartRound(ctx context.Context, sessionID, gameName, call string) (round.Snapshot, bool, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return round.Snapshot{}, false, err
	}
	if gameName == "" {
		gameName = s.CurrentGame()
	}
	g, ok := uc.gamePool.Get(gameName)
	if !ok {
		return round.Snapshot{}, false, errors.Newf(400, "GAME_NOT_FOUND", "unknown game: %s", gameName)
	}
	call = strings.ToLower(strings.TrimSpace(call))
	if g.RequiresCall() && !g.ValidCall(call) {
		return round.Snapshot{}, false, errors.Newf(400, "CALL_INVALID", "game %s requires call in %v", gameName, g.Calls())
	}
	if !g.RequiresCall() {
		call = ""
	}

	// 带玩法开局等价于先换桌再开局
	if s.CurrentGame() != gameName {
		if !s.SelectGame(gameName) {
			uc.stats.AddBusyReject()
			return round.Snapshot{}, false, nil
		}
	}
	if !s.BeginRound() {
		uc.stats.AddBusyReject()
		return round.Snapshot{}, false, nil
	}

	id, err := uc.repo.NextRoundID(ctx, gameName)
	if err != nil {
		// 开不出ID就归还租约，这局不算开过
		_, _ = s.ResolveRound(base.Outcome{})
		return round.Snapshot{}, false, err
	}

	rd := round.New(id, s.ID(), gameName, call)
	uc.rounds.Add(rd)
	uc.stats.AddRoundStarted(gameName)
	uc.emit(&notify.Event{
		Type:      notify.EventRoundStarted,
		SessionID: s.ID(),
		Game:      gameName,
		RoundID:   id,
		Payload:   map[string]any{"call": call, "ticks": g.Cadence().Ticks},
	})
	uc.engine.Run(rd, g, uc)
	return rd.Snapshot(), true, nil
}

// GetRound 查询对局
func (uc *UseCase) GetRound(roundID string) (round.Snapshot, error) {
	rd, ok := uc.rounds.Get(strings.TrimSpace(roundID))
	if !ok {
		return round.Snapshot{}, errors.Newf(404, "ROUND_NOT_FOUND", "round not found: %s", roundID)
	}
	return rd.Snapshot(), nil
}

// GetHistory 最近胜局，新局在前
func (uc *UseCase) GetHistory(sessionID string) ([]session.HistoryEntry, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.History(), nil
}

// CollectVault 宝库跳转地址；未解锁时拒绝
func (uc *UseCase) CollectVault(sessionID string) (string, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return "", err
	}
	if !s.ShowVault() {
		return "", errors.Newf(400, "VAULT_LOCKED", "vault not unlocked: %s", sessionID)
	}
	url := strings.TrimSpace(uc.c.CollectUrl)
	if url == "" {
		url = defaultCollectURL
	}
	return url, nil
}

// Stats 全局统计快照
func (uc *UseCase) Stats() stats.Snapshot {
	return uc.stats.Snapshot()
}

// SessionCounts 在线/动画中会话数
func (uc *UseCase) SessionCounts() (total, busy int) {
	return uc.sessions.Counts()
}

// OnFrame 实现 round.Sink：过场帧逐帧透传给展示层
func (uc *UseCase) OnFrame(rd *round.Round, tick int, frame base.Frame) {
	uc.emit(&notify.Event{
		Type:      notify.EventRevealFrame,
		SessionID: rd.SessionID(),
		Game:      rd.Game(),
		RoundID:   rd.ID(),
		Payload:   map[string]any{"tick": tick, "frame": frame},
	})
}

// OnSettle 实现 round.Sink：先归还会话租约并结算，再定格对局
func (uc *UseCase) OnSettle(rd *round.Round, out base.Outcome) {
	s, ok := uc.sessions.Get(rd.SessionID())
	if !ok {
		// 会话已被回收，定格对局但无处入账
		rd.Settle(out, 0)
		uc.stats.AddRoundSettled(rd.Game(), false, 0)
		uc.log.Warnf("[%s] session %s gone before settle", rd.ID(), rd.SessionID())
		return
	}

	res, ok := s.ResolveRound(out)
	if !ok {
		rd.Settle(out, 0)
		uc.stats.AddRoundSettled(rd.Game(), false, 0)
		uc.log.Warnf("[%s] settle without busy lease", rd.ID())
		return
	}
	rd.Settle(out, res.Amount)
	uc.stats.AddRoundSettled(rd.Game(), res.Win, res.Amount)

	uc.emit(&notify.Event{
		Type:      notify.EventRoundResolved,
		SessionID: s.ID(),
		Game:      rd.Game(),
		RoundID:   rd.ID(),
		Payload: map[string]any{
			"win":         res.Win,
			"label":       out.Label,
			"amount":      res.Amount,
			"wins":        res.Wins,
			"balance":     res.Balance,
			"show_vault":  res.ShowVault,
			"last_result": res.LastResult,
		},
	})
	if res.VaultUnlocked {
		uc.stats.AddVaultUnlock()
		uc.emit(&notify.Event{
			Type:      notify.EventVaultUnlocked,
			SessionID: s.ID(),
			Game:      rd.Game(),
			RoundID:   rd.ID(),
			Payload:   map[string]any{"wins": res.Wins, "balance": res.Balance},
		})
	}
}

// emit 事件只投不等，失败由通知链自行消化
func (uc *UseCase) emit(ev *notify.Event) {
	ev.At = time.Now()
	_ = uc.notify.Send(uc.ctx, ev)
}

func (uc *UseCase) getSession(sessionID string) (*session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.Newf(400, "SESSION_ID_EMPTY", "session id is empty")
	}
	s, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, errors.Newf(404, "SESSION_NOT_FOUND", "session not found: %s", sessionID)
	}
	s.Touch()
	return s, nil
}

func (uc *UseCase) sessionConfig() session.Config {
	if uc.c == nil {
		return session.Config{}
	}
	return session.Config{
		WinMin:         uc.c.WinMin,
		WinMax:         uc.c.WinMax,
		VaultThreshold: uc.c.VaultThreshold,
		HistoryLimit:   uc.c.HistoryLimit,
	}
}

func workerPoolSize(c *conf.Game) int {
	if c == nil {
		return 0
	}
	return c.WorkerPool
}

func cleanupCadence(c *conf.Game) (ttl, every time.Duration) {
	ttl, every = defaultSessionTTL, defaultCleanupEvery
	if c == nil {
		return ttl, every
	}
	if v := c.SessionTtl.AsDuration(); v > 0 {
		ttl = v
	}
	if v := c.CleanupInterval.AsDuration(); v > 0 {
		every = v
	}
	return ttl, every
}
