package service

import (
	"context"
	"time"

	v1 "vaultspin/api/casino/v1"
	"vaultspin/internal/biz"
	"vaultspin/internal/biz/round"
	"vaultspin/internal/biz/session"
	"vaultspin/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewCasinoService)

// CasinoService is a casino widget service.
type CasinoService struct {
	uc  *biz.UseCase
	log *log.Helper
}

var _ v1.CasinoHTTPServer = (*CasinoService)(nil)

// NewCasinoService new a casino service.
func NewCasinoService(uc *biz.UseCase, logger log.Logger) *CasinoService {
	return &CasinoService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// CreateSession 开新会话
func (s *CasinoService) CreateSession(ctx context.Context, in *v1.CreateSessionRequest) (*v1.SessionReply, error) {
	snap, err := s.uc.CreateSession(ctx)
	if err != nil {
		s.log.Errorf("CreateSession failed: %v", err)
		return nil, err
	}
	return buildSession(snap), nil
}

// GetSession 查询会话
func (s *CasinoService) GetSession(ctx context.Context, in *v1.GetSessionRequest) (*v1.SessionReply, error) {
	snap, err := s.uc.GetSession(in.Id)
	if err != nil {
		return nil, err
	}
	return buildSession(snap), nil
}

// ListGames 玩法列表
func (s *CasinoService) ListGames(ctx context.Context, in *v1.ListGamesRequest) (*v1.ListGamesReply, error) {
	all := s.uc.ListGames()
	games := make([]*v1.Game, len(all))
	for i, g := range all {
		cad := g.Cadence()
		games[i] = &v1.Game{
			Name:               g.Name(),
			Title:              g.Title(),
			Ticks:              cad.Ticks,
			IntervalMs:         cad.Interval.Milliseconds(),
			RequiresCall:       g.RequiresCall(),
			ValidCalls:         g.Calls(),
			TheoreticalWinRate: g.WinRate(),
		}
	}
	return &v1.ListGamesReply{Games: games, Total: int32(len(games))}, nil
}

// SelectGame 切换玩法；动画中静默忽略，返回当前快照
func (s *CasinoService) SelectGame(ctx context.Context, in *v1.SelectGameRequest) (*v1.SessionReply, error) {
	snap, err := s.uc.SelectGame(in.Id, in.Game)
	if err != nil {
		return nil, err
	}
	return buildSession(snap), nil
}

// StartRound 开一局；动画中返回 accepted=false
func (s *CasinoService) StartRound(ctx context.Context, in *v1.StartRoundRequest) (*v1.StartRoundReply, error) {
	snap, accepted, err := s.uc.StartRound(ctx, in.Id, in.Game, in.Call)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return &v1.StartRoundReply{Accepted: false}, nil
	}
	return &v1.StartRoundReply{Accepted: true, Round: buildRound(snap)}, nil
}

// GetRound 查询对局
func (s *CasinoService) GetRound(ctx context.Context, in *v1.GetRoundRequest) (*v1.RoundReply, error) {
	snap, err := s.uc.GetRound(in.Id)
	if err != nil {
		return nil, err
	}
	return buildRound(snap), nil
}

// GetHistory 最近胜局
func (s *CasinoService) GetHistory(ctx context.Context, in *v1.GetHistoryRequest) (*v1.HistoryReply, error) {
	hist, err := s.uc.GetHistory(in.Id)
	if err != nil {
		return nil, err
	}
	entries := make([]*v1.HistoryEntry, len(hist))
	for i, h := range hist {
		entries[i] = buildHistoryEntry(h)
	}
	return &v1.HistoryReply{Entries: entries, Total: int32(len(entries))}, nil
}

// CollectVault 宝库跳转
func (s *CasinoService) CollectVault(ctx context.Context, in *v1.CollectVaultRequest) (*v1.CollectVaultReply, error) {
	url, err := s.uc.CollectVault(in.Id)
	if err != nil {
		return nil, err
	}
	s.log.Infof("[%s] vault collect -> %s", in.Id, url)
	return &v1.CollectVaultReply{Url: url}, nil
}

// GetStats 全局统计
func (s *CasinoService) GetStats(ctx context.Context, in *v1.GetStatsRequest) (*v1.StatsReply, error) {
	snap := s.uc.Stats()
	total, busy := s.uc.SessionCounts()

	games := make([]*v1.GameStats, len(snap.PerGame))
	for i, g := range snap.PerGame {
		games[i] = &v1.GameStats{
			Name:       g.Name,
			Rounds:     g.Rounds,
			Wins:       g.Wins,
			WinRatePct: g.WinRatePct,
		}
	}
	return &v1.StatsReply{
		StartedAt:       snap.StartedAt.Format(time.RFC3339),
		Uptime:          xgo.ShortDuration(snap.Uptime),
		SessionsCreated: snap.SessionsCreated,
		SessionsActive:  int64(total),
		SessionsBusy:    int64(busy),
		RoundsStarted:   snap.RoundsStarted,
		RoundsSettled:   snap.RoundsSettled,
		RoundsWon:       snap.RoundsWon,
		WinRatePct:      snap.WinRatePct,
		CreditsWon:      snap.CreditsWon,
		AvgWinAmount:    snap.AvgWinAmount,
		VaultsUnlocked:  snap.VaultsUnlocked,
		BusyRejected:    snap.BusyRejected,
		Games:           games,
	}, nil
}

func buildSession(s session.Snapshot) *v1.SessionReply {
	hist := make([]*v1.HistoryEntry, len(s.History))
	for i, h := range s.History {
		hist[i] = buildHistoryEntry(h)
	}
	return &v1.SessionReply{
		Id:          s.ID,
		Phase:       s.Phase.String(),
		CurrentGame: s.CurrentGame,
		Wins:        s.Wins,
		Balance:     s.Balance,
		ShowVault:   s.ShowVault,
		LastResult:  s.LastResult,
		History:     hist,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

func buildHistoryEntry(h session.HistoryEntry) *v1.HistoryEntry {
	return &v1.HistoryEntry{
		Game:    h.Game,
		Outcome: h.Outcome,
		At:      h.At.Format(time.RFC3339),
	}
}

// buildRound 开奖中不暴露结果字段，定局后才完整返回
func buildRound(r round.Snapshot) *v1.RoundReply {
	out := &v1.RoundReply{
		Id:        r.ID,
		SessionId: r.SessionID,
		Game:      r.Game,
		Call:      r.Call,
		Phase:     r.Phase.String(),
		StartedAt: r.StartedAt.Format(time.RFC3339),
	}
	if r.Phase == round.PhaseSettled {
		out.Win = r.Win
		out.Amount = r.Amount
		out.Label = r.Label
		out.Detail = r.Detail
		out.SettledAt = r.SettledAt.Format(time.RFC3339)
	}
	return out
}
