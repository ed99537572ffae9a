package biz

import (
	"context"
	"time"

	"vaultspin/internal/biz/round"
	"vaultspin/internal/biz/session"
	"vaultspin/internal/biz/stats"
	"vaultspin/internal/notify"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 通用标签
const labelGame = "game"

// 上报间隔（可通过常量调整，后续可接入 conf）
const metricsReportInterval = 10 * time.Second

// 会话与连接
var (
	gSessionsCreated = newGauge("casino_sessions_created", "累计创建会话数")
	gSessionsActive  = newGauge("casino_sessions_active", "在线会话数")
	gSessionsBusy    = newGauge("casino_sessions_busy", "动画中的会话数")
	gWsClients       = newGauge("casino_ws_clients", "ws 观战连接数")
	gUptimeSec       = newGauge("casino_uptime_seconds", "运行时长(秒)")
)

// 对局与派彩
var (
	gRoundsStarted  = newGauge("casino_rounds_started", "累计开局数")
	gRoundsSettled  = newGauge("casino_rounds_settled", "累计定局数")
	gRoundsRunning  = newGauge("casino_rounds_running", "正在播放动画的对局数")
	gWinRatePct     = newGauge("casino_win_rate_pct", "总胜率 %")
	gCreditsWon     = newGauge("casino_credits_won", "累计派彩")
	gAvgWinAmount   = newGauge("casino_avg_win_amount", "平均单次派彩")
	gVaultsUnlocked = newGauge("casino_vaults_unlocked", "宝库解锁次数")
	gBusyRejected   = newGauge("casino_busy_rejected", "动画中被忽略的请求数")
)

// 分玩法（仅 game 标签）
var (
	gGameRounds  = newGameGauge("casino_game_rounds", "玩法累计局数")
	gGameWins    = newGameGauge("casino_game_wins", "玩法累计胜局")
	gGameWinRate = newGameGauge("casino_game_win_rate_pct", "玩法胜率 %")
)

func newGauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
}

func newGameGauge(name, help string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, []string{labelGame})
}

func set(g *prometheus.GaugeVec, labels prometheus.Labels, v float64) { g.With(labels).Set(v) }

// ReportMetrics 启动指标上报，ctx 取消后退出
func ReportMetrics(ctx context.Context, st *stats.Component, sessions *session.Pool, engine *round.Engine, hub *notify.Hub) {
	ticker := time.NewTicker(metricsReportInterval)
	defer ticker.Stop()

	reportRuntime(st, sessions, engine, hub)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reportRuntime(st, sessions, engine, hub)
		}
	}
}

func reportRuntime(st *stats.Component, sessions *session.Pool, engine *round.Engine, hub *notify.Hub) {
	snap := st.Snapshot()
	total, busy := sessions.Counts()

	gSessionsCreated.Set(float64(snap.SessionsCreated))
	gSessionsActive.Set(float64(total))
	gSessionsBusy.Set(float64(busy))
	gWsClients.Set(float64(hub.ClientCount()))
	gUptimeSec.Set(snap.Uptime.Seconds())

	gRoundsStarted.Set(float64(snap.RoundsStarted))
	gRoundsSettled.Set(float64(snap.RoundsSettled))
	gRoundsRunning.Set(float64(engine.Running()))
	gWinRatePct.Set(snap.WinRatePct)
	gCreditsWon.Set(float64(snap.CreditsWon))
	gAvgWinAmount.Set(snap.AvgWinAmount)
	gVaultsUnlocked.Set(float64(snap.VaultsUnlocked))
	gBusyRejected.Set(float64(snap.BusyRejected))

	for _, g := range snap.PerGame {
		lbl := prometheus.Labels{labelGame: g.Name}
		set(gGameRounds, lbl, float64(g.Rounds))
		set(gGameWins, lbl, float64(g.Wins))
		set(gGameWinRate, lbl, g.WinRatePct)
	}
}
