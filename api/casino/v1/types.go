package v1

// CreateSessionRequest 开新会话，无参数
type CreateSessionRequest struct{}

type GetSessionRequest struct {
	Id string `json:"id"`
}

// HistoryEntry 一条胜局记录
type HistoryEntry struct {
	Game    string `json:"game"`
	Outcome string `json:"outcome"`
	At      string `json:"at"`
}

// SessionReply 会话完整视图
type SessionReply struct {
	Id          string          `json:"id"`
	Phase       string          `json:"phase"`
	CurrentGame string          `json:"current_game"`
	Wins        int64           `json:"wins"`
	Balance     int64           `json:"balance"`
	ShowVault   bool            `json:"show_vault"`
	LastResult  string          `json:"last_result"`
	History     []*HistoryEntry `json:"history"`
	CreatedAt   string          `json:"created_at"`
}

type ListGamesRequest struct{}

// Game 玩法描述
type Game struct {
	Name               string   `json:"name"`
	Title              string   `json:"title"`
	Ticks              int      `json:"ticks"`
	IntervalMs         int64    `json:"interval_ms"`
	RequiresCall       bool     `json:"requires_call"`
	ValidCalls         []string `json:"valid_calls,omitempty"`
	TheoreticalWinRate float64  `json:"theoretical_win_rate"`
}

type ListGamesReply struct {
	Games []*Game `json:"games"`
	Total int32   `json:"total"`
}

type SelectGameRequest struct {
	Id   string `json:"id"`
	Game string `json:"game"`
}

type StartRoundRequest struct {
	Id   string `json:"id"`
	Game string `json:"game,omitempty"`
	Call string `json:"call,omitempty"`
}

// StartRoundReply 动画中开局时 accepted=false 且 round 为空
type StartRoundReply struct {
	Accepted bool        `json:"accepted"`
	Round    *RoundReply `json:"round,omitempty"`
}

type GetRoundRequest struct {
	Id string `json:"id"`
}

// RoundReply 对局视图；revealing 阶段不暴露结果字段
type RoundReply struct {
	Id        string         `json:"id"`
	SessionId string         `json:"session_id"`
	Game      string         `json:"game"`
	Call      string         `json:"call,omitempty"`
	Phase     string         `json:"phase"`
	Win       bool           `json:"win"`
	Amount    int64          `json:"amount"`
	Label     string         `json:"label,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
	StartedAt string         `json:"started_at"`
	SettledAt string         `json:"settled_at,omitempty"`
}

type GetHistoryRequest struct {
	Id string `json:"id"`
}

type HistoryReply struct {
	Entries []*HistoryEntry `json:"entries"`
	Total   int32           `json:"total"`
}

type CollectVaultRequest struct {
	Id string `json:"id"`
}

// CollectVaultReply 宝库跳转地址
type CollectVaultReply struct {
	Url string `json:"url"`
}

type GetStatsRequest struct{}

// GameStats 单玩法统计
type GameStats struct {
	Name       string  `json:"name"`
	Rounds     int64   `json:"rounds"`
	Wins       int64   `json:"wins"`
	WinRatePct float64 `json:"win_rate_pct"`
}

// StatsReply 全局统计
type StatsReply struct {
	StartedAt       string       `json:"started_at"`
	Uptime          string       `json:"uptime"`
	SessionsCreated int64        `json:"sessions_created"`
	SessionsActive  int64        `json:"sessions_active"`
	SessionsBusy    int64        `json:"sessions_busy"`
	RoundsStarted   int64        `json:"rounds_started"`
	RoundsSettled   int64        `json:"rounds_settled"`
	RoundsWon       int64        `json:"rounds_won"`
	WinRatePct      float64      `json:"win_rate_pct"`
	CreditsWon      int64        `json:"credits_won"`
	AvgWinAmount    float64      `json:"avg_win_amount"`
	VaultsUnlocked  int64        `json:"vaults_unlocked"`
	BusyRejected    int64        `json:"busy_rejected"`
	Games           []*GameStats `json:"games"`
}
