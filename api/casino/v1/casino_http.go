package v1

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

// 操作名，供 logging/metrics 中间件识别
const (
	OperationCasinoCreateSession = "/casino.v1.Casino/CreateSession"
	OperationCasinoGetSession    = "/casino.v1.Casino/GetSession"
	OperationCasinoListGames     = "/casino.v1.Casino/ListGames"
	OperationCasinoSelectGame    = "/casino.v1.Casino/SelectGame"
	OperationCasinoStartRound    = "/casino.v1.Casino/StartRound"
	OperationCasinoGetRound      = "/casino.v1.Casino/GetRound"
	OperationCasinoGetHistory    = "/casino.v1.Casino/GetHistory"
	OperationCasinoCollectVault  = "/casino.v1.Casino/CollectVault"
	OperationCasinoGetStats      = "/casino.v1.Casino/GetStats"
)

// CasinoHTTPServer 赌场会话服务 HTTP 接口
type CasinoHTTPServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*SessionReply, error)
	GetSession(context.Context, *GetSessionRequest) (*SessionReply, error)
	ListGames(context.Context, *ListGamesRequest) (*ListGamesReply, error)
	SelectGame(context.Context, *SelectGameRequest) (*SessionReply, error)
	StartRound(context.Context, *StartRoundRequest) (*StartRoundReply, error)
	GetRound(context.Context, *GetRoundRequest) (*RoundReply, error)
	GetHistory(context.Context, *GetHistoryRequest) (*HistoryReply, error)
	CollectVault(context.Context, *CollectVaultRequest) (*CollectVaultReply, error)
	GetStats(context.Context, *GetStatsRequest) (*StatsReply, error)
}

func RegisterCasinoHTTPServer(s *http.Server, srv CasinoHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/session", createSessionHandler(srv))
	r.GET("/v1/session/{id}", getSessionHandler(srv))
	r.GET("/v1/games", listGamesHandler(srv))
	r.POST("/v1/session/{id}/game", selectGameHandler(srv))
	r.POST("/v1/session/{id}/round", startRoundHandler(srv))
	r.GET("/v1/round/{id}", getRoundHandler(srv))
	r.GET("/v1/session/{id}/history", getHistoryHandler(srv))
	r.POST("/v1/session/{id}/vault/collect", collectVaultHandler(srv))
	r.GET("/v1/stats", getStatsHandler(srv))
}

func createSessionHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in CreateSessionRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoCreateSession)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.CreateSession(c, req.(*CreateSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*SessionReply))
	}
}

func getSessionHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in GetSessionRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoGetSession)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.GetSession(c, req.(*GetSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*SessionReply))
	}
}

func listGamesHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in ListGamesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoListGames)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.ListGames(c, req.(*ListGamesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*ListGamesReply))
	}
}

func selectGameHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in SelectGameRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoSelectGame)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.SelectGame(c, req.(*SelectGameRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*SessionReply))
	}
}

func startRoundHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in StartRoundRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoStartRound)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.StartRound(c, req.(*StartRoundRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*StartRoundReply))
	}
}

func getRoundHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in GetRoundRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoGetRound)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.GetRound(c, req.(*GetRoundRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*RoundReply))
	}
}

func getHistoryHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in GetHistoryRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoGetHistory)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.GetHistory(c, req.(*GetHistoryRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*HistoryReply))
	}
}

func collectVaultHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in CollectVaultRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoCollectVault)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.CollectVault(c, req.(*CollectVaultRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*CollectVaultReply))
	}
}

func getStatsHandler(srv CasinoHTTPServer) func(http.Context) error {
	return func(ctx http.Context) error {
		var in GetStatsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCasinoGetStats)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return srv.GetStats(c, req.(*GetStatsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*StatsReply))
	}
}
