package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"vaultspin/internal/biz/chart"
	"vaultspin/internal/biz/game"
	gamebase "vaultspin/internal/biz/game/base"
	"vaultspin/internal/biz/session"
	"vaultspin/pkg/xgo"

	"golang.org/x/sync/errgroup"
)

// 离线验证工具：跳过开奖动画直接跑 Resolve，
// 对照各玩法的经验胜率与理论值，再走一遍完整的会话记账剧本。
type options struct {
	game        string
	rounds      int
	concurrency int
	seed        uint64
	chart       bool
}

func main() {
	gameName := flag.String("game", "all", "slots|coin|dice|all")
	rounds := flag.Int("rounds", 200000, "rounds per game")
	concurrency := flag.Int("concurrency", 8, "worker count")
	seed := flag.Int64("seed", 0, "rng seed, 0 = time based")
	chartOut := flag.Bool("chart", false, "write convergence charts to "+chart.OutputDir)
	flag.Parse()

	opts := options{
		game:        *gameName,
		rounds:      *rounds,
		concurrency: *concurrency,
		seed:        uint64(*seed),
		chart:       *chartOut,
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}
	if opts.rounds < 1 {
		opts.rounds = 1
	}
	if opts.seed == 0 {
		opts.seed = uint64(time.Now().UnixNano())
	}

	pool := game.NewPool()
	targets := make([]gamebase.IGame, 0, 3)
	if opts.game == "all" {
		targets = pool.List()
	} else {
		g, ok := pool.Get(opts.game)
		if !ok {
			fmt.Printf("unknown game %q\n", opts.game)
			os.Exit(1)
		}
		targets = append(targets, g)
	}

	fmt.Printf("seed=%d rounds=%d concurrency=%d\n\n", opts.seed, opts.rounds, opts.concurrency)
	fmt.Printf("%-8s %10s %10s %12s %12s %9s\n", "game", "rounds", "wins", "empirical", "theoretical", "delta")
	for _, g := range targets {
		runConvergence(g, opts)
	}

	if opts.chart {
		writeCharts(targets, opts)
	}

	scenario := targets[0].Name()
	runScenario(pool, scenario, opts.seed)
}

// writeCharts 单协程重放一遍，记录累计胜率曲线并出图
func writeCharts(targets []gamebase.IGame, opts options) {
	gen := chart.NewGenerator("")
	fmt.Println()
	for _, g := range targets {
		rng := rand.New(rand.NewPCG(opts.seed, 1))
		pts := make([]chart.Point, 0, opts.rounds)
		wins := 0
		for i := 1; i <= opts.rounds; i++ {
			if g.Resolve(rng, pickCall(rng, g)).Win {
				wins++
			}
			pts = append(pts, chart.Point{X: float64(i), Y: float64(wins) / float64(i)})
		}
		res, err := gen.Generate(pts, g.Name(), g.WinRate(), true)
		if err != nil {
			fmt.Printf("chart %s failed: %v\n", g.Name(), err)
			continue
		}
		fmt.Printf("chart %s -> %s\n", g.Name(), res.FilePath)
	}
}

// runConvergence 多协程压一个玩法，比较经验胜率与理论胜率
func runConvergence(g gamebase.IGame, opts options) {
	started := time.Now()
	var wins atomic.Int64

	per := opts.rounds / opts.concurrency
	extra := opts.rounds % opts.concurrency

	var eg errgroup.Group
	for w := 0; w < opts.concurrency; w++ {
		n := per
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		worker := uint64(w)
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(opts.seed, worker+1))
			local := int64(0)
			for i := 0; i < n; i++ {
				if g.Resolve(rng, pickCall(rng, g)).Win {
					local++
				}
			}
			wins.Add(local)
			return nil
		})
	}
	_ = eg.Wait()

	won := wins.Load()
	empirical := xgo.Ratio(won, int64(opts.rounds))
	theoretical := g.WinRate()
	fmt.Printf("%-8s %10d %10d %11.2f%% %11.2f%% %+8.2fpp  (%s)\n",
		g.Name(), opts.rounds, won,
		empirical*100, theoretical*100, (empirical-theoretical)*100,
		xgo.ShortDuration(time.Since(started)),
	)
}

// runScenario 单会话完整剧本：连开到宝库解锁，核对记账不变量
func runScenario(pool *game.Pool, gameName string, seed uint64) {
	g, _ := pool.Get(gameName)
	rng := rand.New(rand.NewPCG(seed, 97))
	s := session.New("bench", gameName, session.Config{}, session.WithRand(rng))

	played := 0
	var last session.Result
	for {
		played++
		if !s.BeginRound() {
			fmt.Println("scenario: lease refused on idle session")
			os.Exit(1)
		}
		res, ok := s.ResolveRound(g.Resolve(rng, pickCall(rng, g)))
		if !ok {
			fmt.Println("scenario: settle refused while busy")
			os.Exit(1)
		}
		last = res
		if res.VaultUnlocked {
			break
		}
		if played > 1000 {
			fmt.Println("scenario: vault never unlocked in 1000 rounds")
			os.Exit(1)
		}
	}

	snap := s.Snapshot()
	fmt.Printf("\nscenario on %s: vault unlocked after %d rounds\n", gameName, played)
	fmt.Printf("  wins=%d balance=%d last=%q history=%d show_vault=%v\n",
		snap.Wins, snap.Balance, snap.LastResult, len(snap.History), snap.ShowVault)
	if snap.Wins != 3 || !snap.ShowVault {
		fmt.Println("scenario: accounting mismatch")
		os.Exit(1)
	}
	if snap.Balance < snap.Wins*400 || snap.Balance > snap.Wins*500 {
		fmt.Printf("scenario: balance %d outside [%d,%d]\n", snap.Balance, snap.Wins*400, snap.Wins*500)
		os.Exit(1)
	}
	fmt.Printf("  payout=%+v\n", last.LastResult)
}

func pickCall(rng *rand.Rand, g gamebase.IGame) string {
	if !g.RequiresCall() {
		return ""
	}
	calls := g.Calls()
	return calls[rng.IntN(len(calls))]
}
