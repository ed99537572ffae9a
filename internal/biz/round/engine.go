package round

import (
	"time"

	"vaultspin/internal/biz/game/base"
	"vaultspin/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 256

// Sink 接收一局执行过程中的回调。OnFrame 每帧一次，OnSettle 定局一次；
// 两者都在开奖协程上调用，不得阻塞。
type Sink interface {
	OnFrame(r *Round, tick int, frame base.Frame)
	OnSettle(r *Round, out base.Outcome)
}

// Engine 开奖引擎：把每局的过场节奏放到协程池执行。
// 一局开场后不可取消，必须跑到定局，停机也只是等待在途局结束。
type Engine struct {
	pool *ants.Pool
	log  *log.Helper
}

// NewEngine 创建引擎，size<=0 用默认容量
func NewEngine(size int, logger log.Logger) (*Engine, func(), error) {
	if size <= 0 {
		size = defaultWorkers
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, nil, err
	}
	e := &Engine{
		pool: pool,
		log:  log.NewHelper(logger),
	}
	cleanup := func() {
		// 给在途局留出定局时间
		if err := pool.ReleaseTimeout(3 * time.Second); err != nil {
			e.log.Warnf("engine release: %v", err)
		}
	}
	return e, cleanup, nil
}

// Running 在池中执行的局数
func (e *Engine) Running() int {
	return e.pool.Running()
}

// Run 异步执行一局：Ticks-1 帧过场，最后一拍定局。
// 池满时降级为裸协程，开局租约已经发出，这一局不能丢。
func (e *Engine) Run(rd *Round, g base.IGame, sink Sink) {
	task := func() {
		defer xgo.RecoverFromError(func(any) {
			// 协程崩溃也要定局，否则会话租约永远收不回
			sink.OnSettle(rd, base.Outcome{Win: false, Label: "void"})
		})

		rng := base.NewRand()
		cad := g.Cadence()
		for tick := 1; tick < cad.Ticks; tick++ {
			time.Sleep(cad.Interval)
			sink.OnFrame(rd, tick, g.Frame(rng, tick))
		}
		time.Sleep(cad.Interval)
		sink.OnSettle(rd, g.Resolve(rng, rd.Call()))
	}

	if err := e.pool.Submit(task); err != nil {
		e.log.Warnf("[%s] engine pool overloaded, running inline goroutine: %v", rd.ID(), err)
		go task()
	}
}
