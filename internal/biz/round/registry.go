package round

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Registry 局记录索引，供查询接口按 ID 取局
type Registry struct {
	mu     sync.RWMutex
	rounds map[string]*Round
}

func NewRegistry() *Registry {
	return &Registry{
		rounds: make(map[string]*Round),
	}
}

func (g *Registry) Add(r *Round) {
	g.mu.Lock()
	g.rounds[r.ID()] = r
	g.mu.Unlock()
}

func (g *Registry) Get(id string) (*Round, bool) {
	g.mu.RLock()
	r, ok := g.rounds[id]
	g.mu.RUnlock()
	return r, ok
}

func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rounds)
}

// StartAutoCleanup 周期清理已定局的过期记录，ctx 取消后退出
func (g *Registry) StartAutoCleanup(ctx context.Context, logger log.Logger, retention, interval time.Duration) {
	logHelper := log.NewHelper(logger)
	logHelper.Infof("Round cleaner started, retention=%v, interval=%v", retention, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logHelper.Info("closing round cleaner")
			return
		case <-ticker.C:
			if deleted := g.CleanupSettled(retention); deleted > 0 {
				logHelper.Infof("Round cleanup: deleted %d settled rounds", deleted)
			}
		}
	}
}

// CleanupSettled 清理定局时间早于 retention 的记录；开奖中的局绝不清
func (g *Registry) CleanupSettled(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)

	g.mu.Lock()
	defer g.mu.Unlock()

	var deleted int
	for id, r := range g.rounds {
		if r.Phase() != PhaseSettled {
			continue
		}
		if at := r.SettledAt(); !at.IsZero() && at.Before(cutoff) {
			delete(g.rounds, id)
			deleted++
		}
	}
	return deleted
}
