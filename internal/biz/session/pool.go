package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Pool 会话池
type Pool struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewPool 创建会话池
func NewPool() *Pool {
	return &Pool{
		sessions: make(map[string]*Session),
	}
}

// Add 添加会话
func (p *Pool) Add(s *Session) {
	p.mu.Lock()
	p.sessions[s.ID()] = s
	p.mu.Unlock()
}

// Get 获取会话
func (p *Pool) Get(id string) (*Session, bool) {
	p.mu.RLock()
	s, ok := p.sessions[id]
	p.mu.RUnlock()
	return s, ok
}

// Remove 移除会话
func (p *Pool) Remove(id string) (*Session, bool) {
	p.mu.Lock()
	s, ok := p.sessions[id]
	if ok {
		delete(p.sessions, id)
	}
	p.mu.Unlock()
	return s, ok
}

// List 列出所有会话（按创建时间倒序）
func (p *Pool) List() []*Session {
	p.mu.RLock()
	out := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		out = append(out, s)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// Counts 会话总数与动画中的数量
func (p *Pool) Counts() (total, busy int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total = len(p.sessions)
	for _, s := range p.sessions {
		if s.Phase() == PhaseBusy {
			busy++
		}
	}
	return total, busy
}

// StartAutoCleanup 周期回收空闲会话，ctx 取消后退出
func (p *Pool) StartAutoCleanup(ctx context.Context, logger log.Logger, ttl, interval time.Duration) {
	logHelper := log.NewHelper(logger)
	logHelper.Infof("Session cleaner started, ttl=%v, interval=%v", ttl, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logHelper.Info("closing session cleaner")
			return
		case <-ticker.C:
			if deleted := p.CleanupIdle(ttl); deleted > 0 {
				logHelper.Infof("Session cleanup: deleted %d idle sessions", deleted)
			}
		}
	}
}

// CleanupIdle 清理 lastSeen 早于 ttl 的空闲会话；动画中的会话绝不回收
func (p *Pool) CleanupIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	p.mu.Lock()
	defer p.mu.Unlock()

	var deleted int
	for id, s := range p.sessions {
		if s.Phase() != PhaseIdle {
			continue
		}
		if s.LastSeen().Before(cutoff) {
			delete(p.sessions, id)
			deleted++
		}
	}
	return deleted
}
