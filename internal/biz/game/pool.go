package game

import (
	"sync"

	"vaultspin/internal/biz/game/base"
)

type Pool struct {
	mu     sync.RWMutex
	byName map[string]base.IGame
	list   []base.IGame
}

func NewPool() *Pool {
	p := &Pool{
		byName: make(map[string]base.IGame, len(gameInstances)),
		list:   make([]base.IGame, 0, len(gameInstances)),
	}
	for _, g := range gameInstances {
		p.byName[g.Name()] = g
		p.list = append(p.list, g)
	}
	return p
}

func (p *Pool) Get(name string) (base.IGame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.byName[name]
	return g, ok
}

func (p *Pool) List() []base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cpy := append([]base.IGame{}, p.list...)
	return cpy
}

// Default 会话初始玩法
func (p *Pool) Default() base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.list[0]
}

// Known 玩法名是否已注册
func (p *Pool) Known(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.byName[name]
	return ok
}
