package game

import (
	"testing"

	"vaultspin/internal/biz/game/coin"
	"vaultspin/internal/biz/game/dice"
	"vaultspin/internal/biz/game/slots"
)

func TestPoolRegistry(t *testing.T) {
	p := NewPool()

	list := p.List()
	want := []string{slots.Name, coin.Name, dice.Name}
	if len(list) != len(want) {
		t.Fatalf("got %d games, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name() != name {
			t.Fatalf("list[%d] = %s, want %s", i, list[i].Name(), name)
		}
	}

	if p.Default().Name() != slots.Name {
		t.Fatalf("default game = %s, want %s", p.Default().Name(), slots.Name)
	}

	for _, name := range want {
		g, ok := p.Get(name)
		if !ok || g.Name() != name {
			t.Fatalf("Get(%q) failed", name)
		}
		if !p.Known(name) {
			t.Fatalf("Known(%q) = false", name)
		}
	}
	if _, ok := p.Get("keno"); ok {
		t.Fatal("Get(keno) should fail")
	}
}

func TestPoolListIsCopy(t *testing.T) {
	p := NewPool()
	list := p.List()
	list[0] = nil
	if p.List()[0] == nil {
		t.Fatal("List must return a copy")
	}
}

// 三个玩法的理论赢率都应在 (0,1) 内且与节奏自洽
func TestGameDescriptors(t *testing.T) {
	for _, g := range NewPool().List() {
		if g.WinRate() <= 0 || g.WinRate() >= 1 {
			t.Fatalf("%s: win rate %v out of range", g.Name(), g.WinRate())
		}
		c := g.Cadence()
		if c.Ticks < 1 || c.Interval <= 0 {
			t.Fatalf("%s: bad cadence %+v", g.Name(), c)
		}
		if g.RequiresCall() && len(g.Calls()) == 0 {
			t.Fatalf("%s: requires call but lists none", g.Name())
		}
	}
}
