package session

import (
	"testing"
	"time"
)

func TestPoolAddGetRemove(t *testing.T) {
	p := NewPool()
	s := New("s1", "slots", Config{})
	p.Add(s)

	got, ok := p.Get("s1")
	if !ok || got.ID() != "s1" {
		t.Fatal("Get failed")
	}
	if _, ok := p.Get("missing"); ok {
		t.Fatal("Get(missing) should fail")
	}

	if _, ok := p.Remove("s1"); !ok {
		t.Fatal("Remove failed")
	}
	if _, ok := p.Get("s1"); ok {
		t.Fatal("session still present after Remove")
	}
}

func TestPoolListNewestFirst(t *testing.T) {
	p := NewPool()
	for _, id := range []string{"a", "b", "c"} {
		p.Add(New(id, "slots", Config{}))
		time.Sleep(2 * time.Millisecond)
	}
	list := p.List()
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID() != "c" || list[2].ID() != "a" {
		t.Fatalf("order: %s %s %s", list[0].ID(), list[1].ID(), list[2].ID())
	}
}

func TestPoolCounts(t *testing.T) {
	p := NewPool()
	idle := New("idle", "slots", Config{})
	busy := New("busy", "dice", Config{})
	if !busy.BeginRound() {
		t.Fatal("begin round failed")
	}
	p.Add(idle)
	p.Add(busy)

	total, inFlight := p.Counts()
	if total != 2 || inFlight != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", total, inFlight)
	}
}

// 只回收过期的空闲会话；动画中的过期会话必须留下
func TestCleanupIdleKeepsBusy(t *testing.T) {
	p := NewPool()

	old := New("old", "slots", Config{})
	old.mu.Lock()
	old.lastSeen = time.Now().Add(-2 * time.Hour)
	old.mu.Unlock()

	oldBusy := New("old-busy", "coin", Config{})
	if !oldBusy.BeginRound() {
		t.Fatal("begin round failed")
	}
	oldBusy.mu.Lock()
	oldBusy.lastSeen = time.Now().Add(-2 * time.Hour)
	oldBusy.mu.Unlock()

	fresh := New("fresh", "dice", Config{})

	p.Add(old)
	p.Add(oldBusy)
	p.Add(fresh)

	if deleted := p.CleanupIdle(time.Hour); deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	if _, ok := p.Get("old"); ok {
		t.Fatal("expired idle session not reaped")
	}
	if _, ok := p.Get("old-busy"); !ok {
		t.Fatal("busy session must not be reaped")
	}
	if _, ok := p.Get("fresh"); !ok {
		t.Fatal("fresh session must not be reaped")
	}
}
