package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"vaultspin/internal/biz/game/base"
)

func newTestSession() *Session {
	return New("s-test", "slots", Config{}, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func (s *Session) forceWin(t *testing.T, amount int64) Result {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyWinLocked(amount)
}

// 连赢 420/455/480：3 赢、余额 1355、宝库解锁、历史恰好 3 条且新局在前
func TestThreeWinScenario(t *testing.T) {
	s := newTestSession()

	r1 := s.forceWin(t, 420)
	if r1.Wins != 1 || r1.Balance != 420 || r1.ShowVault || r1.VaultUnlocked {
		t.Fatalf("after 1st win: %+v", r1)
	}
	s.SelectGame("coin")
	r2 := s.forceWin(t, 455)
	if r2.Wins != 2 || r2.Balance != 875 || r2.ShowVault {
		t.Fatalf("after 2nd win: %+v", r2)
	}
	s.SelectGame("dice")
	r3 := s.forceWin(t, 480)
	if r3.Wins != 3 || r3.Balance != 1355 {
		t.Fatalf("after 3rd win: %+v", r3)
	}
	if !r3.ShowVault || !r3.VaultUnlocked {
		t.Fatalf("vault should unlock on 3rd win: %+v", r3)
	}
	if r3.LastResult != "+$480!" {
		t.Fatalf("last result = %q", r3.LastResult)
	}

	snap := s.Snapshot()
	if len(snap.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(snap.History))
	}
	wantGames := []string{"dice", "coin", "slots"} // 新局在前
	for i, e := range snap.History {
		if e.Game != wantGames[i] || e.Outcome != OutcomeWin {
			t.Fatalf("history[%d] = %+v", i, e)
		}
	}

	// 第 4 赢：宝库保持解锁，但不再报告首次解锁
	r4 := s.forceWin(t, 400)
	if !r4.ShowVault || r4.VaultUnlocked {
		t.Fatalf("vault flag after 4th win: %+v", r4)
	}
}

func TestHistoryCapped(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 8; i++ {
		s.SelectGame(fmt.Sprintf("g%d", i))
		s.forceWin(t, 400)
	}
	hist := s.History()
	if len(hist) != 5 {
		t.Fatalf("history length = %d, want 5", len(hist))
	}
	// 只留最近 5 局，g7 最新
	for i, e := range hist {
		want := fmt.Sprintf("g%d", 7-i)
		if e.Game != want {
			t.Fatalf("history[%d].Game = %s, want %s", i, e.Game, want)
		}
	}
}

// 输局只归还租约：计数、余额、宝库、历史、面板全部原样
func TestLossChangesNothing(t *testing.T) {
	s := newTestSession()
	s.forceWin(t, 450)
	before := s.Snapshot()

	if !s.BeginRound() {
		t.Fatal("begin round failed")
	}
	res, ok := s.ResolveRound(base.Outcome{Win: false})
	if !ok {
		t.Fatal("resolve rejected")
	}
	if res.Win || res.Amount != 0 {
		t.Fatalf("loss result: %+v", res)
	}

	after := s.Snapshot()
	if after.Wins != before.Wins || after.Balance != before.Balance ||
		after.ShowVault != before.ShowVault || len(after.History) != len(before.History) {
		t.Fatalf("loss mutated state: before=%+v after=%+v", before, after)
	}
	if after.LastResult != before.LastResult {
		t.Fatalf("loss touched last result: %q -> %q", before.LastResult, after.LastResult)
	}
	if after.Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", after.Phase)
	}
}

func TestSelectGameWhileBusy(t *testing.T) {
	s := newTestSession()
	s.forceWin(t, 444)

	if !s.BeginRound() {
		t.Fatal("begin round failed")
	}
	if s.SelectGame("dice") {
		t.Fatal("select during reveal must be a no-op")
	}
	snap := s.Snapshot()
	if snap.CurrentGame != "slots" {
		t.Fatalf("current game = %s, want slots", snap.CurrentGame)
	}
	if snap.LastResult != "+$444!" {
		t.Fatalf("last result = %q", snap.LastResult)
	}

	if _, ok := s.ResolveRound(base.Outcome{Win: false}); !ok {
		t.Fatal("resolve rejected")
	}
	if !s.SelectGame("dice") {
		t.Fatal("select after reveal should succeed")
	}
	snap = s.Snapshot()
	if snap.CurrentGame != "dice" || snap.LastResult != "" {
		t.Fatalf("after select: game=%s lastResult=%q", snap.CurrentGame, snap.LastResult)
	}
}

func TestRoundLease(t *testing.T) {
	s := newTestSession()
	if !s.BeginRound() {
		t.Fatal("first begin should succeed")
	}
	if s.BeginRound() {
		t.Fatal("second begin while busy should fail")
	}
	if s.Phase() != PhaseBusy {
		t.Fatalf("phase = %v", s.Phase())
	}
	if _, ok := s.ResolveRound(base.Outcome{Win: true}); !ok {
		t.Fatal("resolve rejected")
	}
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v", s.Phase())
	}
	// 没有租约时结算被拒绝
	if _, ok := s.ResolveRound(base.Outcome{Win: true}); ok {
		t.Fatal("resolve without lease must be rejected")
	}
}

// 并发抢租约只许一个赢家
func TestBeginRoundRace(t *testing.T) {
	s := newTestSession()
	const n = 64
	var wg sync.WaitGroup
	granted := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted <- s.BeginRound()
		}()
	}
	wg.Wait()
	close(granted)
	count := 0
	for ok := range granted {
		if ok {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("%d leases granted, want 1", count)
	}
}

// 派彩永远落在 [400,500]，余额单调不减
func TestWinAmountRange(t *testing.T) {
	s := newTestSession()
	var sum int64
	for i := 0; i < 200; i++ {
		if !s.BeginRound() {
			t.Fatal("begin round failed")
		}
		res, ok := s.ResolveRound(base.Outcome{Win: i%3 != 0})
		if !ok {
			t.Fatal("resolve rejected")
		}
		if res.Win {
			if res.Amount < 400 || res.Amount > 500 {
				t.Fatalf("amount %d out of [400,500]", res.Amount)
			}
			sum += res.Amount
		}
		if res.Balance != sum {
			t.Fatalf("balance %d, want %d", res.Balance, sum)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	got := Config{}.withDefaults()
	want := Config{WinMin: 400, WinMax: 500, VaultThreshold: 3, HistoryLimit: 5}
	if got != want {
		t.Fatalf("defaults = %+v", got)
	}

	fixed := Config{WinMin: 600, WinMax: 100, HistoryLimit: 9999}.withDefaults()
	if fixed.WinMax != 600 {
		t.Fatalf("WinMax not raised to WinMin: %+v", fixed)
	}
	if fixed.HistoryLimit != 100 {
		t.Fatalf("HistoryLimit not clamped: %+v", fixed)
	}
}

func TestTouchUpdatesLastSeen(t *testing.T) {
	s := newTestSession()
	before := s.LastSeen()
	time.Sleep(5 * time.Millisecond)
	s.Touch()
	if !s.LastSeen().After(before) {
		t.Fatal("touch did not advance lastSeen")
	}
}
