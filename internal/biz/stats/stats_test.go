package stats

import (
	"sync"
	"testing"
)

func TestSnapshotCounts(t *testing.T) {
	c := New()
	c.AddSession()
	c.AddSession()

	c.AddRoundStarted("slots")
	c.AddRoundSettled("slots", true, 420)
	c.AddRoundStarted("slots")
	c.AddRoundSettled("slots", false, 0)
	c.AddRoundStarted("dice")
	c.AddRoundSettled("dice", true, 500)
	c.AddVaultUnlock()
	c.AddBusyReject()

	s := c.Snapshot()
	if s.SessionsCreated != 2 {
		t.Fatalf("sessions = %d", s.SessionsCreated)
	}
	if s.RoundsStarted != 3 || s.RoundsSettled != 3 || s.RoundsWon != 2 {
		t.Fatalf("rounds = %d/%d won=%d", s.RoundsStarted, s.RoundsSettled, s.RoundsWon)
	}
	if s.CreditsWon != 920 {
		t.Fatalf("credits = %d", s.CreditsWon)
	}
	if s.AvgWinAmount != 460 {
		t.Fatalf("avg win = %v", s.AvgWinAmount)
	}
	if s.VaultsUnlocked != 1 || s.BusyRejected != 1 {
		t.Fatalf("vaults=%d rejected=%d", s.VaultsUnlocked, s.BusyRejected)
	}

	if len(s.PerGame) != 2 {
		t.Fatalf("per-game entries = %d", len(s.PerGame))
	}
	// 按名稳定排序
	if s.PerGame[0].Name != "dice" || s.PerGame[1].Name != "slots" {
		t.Fatalf("order: %s %s", s.PerGame[0].Name, s.PerGame[1].Name)
	}
	if s.PerGame[1].Rounds != 2 || s.PerGame[1].Wins != 1 || s.PerGame[1].WinRatePct != 50 {
		t.Fatalf("slots counters: %+v", s.PerGame[1])
	}
}

func TestConcurrentCounting(t *testing.T) {
	c := New()
	const workers, each = 16, 500
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				c.AddRoundStarted("coin")
				c.AddRoundSettled("coin", j%2 == 0, 400)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	total := int64(workers * each)
	if s.RoundsStarted != total || s.RoundsSettled != total {
		t.Fatalf("rounds = %d/%d, want %d", s.RoundsStarted, s.RoundsSettled, total)
	}
	if s.RoundsWon != total/2 {
		t.Fatalf("wins = %d, want %d", s.RoundsWon, total/2)
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := New().Snapshot()
	if s.WinRatePct != 0 || s.AvgWinAmount != 0 || len(s.PerGame) != 0 {
		t.Fatalf("empty snapshot: %+v", s)
	}
}
