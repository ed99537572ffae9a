package round

import (
	"testing"
	"time"

	"vaultspin/internal/biz/game/base"
)

func TestSettleOnce(t *testing.T) {
	r := New("r1", "s1", "slots", "")
	if r.Phase() != PhaseRevealing {
		t.Fatalf("phase = %v", r.Phase())
	}

	out := base.Outcome{Win: true, Label: "7 7 7", Detail: map[string]any{"symbols": []string{"7", "7", "7"}}}
	if !r.Settle(out, 480) {
		t.Fatal("first settle rejected")
	}
	if r.Settle(base.Outcome{}, 0) {
		t.Fatal("second settle must be a no-op")
	}

	snap := r.Snapshot()
	if snap.Phase != PhaseSettled || !snap.Win || snap.Amount != 480 || snap.Label != "7 7 7" {
		t.Fatalf("snapshot: %+v", snap)
	}
	if snap.SettledAt.IsZero() || snap.SettledAt.Before(snap.StartedAt) {
		t.Fatalf("settle time: %+v", snap)
	}
}

func TestRegistryCleanup(t *testing.T) {
	reg := NewRegistry()

	aged := New("aged", "s1", "dice", "")
	aged.Settle(base.Outcome{Win: false, Label: "2"}, 0)
	aged.mu.Lock()
	aged.settledAt = time.Now().Add(-2 * time.Hour)
	aged.mu.Unlock()

	revealing := New("revealing", "s1", "dice", "")

	fresh := New("fresh", "s1", "dice", "")
	fresh.Settle(base.Outcome{Win: true, Label: "6"}, 430)

	reg.Add(aged)
	reg.Add(revealing)
	reg.Add(fresh)

	if deleted := reg.CleanupSettled(time.Hour); deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	if _, ok := reg.Get("aged"); ok {
		t.Fatal("aged settled round not reaped")
	}
	if _, ok := reg.Get("revealing"); !ok {
		t.Fatal("revealing round must never be reaped")
	}
	if _, ok := reg.Get("fresh"); !ok {
		t.Fatal("fresh round must not be reaped")
	}
	if reg.Count() != 2 {
		t.Fatalf("count = %d, want 2", reg.Count())
	}
}
