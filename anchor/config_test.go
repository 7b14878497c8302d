package anchor

import "testing"

func TestPingRequiresInitializedConfig(t *testing.T) {
	l := openTestLedger(t)
	if err := l.Ping(); err == nil {
		t.Fatalf("expected Ping to fail before Initialize")
	}
	mustInitialize(t, l, [32]byte{0x10})
	if err := l.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestInitStateResetsSequenceAndRangeTracking(t *testing.T) {
	l := openTestLedger(t)
	aggregator := [32]byte{0x10}
	mustInitialize(t, l, aggregator)

	req, msg := validRequest(l, aggregator, 1, 10, 11)
	instructions, idx := validInstructions(aggregator, msg)
	if _, err := l.AnchorProof(req, instructions, idx, 1000); err != nil {
		t.Fatalf("AnchorProof: %v", err)
	}

	if err := l.InitState(); err != nil {
		t.Fatalf("InitState: %v", err)
	}
	aggState, err := l.AggregatorState()
	if err != nil {
		t.Fatalf("AggregatorState: %v", err)
	}
	if aggState.LastSeq != 0 {
		t.Fatalf("expected last_seq reset to 0, got %d", aggState.LastSeq)
	}
	rangeState, err := l.RangeState()
	if err != nil {
		t.Fatalf("RangeState: %v", err)
	}
	if rangeState.LastEndSlot != 0 {
		t.Fatalf("expected last_end_slot reset to 0, got %d", rangeState.LastEndSlot)
	}

	// A fresh seq=1 anchor is accepted again after the reset.
	req2, msg2 := validRequest(l, aggregator, 1, 20, 21)
	instructions2, idx2 := validInstructions(aggregator, msg2)
	if _, err := l.AnchorProof(req2, instructions2, idx2, 1000); err != nil {
		t.Fatalf("AnchorProof after InitState: %v", err)
	}
}

func TestUpdateConfigCanPauseAndUnpause(t *testing.T) {
	l := openTestLedger(t)
	aggregator := [32]byte{0x10}
	mustInitialize(t, l, aggregator)
	admin := [32]byte{0x02}

	paused := true
	if _, err := l.UpdateConfig(admin, ConfigPatch{Paused: &paused}); err != nil {
		t.Fatalf("UpdateConfig pause: %v", err)
	}
	if _, err := l.RegisterValidator([32]byte{0x20}, [32]byte{0x01}, 500); err == nil {
		t.Fatalf("expected register to be rejected while paused")
	}

	unpaused := false
	if _, err := l.UpdateConfig(admin, ConfigPatch{Paused: &unpaused}); err != nil {
		t.Fatalf("UpdateConfig unpause: %v", err)
	}
	if _, err := l.RegisterValidator([32]byte{0x20}, [32]byte{0x01}, 500); err != nil {
		t.Fatalf("expected register to succeed once unpaused: %v", err)
	}
}
