package trace

import (
	"testing"

	"zksl.dev/core/air"
	"zksl.dev/core/field"
	"zksl.dev/core/witness"
)

func buildWindow(t *testing.T) ([]witness.SlotWitness, air.PublicInputs) {
	t.Helper()
	accountsA := []witness.VoteAccount{{VotePubkey: "a", NodePubkey: "na", ActivatedStake: 100}}
	accountsB := []witness.VoteAccount{{VotePubkey: "a", NodePubkey: "na", ActivatedStake: 150}}

	w0 := witness.BuildSlotWitness(10, accountsA)
	w1 := witness.BuildSlotWitness(11, accountsB)
	witnesses := []witness.SlotWitness{w0, w1}

	pi := air.PublicInputs{
		StartSlot:        10,
		EndSlot:          11,
		InitialStateRoot: w0.StateRoot,
		FinalStateRoot:   ChainRoot(w0.StateRoot, len(witnesses)),
	}
	return witnesses, pi
}

func TestBuildProducesExpectedRowCount(t *testing.T) {
	witnesses, pi := buildWindow(t)
	table, err := Build(witnesses, pi)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := len(witnesses) * air.RoundsPerWitness
	if table.Len() != want {
		t.Fatalf("Len() = %d, want %d", table.Len(), want)
	}
}

func TestBuildRejectsEmptyWitnesses(t *testing.T) {
	_, pi := buildWindow(t)
	if _, err := Build(nil, pi); err == nil {
		t.Fatalf("expected error for empty witness slice")
	}
}

func TestBuildRejectsStartSlotMismatch(t *testing.T) {
	witnesses, pi := buildWindow(t)
	pi.StartSlot = 999
	if _, err := Build(witnesses, pi); err == nil {
		t.Fatalf("expected error for start slot mismatch")
	}
}

func TestBuildRejectsNonMonotonicSlots(t *testing.T) {
	witnesses, pi := buildWindow(t)
	witnesses[1].Slot = witnesses[0].Slot
	if _, err := Build(witnesses, pi); err == nil {
		t.Fatalf("expected error for non-increasing slots")
	}
}

func TestBuildRejectsSlotDeltaTooLarge(t *testing.T) {
	accounts := []witness.VoteAccount{{VotePubkey: "a", ActivatedStake: 1}}
	w0 := witness.BuildSlotWitness(0, accounts)
	w1 := witness.BuildSlotWitness(300, accounts)
	pi := air.PublicInputs{StartSlot: 0, EndSlot: 300, InitialStateRoot: w0.StateRoot, FinalStateRoot: w1.StateRoot}
	if _, err := Build([]witness.SlotWitness{w0, w1}, pi); err == nil {
		t.Fatalf("expected error for slot delta >= 256")
	}
}

func TestBuiltTraceSatisfiesItsOwnConstraints(t *testing.T) {
	witnesses, pi := buildWindow(t)
	table, err := Build(witnesses, pi)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := table.CheckConstraints(pi); err != nil {
		t.Fatalf("CheckConstraints failed on a freshly built trace: %v", err)
	}
}

func TestCheckConstraintsRejectsTamperedRow(t *testing.T) {
	witnesses, pi := buildWindow(t)
	table, err := Build(witnesses, pi)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	table.Rows[0][air.ColSlot] = table.Rows[0][air.ColSlot].Add(table.Rows[0][air.ColSlot])
	if err := table.CheckConstraints(pi); err == nil {
		t.Fatalf("expected tampered trace to fail constraint checking")
	}
}

func TestRowZeroCarriesInInitialRootUnchanged(t *testing.T) {
	witnesses, pi := buildWindow(t)
	table, err := Build(witnesses, pi)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := field.BytesToElements(pi.InitialStateRoot)
	for i := 0; i < field.RootWidth; i++ {
		if table.Rows[0][air.HashStateStart+i] != want[i] {
			t.Fatalf("row 0 lane %d = %v, want %v (the carried-in root)", i, table.Rows[0][air.HashStateStart+i], want[i])
		}
	}
}

func TestLastRowMatchesChainRoot(t *testing.T) {
	witnesses, pi := buildWindow(t)
	table, err := Build(witnesses, pi)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := field.BytesToElements(ChainRoot(pi.InitialStateRoot, len(witnesses)))
	last := table.Rows[len(table.Rows)-1]
	for i := 0; i < field.RootWidth; i++ {
		if last[air.HashStateStart+i] != want[i] {
			t.Fatalf("last row lane %d = %v, want %v (ChainRoot output)", i, last[air.HashStateStart+i], want[i])
		}
	}
}
