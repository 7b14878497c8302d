package witness

import (
	"context"
	"testing"
)

func sampleAccounts() []VoteAccount {
	return []VoteAccount{
		{VotePubkey: "vote-b", NodePubkey: "node-b", ActivatedStake: 200, Commission: 5, LastVote: 10, RootSlot: 9},
		{VotePubkey: "vote-a", NodePubkey: "node-a", ActivatedStake: 100, Commission: 10, LastVote: 11, RootSlot: 9,
			EpochCredits: []EpochCredit{{Epoch: 1, Credits: 5, PrevCredits: 0}}},
	}
}

func TestComputeStateRootIsOrderIndependentOfInput(t *testing.T) {
	accounts := sampleAccounts()
	reversed := []VoteAccount{accounts[1], accounts[0]}

	rootA, _ := ComputeStateRoot(42, accounts)
	rootB, _ := ComputeStateRoot(42, reversed)
	if rootA != rootB {
		t.Fatalf("state root depends on input ordering, want sort-stable result")
	}
}

func TestComputeStateRootBindsSlot(t *testing.T) {
	accounts := sampleAccounts()
	rootA, _ := ComputeStateRoot(1, accounts)
	rootB, _ := ComputeStateRoot(2, accounts)
	if rootA == rootB {
		t.Fatalf("state root did not change across slots for identical accounts")
	}
}

func TestHashVoteAccountDistinguishesStake(t *testing.T) {
	a := VoteAccount{VotePubkey: "v", NodePubkey: "n", ActivatedStake: 1}
	b := a
	b.ActivatedStake = 2
	if HashVoteAccount(a) == HashVoteAccount(b) {
		t.Fatalf("hash collided across differing stake amounts")
	}
}

func TestValidateWindowRejectsEmpty(t *testing.T) {
	if err := ValidateWindow(nil); err == nil {
		t.Fatalf("expected error for empty witness window")
	}
}

func TestValidateWindowRejectsNonMonotonic(t *testing.T) {
	witnesses := []SlotWitness{{Slot: 5}, {Slot: 5}}
	if err := ValidateWindow(witnesses); err == nil {
		t.Fatalf("expected error for non-increasing slots")
	}
}

func TestValidateWindowAcceptsIncreasing(t *testing.T) {
	witnesses := []SlotWitness{{Slot: 5}, {Slot: 6}, {Slot: 10}}
	if err := ValidateWindow(witnesses); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStaticSourceFiltersByWindow(t *testing.T) {
	src := &StaticSource{Witnesses: []SlotWitness{
		BuildSlotWitness(1, sampleAccounts()),
		BuildSlotWitness(2, sampleAccounts()),
		BuildSlotWitness(3, sampleAccounts()),
	}}
	got, err := src.FetchWindow(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Slot != 2 || got[1].Slot != 3 {
		t.Fatalf("unexpected window result: %+v", got)
	}
}

func TestStaticSourceErrorsOnEmptyWindow(t *testing.T) {
	src := &StaticSource{Witnesses: []SlotWitness{BuildSlotWitness(1, sampleAccounts())}}
	if _, err := src.FetchWindow(context.Background(), 100, 200); err == nil {
		t.Fatalf("expected error for window with no matching witnesses")
	}
}
