package stark

import (
	"testing"

	"zksl.dev/core/air"
	"zksl.dev/core/trace"
	"zksl.dev/core/witness"
)

func sampleWindow() ([]witness.SlotWitness, air.PublicInputs) {
	accountsA := []witness.VoteAccount{{VotePubkey: "a", NodePubkey: "na", ActivatedStake: 100}}
	accountsB := []witness.VoteAccount{{VotePubkey: "a", NodePubkey: "na", ActivatedStake: 150}}
	accountsC := []witness.VoteAccount{{VotePubkey: "a", NodePubkey: "na", ActivatedStake: 120}}

	w0 := witness.BuildSlotWitness(100, accountsA)
	w1 := witness.BuildSlotWitness(101, accountsB)
	w2 := witness.BuildSlotWitness(102, accountsC)
	witnesses := []witness.SlotWitness{w0, w1, w2}

	pi := air.PublicInputs{
		StartSlot:        100,
		EndSlot:          102,
		InitialStateRoot: w0.StateRoot,
		FinalStateRoot:   trace.ChainRoot(w0.StateRoot, len(witnesses)),
	}
	return witnesses, pi
}

func TestProveThenVerifyRoundTrips(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	ok, err := Verify(env)
	if err != nil {
		t.Fatalf("Verify returned system error: %v", err)
	}
	if !ok {
		t.Fatalf("Verify rejected a proof produced by Prove")
	}
}

func TestVerifyRejectsTamperedRoot(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	env.Proof.TraceRoot[0] ^= 0xFF
	ok, err := Verify(env)
	if err != nil {
		t.Fatalf("unexpected system error: %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted a proof with a tampered trace root")
	}
}

func TestVerifyRejectsTamperedOpenedRow(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	env.Proof.Openings[0].Row[0] = env.Proof.Openings[0].Row[0].Add(env.Proof.Openings[0].Row[0])
	ok, err := Verify(env)
	if err != nil {
		t.Fatalf("unexpected system error: %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted a proof with a tampered opened row")
	}
}

func TestVerifyRejectsWrongPublicInputs(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	env.PublicInputs.EndSlot = 9999
	ok, err := Verify(env)
	if err != nil {
		t.Fatalf("unexpected system error: %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted a proof whose public inputs were swapped")
	}
}

func TestVerifyRejectsUnacceptableOptions(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	env.Proof.Options.NumQueries = 1
	if _, err := Verify(env); err == nil {
		t.Fatalf("expected a system error for an unacceptable parameter set")
	}
}

func TestEncodeDecodeEnvelopeRoundTrips(t *testing.T) {
	witnesses, pi := sampleWindow()
	env, err := Prove(witnesses, pi)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	encoded := EncodeEnvelope(env)
	decoded, err := DecodeEnvelope(encoded)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	ok, err := Verify(decoded)
	if err != nil {
		t.Fatalf("Verify on decoded envelope returned system error: %v", err)
	}
	if !ok {
		t.Fatalf("Verify rejected a round-tripped envelope")
	}
}
