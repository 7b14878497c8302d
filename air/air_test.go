package air

import (
	"testing"

	"zksl.dev/core/field"
)

func TestEvaluateTransitionLength(t *testing.T) {
	var cur, next Row
	out := EvaluateTransition(cur, next)
	if len(out) != NumConstraints {
		t.Fatalf("len(out) = %d, want %d", len(out), NumConstraints)
	}
}

func TestEvaluateTransitionHashRoundRejectsWrongNext(t *testing.T) {
	var cur, next Row
	cur[ColTransition] = field.Zero // hash round
	out := EvaluateTransition(cur, next)
	allZero := true
	for i := 0; i < field.StateWidth; i++ {
		if !out[i].IsZero() {
			allZero = false
		}
	}
	if allZero {
		t.Fatalf("expected hash constraints to fail when next state is left at zero")
	}
}

func TestEvaluateTransitionBitConstraintsRejectNonBinary(t *testing.T) {
	var cur, next Row
	cur[SlotBitsStart] = field.New(2) // not 0 or 1
	out := EvaluateTransition(cur, next)
	if out[14].IsZero() {
		t.Fatalf("expected slot-bit binary constraint to fail for value 2")
	}
}

func TestBoundaryAssertionsBindEndpoints(t *testing.T) {
	pi := PublicInputs{StartSlot: 10, EndSlot: 12}
	assertions := BoundaryAssertions(pi, 24)
	if assertions[0].Row != 0 || assertions[0].Value != field.New(10) {
		t.Fatalf("unexpected first assertion: %+v", assertions[0])
	}
	if assertions[1].Row != 23 || assertions[1].Value != field.New(12) {
		t.Fatalf("unexpected last assertion: %+v", assertions[1])
	}
}

func TestCheckBoundaryAssertionsRejectsOutOfRange(t *testing.T) {
	pi := PublicInputs{StartSlot: 1, EndSlot: 2}
	if CheckBoundaryAssertions(pi, nil) {
		t.Fatalf("expected false for empty row set")
	}
}
