package ds

import "testing"

func sampleMessage() Message {
	return Message{
		ChainID:   7,
		ProgramID: [32]byte{1, 2, 3},
		ProofHash: [32]byte{9, 9, 9},
		StartSlot: 10,
		EndSlot:   20,
		Seq:       1,
	}
}

func TestBuildProducesFixedLength(t *testing.T) {
	msg := Build(sampleMessage())
	if len(msg) != MessageLen || MessageLen != 110 {
		t.Fatalf("message length = %d, want 110", len(msg))
	}
}

func TestBuildStartsWithPrefix(t *testing.T) {
	msg := Build(sampleMessage())
	if string(msg[:len(Prefix)]) != Prefix {
		t.Fatalf("message does not start with the domain prefix")
	}
}

func TestHashChangesWithAnyField(t *testing.T) {
	base := sampleMessage()
	baseHash := Hash(base)

	variants := []Message{base, base, base, base, base, base}
	variants[0].ChainID++
	variants[1].ProofHash[0] ^= 0xFF
	variants[2].StartSlot++
	variants[3].EndSlot++
	variants[4].Seq++
	variants[5].ProgramID[0] ^= 0xFF

	for i, v := range variants {
		if Hash(v) == baseHash {
			t.Fatalf("variant %d did not change the DS hash", i)
		}
	}
}
