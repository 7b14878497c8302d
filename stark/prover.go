package stark

import (
	"encoding/binary"
	"fmt"

	"zksl.dev/core/air"
	"zksl.dev/core/trace"
	"zksl.dev/core/witness"
)

// Prove builds the execution trace for witnesses against pi, commits it,
// and produces a spot-check proof under the fixed ProofOptions.
func Prove(witnesses []witness.SlotWitness, pi air.PublicInputs) (*Envelope, error) {
	table, err := trace.Build(witnesses, pi)
	if err != nil {
		return nil, fmt.Errorf("stark: building trace: %w", err)
	}
	if err := table.CheckConstraints(pi); err != nil {
		return nil, fmt.Errorf("stark: witness does not satisfy its own constraints: %w", err)
	}

	opts := DefaultProofOptions()
	tree := commitRows(table.Rows)
	root := tree.Root()

	tr := newTranscript(root[:], publicInputBytes(pi))

	nonce, err := grind(tr, opts.GrindingBits)
	if err != nil {
		return nil, err
	}
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	tr.absorb(nonceBytes[:])

	// maxIndex leaves room for the paired "next row" opening at pos+1.
	positions := queryPositions(tr, opts.NumQueries, len(table.Rows)-2)

	openings := make([]Opening, 0, len(positions))
	for _, pos := range positions {
		rowProof, ok := tree.Prove(pos)
		if !ok {
			return nil, fmt.Errorf("stark: query position %d out of range", pos)
		}
		nextProof, ok := tree.Prove(pos + 1)
		if !ok {
			return nil, fmt.Errorf("stark: query position %d+1 out of range", pos)
		}
		openings = append(openings, Opening{
			Index:     pos,
			Row:       table.Rows[pos],
			RowProof:  rowProof,
			NextRow:   table.Rows[pos+1],
			NextProof: nextProof,
		})
	}

	return &Envelope{
		Proof: Proof{
			Options:       opts,
			TraceRoot:     root,
			TraceLength:   len(table.Rows),
			GrindingNonce: nonce,
			Openings:      openings,
		},
		PublicInputs: pi,
	}, nil
}

// grind searches for a nonce whose absorption makes the transcript's
// next squeezed digest start with at least bits leading zero bits, the
// proof-of-work delay
// that stands in for FRI's query-soundness amplification.
func grind(tr *transcript, bits uint) (uint64, error) {
	const maxAttempts = 1 << 24
	for nonce := uint64(0); nonce < maxAttempts; nonce++ {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], nonce)
		candidate := *tr
		candidate.absorb(buf[:])
		digest := candidate.squeeze()
		if leadingZeroBits(digest) >= bits {
			return nonce, nil
		}
	}
	return 0, fmt.Errorf("stark: grinding exhausted %d attempts without meeting %d-bit target", maxAttempts, bits)
}

// queryPositions derives count distinct row indices in [0, maxIndex]
// from the transcript (all maxIndex+1 of them when that is fewer than
// count), used identically by the prover and the verifier
// so both land on the same set given the same transcript state. Row 0
// and maxIndex are always included since get_assertions pins the trace
// endpoints unconditionally, not just when chance samples them.
func queryPositions(tr *transcript, count int, maxIndex int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count && len(seen) <= maxIndex {
		v := tr.squeezeUint64()
		pos := int(v % uint64(maxIndex+1))
		if seen[pos] {
			continue
		}
		seen[pos] = true
		out = append(out, pos)
	}

	if len(out) == 0 {
		return out
	}
	if !containsInt(out, 0) {
		out[0] = 0
	}
	if maxIndex != 0 && !containsInt(out, maxIndex) {
		if len(out) > 1 {
			out[1] = maxIndex
		} else {
			out = append(out, maxIndex)
		}
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func publicInputBytes(pi air.PublicInputs) []byte {
	buf := make([]byte, 0, 8+8+32+32+32)
	var le8 [8]byte
	binary.LittleEndian.PutUint64(le8[:], pi.StartSlot)
	buf = append(buf, le8[:]...)
	binary.LittleEndian.PutUint64(le8[:], pi.EndSlot)
	buf = append(buf, le8[:]...)
	buf = append(buf, pi.InitialStateRoot[:]...)
	buf = append(buf, pi.FinalStateRoot[:]...)
	buf = append(buf, pi.Blockhash[:]...)
	return buf
}
