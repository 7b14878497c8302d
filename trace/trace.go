// Package trace builds the execution trace that the AIR's transition
// constraints run over, from a window of slot witnesses.
//
// Build mirrors original_source/prover/src/north_star.rs::build_trace
// column-for-column; any divergence in row layout or the hash/arithmetic
// lanes would make EvaluateTransition reject every row on a trace this
// package produces. Row r holds the permutation state at the start of
// round r, so a round is applied only after its row is recorded: row 0
// carries the root in unchanged, row 7 carries the output of the 7th
// applied round.
package trace

import (
	"fmt"

	"zksl.dev/core/air"
	"zksl.dev/core/field"
	"zksl.dev/core/witness"
)

type ErrorCode string

const (
	ErrEmptyWitnesses ErrorCode = "TRACE_ERR_EMPTY_WITNESSES"
	ErrSlotMismatch   ErrorCode = "TRACE_ERR_SLOT_MISMATCH"
	ErrNonMonotonic   ErrorCode = "TRACE_ERR_NON_MONOTONIC"
	ErrStakeOverflow  ErrorCode = "TRACE_ERR_STAKE_OVERFLOW"
	ErrSlotDeltaRange ErrorCode = "TRACE_ERR_SLOT_DELTA_RANGE"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func traceErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Table is a built execution trace: one air.Row per trace step.
type Table struct {
	Rows []air.Row
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// CheckConstraints re-evaluates every transition constraint across all
// adjacent row pairs and every boundary assertion, returning nil only
// if the trace is fully consistent with pi.
func (t Table) CheckConstraints(pi air.PublicInputs) error {
	for i := 0; i < len(t.Rows)-1; i++ {
		out := air.EvaluateTransition(t.Rows[i], t.Rows[i+1])
		for _, v := range out {
			if !v.IsZero() {
				return fmt.Errorf("trace: transition constraint violated at row %d", i)
			}
		}
	}
	if !air.CheckBoundaryAssertions(pi, t.Rows) {
		return fmt.Errorf("trace: boundary assertion violated")
	}
	return nil
}

// Build lifts a window of slot witnesses into a trace table. Witnesses
// must be non-empty, strictly increasing in slot, and must span exactly
// [pi.StartSlot, pi.EndSlot].
func Build(witnesses []witness.SlotWitness, pi air.PublicInputs) (Table, error) {
	if len(witnesses) == 0 {
		return Table{}, traceErr(ErrEmptyWitnesses, "witnesses cannot be empty")
	}
	if witnesses[0].Slot != pi.StartSlot {
		return Table{}, traceErr(ErrSlotMismatch, "start slot mismatch")
	}
	if witnesses[len(witnesses)-1].Slot != pi.EndSlot {
		return Table{}, traceErr(ErrSlotMismatch, "end slot mismatch")
	}
	for i := 1; i < len(witnesses); i++ {
		if witnesses[i].Slot <= witnesses[i-1].Slot {
			return Table{}, traceErr(ErrNonMonotonic, "slots must be strictly increasing")
		}
	}

	rows := make([]air.Row, 0, len(witnesses)*air.RoundsPerWitness)
	prevRoot := field.BytesToElements(pi.InitialStateRoot)

	for witnessIdx, w := range witnesses {
		isLastWitness := witnessIdx == len(witnesses)-1

		totalStake, err := sumStake(w.VoteAccounts)
		if err != nil {
			return Table{}, err
		}
		var nextStake uint64
		var slotDelta uint64
		if isLastWitness {
			nextStake = totalStake
			slotDelta = 0
		} else {
			nextStake, err = sumStake(witnesses[witnessIdx+1].VoteAccounts)
			if err != nil {
				return Table{}, err
			}
			slotDelta = witnesses[witnessIdx+1].Slot - w.Slot
		}
		if slotDelta >= 256 {
			return Table{}, traceErr(ErrSlotDeltaRange, "slot delta too large")
		}

		var deltaAbs uint64
		var sign uint64
		if nextStake >= totalStake {
			deltaAbs, sign = nextStake-totalStake, 0
		} else {
			deltaAbs, sign = totalStake-nextStake, 1
		}

		stakeLo := totalStake & 0xFFFFFFFF
		stakeHi := totalStake >> 32
		deltaLo := deltaAbs & 0xFFFFFFFF
		deltaHi := deltaAbs >> 32

		var hashState [field.StateWidth]field.Element
		for i := 0; i < field.RootWidth; i++ {
			hashState[i] = prevRoot[i]
		}
		for i := field.RootWidth; i < field.StateWidth; i++ {
			hashState[i] = field.Zero
		}

		for round := 0; round < air.RoundsPerWitness; round++ {
			var row air.Row
			row[air.ColRound] = field.New(uint64(round))

			// Row r holds the state at the start of round r; row 7
			// (the transition row) holds the output of the 7th applied
			// round, so the round is applied only after the row is
			// recorded, and never on the final row.
			for i := 0; i < field.StateWidth; i++ {
				row[air.HashStateStart+i] = hashState[i]
			}
			if round < field.NumRounds {
				hashState = field.ApplyRound(hashState, round)
			}

			row[air.ColSlot] = field.New(w.Slot)
			for b := 0; b < air.SlotBitsWidth; b++ {
				row[air.SlotBitsStart+b] = field.New((slotDelta >> uint(b)) & 1)
			}
			row[air.ColStakeLo] = field.New(stakeLo)
			row[air.ColStakeHi] = field.New(stakeHi)
			row[air.ColDeltaLo] = field.New(deltaLo)
			row[air.ColDeltaHi] = field.New(deltaHi)

			var aux uint64
			if sign == 0 {
				aux = (stakeLo + deltaLo) >> 32
			} else if stakeLo < deltaLo {
				aux = 1
			}
			row[air.ColAux] = field.New(aux)
			row[air.ColSign] = field.New(sign)

			pushBits(&row, air.StakeLoBits, stakeLo, 32)
			pushBits(&row, air.StakeHiBits, stakeHi, 32)
			pushBits(&row, air.DeltaLoBits, deltaLo, 32)
			pushBits(&row, air.DeltaHiBits, deltaHi, 32)

			if round == air.RoundsPerWitness-1 {
				row[air.ColTransition] = field.One
			}

			rows = append(rows, row)
		}

		prevRoot = [field.RootWidth]field.Element{hashState[0], hashState[1], hashState[2], hashState[3]}
	}

	return Table{Rows: rows}, nil
}

// ChainRoot replays the root-carry permutation chain Build performs
// across a window of numWitnesses blocks, starting from initial, and
// returns the root carried out of the last block's row 7. Step 2/3 of
// the builder contract never absorbs per-witness content into the hash
// lanes, only the previous root, so this depends solely on the window
// length: callers use it to compute the final_state_root a given
// window will actually produce, rather than asserting an unrelated
// value.
func ChainRoot(initial [32]byte, numWitnesses int) [32]byte {
	carried := field.BytesToElements(initial)

	for w := 0; w < numWitnesses; w++ {
		var hashState [field.StateWidth]field.Element
		for i := 0; i < field.RootWidth; i++ {
			hashState[i] = carried[i]
		}
		for round := 0; round < field.NumRounds; round++ {
			hashState = field.ApplyRound(hashState, round)
		}
		for i := 0; i < field.RootWidth; i++ {
			carried[i] = hashState[i]
		}
	}

	return field.ElementsToBytes(carried)
}

func pushBits(row *air.Row, start int, v uint64, count int) {
	for i := 0; i < count; i++ {
		row[start+i] = field.New((v >> uint(i)) & 1)
	}
}

func sumStake(accounts []witness.VoteAccount) (uint64, error) {
	var total uint64
	for _, a := range accounts {
		next := total + a.ActivatedStake
		if next < total {
			return 0, traceErr(ErrStakeOverflow, "activated stake sum overflowed u64")
		}
		total = next
	}
	return total, nil
}
