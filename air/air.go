// Package air defines the algebraic intermediate representation for the
// validator-state transition: the 157-column trace layout, the transition
// constraints every adjacent row pair must satisfy, and the boundary
// assertions binding a trace to its public inputs.
//
// The column layout and every constraint group below are transcribed from
// original_source/prover/src/north_star.rs::SolanaStateAir; the numeric
// constants (MDS, ARK, column offsets) must stay byte-for-byte identical
// to that source or previously generated proofs stop verifying.
package air

import "zksl.dev/core/field"

// Column layout. Indices refer to a single trace row.
const (
	HashStateStart = 0  // 12 lanes: permutation state
	HashStateWidth = field.StateWidth
	ColRound       = 12 // round counter, 0..7
	ColSlot        = 13
	SlotBitsStart  = 14 // 8 bits of the slot delta
	SlotBitsWidth  = 8
	ColStakeLo     = 22
	ColStakeHi     = 23
	ColDeltaLo     = 24
	ColDeltaHi     = 25
	ColAux         = 26
	ColSign        = 27
	StakeLoBits    = 28  // 32 bits
	StakeHiBits    = 60  // 32 bits
	DeltaLoBits    = 92  // 32 bits
	DeltaHiBits    = 124 // 32 bits
	ColTransition  = 156 // transition_flag: 1 on the last row of a witness's 8-row block

	NumCols          = 157
	RoundsPerWitness = field.NumRounds + 1 // 7 hash rounds + 1 transition row

	// NumConstraints is the total count of transition constraints
	// evaluate_transition produces, in the fixed order below.
	NumConstraints = 12 + 1 + 1 + 8 + 6 + 128 + 4 + 4 + 3 + 2
)

// Row is one row of the trace table.
type Row = [NumCols]field.Element

// EvaluateTransition evaluates every transition constraint for the
// (cur, next) adjacent row pair, in the fixed order documented on
// NumConstraints. Every returned value must be zero for a valid trace.
func EvaluateTransition(cur, next Row) [NumConstraints]field.Element {
	var out [NumConstraints]field.Element
	idx := 0

	t := cur[ColTransition]
	isHashRound := field.One.Sub(t)
	isTransitionRound := t

	roundIdx := int(cur[ColRound].Uint64() % uint64(field.NumRounds))
	ark := field.RoundConstants(roundIdx)
	var sbox [field.StateWidth]field.Element
	for j := 0; j < field.StateWidth; j++ {
		sbox[j] = cur[HashStateStart+j].Add(ark[j]).Exp(field.SBoxAlpha)
	}
	for i := 0; i < field.StateWidth; i++ {
		mdsRes := field.Zero
		for j := 0; j < field.StateWidth; j++ {
			mdsRes = mdsRes.Add(sbox[j].Mul(field.MDS[i][j]))
		}
		out[idx] = next[HashStateStart+i].Sub(mdsRes).Mul(isHashRound)
		idx++
	}

	eight := field.New(8)
	nextRoundExpected := cur[ColRound].Add(field.One).Sub(t.Mul(eight))
	out[idx] = next[ColRound].Sub(nextRoundExpected)
	idx++

	slotDelta := field.Zero
	p2 := field.One
	two := field.New(2)
	for i := 0; i < SlotBitsWidth; i++ {
		slotDelta = slotDelta.Add(cur[SlotBitsStart+i].Mul(p2))
		p2 = p2.Mul(two)
	}
	out[idx] = next[ColSlot].Sub(cur[ColSlot].Add(slotDelta)).Mul(isTransitionRound)
	idx++

	for i := 0; i < SlotBitsWidth; i++ {
		bit := cur[SlotBitsStart+i]
		out[idx] = bit.Mul(bit.Sub(field.One))
		idx++
	}

	stakeLo, stakeHi := cur[ColStakeLo], cur[ColStakeHi]
	deltaLo, deltaHi := cur[ColDeltaLo], cur[ColDeltaHi]
	aux, sign := cur[ColAux], cur[ColSign]
	stakeLoNext, stakeHiNext := next[ColStakeLo], next[ColStakeHi]
	isAdd := field.One.Sub(sign)
	isSub := sign
	two32 := field.New(1 << 32)

	addLo := stakeLo.Add(deltaLo).Sub(stakeLoNext.Add(aux.Mul(two32)))
	subLo := stakeLo.Sub(deltaLo).Add(aux.Mul(two32)).Sub(stakeLoNext)
	out[idx] = isAdd.Mul(addLo).Add(isSub.Mul(subLo)).Mul(isTransitionRound)
	idx++

	addHi := stakeHi.Add(deltaHi).Add(aux).Sub(stakeHiNext)
	subHi := stakeHi.Sub(deltaHi).Sub(aux).Sub(stakeHiNext)
	out[idx] = isAdd.Mul(addHi).Add(isSub.Mul(subHi)).Mul(isTransitionRound)
	idx++

	out[idx] = aux.Mul(aux.Sub(field.One))
	idx++
	out[idx] = sign.Mul(sign.Sub(field.One))
	idx++
	out[idx] = next[ColDeltaLo].Sub(deltaLo).Mul(isHashRound)
	idx++
	out[idx] = next[ColDeltaHi].Sub(deltaHi).Mul(isHashRound)
	idx++

	for i := 0; i < 128; i++ {
		bit := cur[StakeLoBits+i]
		out[idx] = bit.Mul(bit.Sub(field.One))
		idx++
	}

	limbRecomposition := []struct {
		limbCol, bitStart int
	}{
		{ColStakeLo, StakeLoBits},
		{ColStakeHi, StakeHiBits},
		{ColDeltaLo, DeltaLoBits},
		{ColDeltaHi, DeltaHiBits},
	}
	for _, lr := range limbRecomposition {
		reconstructed := field.Zero
		p := field.One
		for i := 0; i < 32; i++ {
			reconstructed = reconstructed.Add(cur[lr.bitStart+i].Mul(p))
			p = p.Mul(two)
		}
		out[idx] = cur[lr.limbCol].Sub(reconstructed)
		idx++
	}

	for i := 0; i < field.RootWidth; i++ {
		out[idx] = next[HashStateStart+i].Sub(cur[HashStateStart+i]).Mul(isTransitionRound)
		idx++
	}

	out[idx] = next[ColSlot].Sub(cur[ColSlot]).Mul(isHashRound)
	idx++
	out[idx] = next[ColStakeLo].Sub(stakeLo).Mul(isHashRound)
	idx++
	out[idx] = next[ColStakeHi].Sub(stakeHi).Mul(isHashRound)
	idx++

	out[idx] = t.Mul(t.Sub(field.One))
	idx++
	seven := field.New(7)
	out[idx] = cur[ColRound].Sub(seven).Mul(t)
	idx++

	return out
}
