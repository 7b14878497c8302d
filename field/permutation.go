package field

// Permutation parameters: a 12-wide, 7-round Rescue/Poseidon-family
// permutation with S-box exponent 7. MDS and ARK are pinned exactly as given
// by the source (original_source/prover/src/north_star.rs); changing either
// invalidates every previously generated proof.
const (
	StateWidth = 12
	NumRounds  = 7
	SBoxAlpha  = 7
)

// MDS is the fixed 12x12 circulant MDS matrix.
var MDS = [StateWidth][StateWidth]Element{
	{7, 23, 8, 26, 13, 10, 9, 4, 5, 2, 3, 1},
	{1, 7, 23, 8, 26, 13, 10, 9, 4, 5, 2, 3},
	{3, 1, 7, 23, 8, 26, 13, 10, 9, 4, 5, 2},
	{2, 3, 1, 7, 23, 8, 26, 13, 10, 9, 4, 5},
	{5, 2, 3, 1, 7, 23, 8, 26, 13, 10, 9, 4},
	{4, 5, 2, 3, 1, 7, 23, 8, 26, 13, 10, 9},
	{9, 4, 5, 2, 3, 1, 7, 23, 8, 26, 13, 10},
	{10, 9, 4, 5, 2, 3, 1, 7, 23, 8, 26, 13},
	{13, 10, 9, 4, 5, 2, 3, 1, 7, 23, 8, 26},
	{26, 13, 10, 9, 4, 5, 2, 3, 1, 7, 23, 8},
	{8, 26, 13, 10, 9, 4, 5, 2, 3, 1, 7, 23},
	{23, 8, 26, 13, 10, 9, 4, 5, 2, 3, 1, 7},
}

// ARK holds the per-round additive round constants, one 12-vector per round.
var ARK = [NumRounds][StateWidth]Element{
	{0x88c21a6d05a84b28, 0x548196cb68458a88, 0x3e8acfe0c6e89015, 0x95d8d79dc0e5a5a2,
		0x8e6a0fd8c5d0e9eb, 0x82c0a5f37f8e62b8, 0x4e9f17f27c4a3b5c, 0x6b5e6e7a8f6d5a4c,
		0x2c3e5f6a7b8c9d0e, 0x1f2e3d4c5b6a7988, 0x8796a5b4c3d2e1f0, 0xf0e1d2c3b4a59687},
	{0xd16d14d1387ae2fc, 0x6854e56efb8a5819, 0x95176c0e73f14a9e, 0xa687ec279c2e8c8e,
		0xef3e88d6c2b89f6f, 0xb384a6bb7c3e9fa9, 0x7c8e5d4a3b2c1d0e, 0x9f8e7d6c5b4a3928,
		0x1a2b3c4d5e6f7089, 0x89706f5e4d3c2b1a, 0x0f1e2d3c4b5a6978, 0x7869584736251403},
	{0x4a5e3c2d1e0f8796, 0x9687a5b4c3d2e1f0, 0xf0e1d2c3b4a59687, 0x8796a5b4c3d2e1f0,
		0x1f2e3d4c5b6a7988, 0x8897a6b5c4d3e2f1, 0x2d3c4b5a69788796, 0x96877685a49392a1,
		0xa1b2c3d4e5f67890, 0x0f1e2d3c4b5a6978, 0x7869584736251403, 0x0312243546576879},
	{0x5a6b7c8d9e0f1a2b, 0x3c4d5e6f70819283, 0x94a5b6c7d8e9f0a1, 0xb2c3d4e5f6071829,
		0x3a4b5c6d7e8f90a1, 0xb2c3d4e5f6071829, 0x3a4b5c6d7e8f90a1, 0xb2c3d4e5f6071829,
		0x3a4b5c6d7e8f90a1, 0xb2c3d4e5f6071829, 0x3a4b5c6d7e8f90a1, 0xb2c3d4e5f6071829},
	{0x1d2e3f4a5b6c7d8e, 0x9f0a1b2c3d4e5f60, 0x718293a4b5c6d7e8, 0xf90a1b2c3d4e5f60,
		0x718293a4b5c6d7e8, 0xf90a1b2c3d4e5f60, 0x718293a4b5c6d7e8, 0xf90a1b2c3d4e5f60,
		0x718293a4b5c6d7e8, 0xf90a1b2c3d4e5f60, 0x718293a4b5c6d7e8, 0xf90a1b2c3d4e5f60},
	{0x2b3c4d5e6f708192, 0x83940a5b6c7d8e9f, 0x0a1b2c3d4e5f6071, 0x8293a4b5c6d7e8f9,
		0x0a1b2c3d4e5f6071, 0x8293a4b5c6d7e8f9, 0x0a1b2c3d4e5f6071, 0x8293a4b5c6d7e8f9,
		0x0a1b2c3d4e5f6071, 0x8293a4b5c6d7e8f9, 0x0a1b2c3d4e5f6071, 0x8293a4b5c6d7e8f9},
	{0x3e4f5061728394a5, 0xb6c7d8e9f0a1b2c3, 0xd4e5f60718293a4b, 0x5c6d7e8f90a1b2c3,
		0xd4e5f60718293a4b, 0x5c6d7e8f90a1b2c3, 0xd4e5f60718293a4b, 0x5c6d7e8f90a1b2c3,
		0xd4e5f60718293a4b, 0x5c6d7e8f90a1b2c3, 0xd4e5f60718293a4b, 0x5c6d7e8f90a1b2c3},
}

// RoundConstants returns ARK[round] reduced into canonical field elements.
// Every constant above is already below Modulus (none starts with
// 0xFFFFFFFF), so New returns each value unchanged.
func RoundConstants(round int) [StateWidth]Element {
	var out [StateWidth]Element
	for i, v := range ARK[round] {
		out[i] = New(uint64(v))
	}
	return out
}

// ApplyRound returns the state after one permutation round: MDS * (state + ARK[round])^alpha.
func ApplyRound(state [StateWidth]Element, round int) [StateWidth]Element {
	ark := RoundConstants(round)
	var afterSBox [StateWidth]Element
	for i := 0; i < StateWidth; i++ {
		afterSBox[i] = state[i].Add(ark[i]).Exp(SBoxAlpha)
	}
	var next [StateWidth]Element
	for i := 0; i < StateWidth; i++ {
		acc := Zero
		for j := 0; j < StateWidth; j++ {
			acc = acc.Add(afterSBox[j].Mul(MDS[i][j]))
		}
		next[i] = acc
	}
	return next
}

// Permute runs all NumRounds rounds starting from state.
func Permute(state [StateWidth]Element) [StateWidth]Element {
	for r := 0; r < NumRounds; r++ {
		state = ApplyRound(state, r)
	}
	return state
}
