package stark

import (
	"zksl.dev/core/air"
	"zksl.dev/core/merkle"
)

// Opening is one spot-checked row pair: the row at Index and the row
// immediately after it, each with its Merkle inclusion proof against
// the trace commitment.
type Opening struct {
	Index     int
	Row       air.Row
	RowProof  merkle.Proof
	NextRow   air.Row
	NextProof merkle.Proof
}

// Proof is the full spot-check proof body: the trace commitment, the
// grinding nonce, and the opened row pairs the verifier's recomputed
// query positions must match.
type Proof struct {
	Options       ProofOptions
	TraceRoot     [32]byte
	TraceLength   int
	GrindingNonce uint64
	Openings      []Opening
}

// Envelope is the serializable proof artifact, pairing a Proof with the
// public inputs it was generated against (mirrors
// original_source/prover/src/north_star.rs::StarkProofEnvelope).
type Envelope struct {
	Proof        Proof
	PublicInputs air.PublicInputs
}
