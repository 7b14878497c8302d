// Package ds builds and hashes the domain-separation message that an
// aggregator signs and an on-chain anchor instruction recomputes and
// verifies.
package ds

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// Prefix is the 14-byte ASCII domain tag prepended to every message.
const Prefix = "zKSL/anchor/v1"

// MessageLen is the fixed length of a built message: 14 + 8 + 32 + 32 + 8 + 8 + 8.
const MessageLen = len(Prefix) + 8 + 32 + 32 + 8 + 8 + 8

// Message holds the fields bound into a domain-separated anchor message.
type Message struct {
	ChainID   uint64
	ProgramID [32]byte
	ProofHash [32]byte
	StartSlot uint64
	EndSlot   uint64
	Seq       uint64
}

// Build serializes m into its canonical 110-byte wire form, matching
// original_source/programs/validator_lock/src/lib.rs::anchor_proof's DS
// assembly byte-for-byte.
func Build(m Message) [MessageLen]byte {
	var out [MessageLen]byte
	pos := 0
	pos += copy(out[pos:], Prefix)
	pos += putU64(out[pos:], m.ChainID)
	pos += copy(out[pos:], m.ProgramID[:])
	pos += copy(out[pos:], m.ProofHash[:])
	pos += putU64(out[pos:], m.StartSlot)
	pos += putU64(out[pos:], m.EndSlot)
	pos += putU64(out[pos:], m.Seq)
	return out
}

func putU64(dst []byte, v uint64) int {
	binary.LittleEndian.PutUint64(dst[:8], v)
	return 8
}

// Hash returns BLAKE3(Build(m)), the value anchor_proof compares against
// the caller-supplied ds_hash.
func Hash(m Message) [32]byte {
	msg := Build(m)
	h := blake3.New(32, nil)
	h.Write(msg[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
