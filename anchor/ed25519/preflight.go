// Package ed25519 simulates the runtime instruction-list shape
// anchor_proof depends on: a native Ed25519-verify instruction placed
// immediately before the program instruction it protects, plus a
// compute-budget instruction somewhere in the same transaction.
package ed25519

import (
	"encoding/binary"
	"fmt"
)

// ProgramID and ComputeBudgetProgramID are fixed synthetic program
// addresses standing in for the two well-known native programs the
// preflight check looks for.
var (
	ProgramID              = [32]byte{0xed, 0x25, 0x51, 0x9}
	ComputeBudgetProgramID = [32]byte{0xc0, 0x3f, 0xb0, 0xd6}
)

// Instruction is one entry of a simulated transaction's instruction list.
type Instruction struct {
	ProgramID [32]byte
	Data      []byte
}

// Offsets mirrors the fixed offset table a native Ed25519-verify
// instruction's data carries: one signature to check, with explicit
// byte offsets for the signature, public key and message within the
// instruction data of whichever instruction index they came from.
type Offsets struct {
	SigOffset     uint16
	SigIxIndex    uint16
	PubkeyOffset  uint16
	PubkeyIxIndex uint16
	MsgOffset     uint16
	MsgLen        uint16
	MsgIxIndex    uint16
}

// noOtherInstruction marks an offset table field that must reference
// the current instruction's own data rather than a sibling instruction.
const noOtherInstruction = 0xFFFF

// ParseOffsets decodes the fixed 16-byte-and-up layout a single-signature
// Ed25519-verify instruction's data begins with:
//
//	byte 0:     num_signatures (must be 1)
//	byte 1:     padding
//	bytes 2-3:  signature_offset        (u16 LE)
//	bytes 4-5:  signature_instruction_index
//	bytes 6-7:  public_key_offset
//	bytes 8-9:  public_key_instruction_index
//	bytes 10-11: message_data_offset
//	bytes 12-13: message_data_size
//	bytes 14-15: message_instruction_index
func ParseOffsets(data []byte) (Offsets, error) {
	if len(data) < 16 {
		return Offsets{}, fmt.Errorf("ed25519: instruction data too short: %d bytes", len(data))
	}
	if data[0] != 1 {
		return Offsets{}, fmt.Errorf("ed25519: expected exactly one signature, got %d", data[0])
	}
	return Offsets{
		SigOffset:     binary.LittleEndian.Uint16(data[2:4]),
		SigIxIndex:    binary.LittleEndian.Uint16(data[4:6]),
		PubkeyOffset:  binary.LittleEndian.Uint16(data[6:8]),
		PubkeyIxIndex: binary.LittleEndian.Uint16(data[8:10]),
		MsgOffset:     binary.LittleEndian.Uint16(data[10:12]),
		MsgLen:        binary.LittleEndian.Uint16(data[12:14]),
		MsgIxIndex:    binary.LittleEndian.Uint16(data[14:16]),
	}, nil
}

// Verified extracts the signature, public key and message slices an
// Ed25519-verify instruction's offset table points at, requiring every
// *_instruction_index field to reference the instruction's own data
// (0xFFFF) rather than borrowing bytes from a sibling instruction.
func Verified(data []byte) (sig [64]byte, pubkey [32]byte, msg []byte, err error) {
	off, err := ParseOffsets(data)
	if err != nil {
		return sig, pubkey, nil, err
	}
	if off.SigIxIndex != noOtherInstruction || off.PubkeyIxIndex != noOtherInstruction || off.MsgIxIndex != noOtherInstruction {
		return sig, pubkey, nil, fmt.Errorf("ed25519: offsets must reference this instruction's own data")
	}
	if int(off.SigOffset)+64 > len(data) {
		return sig, pubkey, nil, fmt.Errorf("ed25519: signature slice out of bounds")
	}
	if int(off.PubkeyOffset)+32 > len(data) {
		return sig, pubkey, nil, fmt.Errorf("ed25519: public key slice out of bounds")
	}
	if int(off.MsgOffset)+int(off.MsgLen) > len(data) {
		return sig, pubkey, nil, fmt.Errorf("ed25519: message slice out of bounds")
	}
	copy(sig[:], data[off.SigOffset:off.SigOffset+64])
	copy(pubkey[:], data[off.PubkeyOffset:off.PubkeyOffset+32])
	msg = data[off.MsgOffset : int(off.MsgOffset)+int(off.MsgLen)]
	return sig, pubkey, msg, nil
}

// Preflight checks that the instruction immediately preceding
// currentIndex is a lone Ed25519-verify instruction, and that the
// transaction also carries at least one compute-budget instruction.
// It returns that Ed25519 instruction's data for the caller to parse
// with Verified.
func Preflight(instructions []Instruction, currentIndex int) ([]byte, error) {
	if currentIndex < 1 || currentIndex >= len(instructions) {
		return nil, fmt.Errorf("ed25519: anchor_proof must not be the first instruction")
	}
	edCount := 0
	hasBudget := false
	for _, ix := range instructions {
		if ix.ProgramID == ProgramID {
			edCount++
		}
		if ix.ProgramID == ComputeBudgetProgramID {
			hasBudget = true
		}
	}
	if edCount != 1 {
		return nil, fmt.Errorf("ed25519: expected exactly one Ed25519 instruction, found %d", edCount)
	}
	if !hasBudget {
		return nil, fmt.Errorf("ed25519: transaction is missing a compute-budget instruction")
	}
	prev := instructions[currentIndex-1]
	if prev.ProgramID != ProgramID {
		return nil, fmt.Errorf("ed25519: instruction preceding anchor_proof is not the Ed25519 program")
	}
	return prev.Data, nil
}
