package field

import "encoding/binary"

// RootWidth is the number of field elements used to represent a 32-byte
// state root (4 little-endian 64-bit limbs), matching
// original_source/prover/src/north_star.rs::bytes_to_felts.
const RootWidth = 4

// BytesToElements splits a 32-byte value into four field elements, one per
// little-endian 8-byte limb. Each limb is reduced modulo p, which is safe
// because every limb of a hash output is used only as an opaque binding
// value, never compared against the original bytes after round-tripping
// through the field.
func BytesToElements(b [32]byte) [RootWidth]Element {
	var out [RootWidth]Element
	for i := 0; i < RootWidth; i++ {
		out[i] = New(binary.LittleEndian.Uint64(b[i*8 : i*8+8]))
	}
	return out
}

// ElementsToBytes packs four field elements back into 32 bytes, the
// inverse of BytesToElements. Used where a root is computed in the
// field (e.g. replaying the permutation chain) and then needs to be
// carried around as a plain byte value again.
func ElementsToBytes(e [RootWidth]Element) [32]byte {
	var out [32]byte
	for i := 0; i < RootWidth; i++ {
		binary.LittleEndian.PutUint64(out[i*8:i*8+8], e[i].Uint64())
	}
	return out
}
