package stark

import (
	"encoding/binary"

	"lukechampine.com/blake3"
	"zksl.dev/core/air"
	"zksl.dev/core/merkle"
)

// rowBytes serializes a trace row as 157 little-endian u64 limbs, the
// leaf preimage committed to the Merkle tree.
func rowBytes(row air.Row) []byte {
	buf := make([]byte, air.NumCols*8)
	for i, el := range row {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], el.Uint64())
	}
	return buf
}

func rowLeaf(row air.Row) [32]byte {
	h := blake3.New(32, nil)
	h.Write(rowBytes(row))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func commitRows(rows []air.Row) *merkle.Tree {
	leaves := make([][32]byte, len(rows))
	for i, r := range rows {
		leaves[i] = rowLeaf(r)
	}
	return merkle.New(leaves)
}
