package stark

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// transcript is a simple Fiat-Shamir transcript: every absorbed value
// folds into the running state via BLAKE3, and squeeze derives fresh
// pseudorandom output by hashing the state together with a counter.
type transcript struct {
	state   [32]byte
	counter uint64
}

func newTranscript(seed ...[]byte) *transcript {
	h := blake3.New(32, nil)
	for _, s := range seed {
		h.Write(s)
	}
	tr := &transcript{}
	copy(tr.state[:], h.Sum(nil))
	return tr
}

func (tr *transcript) absorb(data []byte) {
	h := blake3.New(32, nil)
	h.Write(tr.state[:])
	h.Write(data)
	copy(tr.state[:], h.Sum(nil))
}

func (tr *transcript) squeeze() [32]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], tr.counter)
	tr.counter++
	h := blake3.New(32, nil)
	h.Write(tr.state[:])
	h.Write(buf[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (tr *transcript) squeezeUint64() uint64 {
	out := tr.squeeze()
	return binary.LittleEndian.Uint64(out[:8])
}

// leadingZeroBits counts the number of leading zero bits across b, read
// most-significant byte first.
func leadingZeroBits(b [32]byte) uint {
	var n uint
	for _, byt := range b {
		if byt == 0 {
			n += 8
			continue
		}
		for mask := byte(0x80); mask != 0 && byt&mask == 0; mask >>= 1 {
			n++
		}
		break
	}
	return n
}
