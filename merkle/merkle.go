// Package merkle implements the binary Merkle commitment used to bind
// witness leaves and STARK trace rows to a single root.
package merkle

import "lukechampine.com/blake3"

// Tree is a binary Merkle tree over 32-byte leaves, padded with zero
// leaves up to the next power of two, matching
// original_source/prover/src/merkle.rs.
type Tree struct {
	levels [][][32]byte // levels[0] is the padded leaf layer
}

// Proof is an inclusion proof for one leaf: its index and the sibling
// hash at every level from the leaf up to the root.
type Proof struct {
	LeafIndex int
	Siblings  [][32]byte
}

// New builds a tree over leaves. An empty input is treated as a single
// zero leaf, matching the reference implementation.
func New(leaves [][32]byte) *Tree {
	padded := make([][32]byte, len(leaves))
	copy(padded, leaves)
	if len(padded) == 0 {
		padded = append(padded, [32]byte{})
	}
	target := nextPowerOfTwo(len(padded))
	for len(padded) < target {
		padded = append(padded, [32]byte{})
	}

	levels := [][][32]byte{padded}
	current := padded
	for len(current) > 1 {
		next := make([][32]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			left := current[i]
			right := [32]byte{}
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, hashPair(left, right))
		}
		levels = append(levels, next)
		current = next
	}
	return &Tree{levels: levels}
}

// Root returns the tree's root hash.
func (t *Tree) Root() [32]byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Len returns the number of leaves after zero-padding.
func (t *Tree) Len() int {
	return len(t.levels[0])
}

// Prove returns an inclusion proof for the leaf at index, or false if
// the index is out of range.
func (t *Tree) Prove(index int) (Proof, bool) {
	if index < 0 || index >= len(t.levels[0]) {
		return Proof{}, false
	}
	siblings := make([][32]byte, 0, len(t.levels)-1)
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		siblingIdx := idx ^ 1
		if siblingIdx < len(t.levels[level]) {
			siblings = append(siblings, t.levels[level][siblingIdx])
		} else {
			siblings = append(siblings, [32]byte{})
		}
		idx /= 2
	}
	return Proof{LeafIndex: index, Siblings: siblings}, true
}

// Verify reports whether proof correctly binds leaf to root.
func Verify(root [32]byte, leaf [32]byte, proof Proof) bool {
	current := leaf
	idx := proof.LeafIndex
	for _, sibling := range proof.Siblings {
		if idx%2 == 0 {
			current = hashPair(current, sibling)
		} else {
			current = hashPair(sibling, current)
		}
		idx /= 2
	}
	return current == root
}

func hashPair(left, right [32]byte) [32]byte {
	h := blake3.New(32, nil)
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
