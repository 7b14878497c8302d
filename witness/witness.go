// Package witness models the per-slot validator vote-account snapshots that
// feed the trace builder, and the state-root commitment derived from them.
package witness

import (
	"encoding/binary"
	"fmt"
	"sort"

	"lukechampine.com/blake3"
	"zksl.dev/core/merkle"
)

type ErrorCode string

const (
	ErrEmptyWindow  ErrorCode = "WITNESS_ERR_EMPTY_WINDOW"
	ErrNonMonotonic ErrorCode = "WITNESS_ERR_NON_MONOTONIC"
	ErrFetchFailed  ErrorCode = "WITNESS_ERR_FETCH_FAILED"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func witnessErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// EpochCredit is one (epoch, credits, prevCredits) tuple from a vote
// account's credit history.
type EpochCredit struct {
	Epoch       uint64
	Credits     uint64
	PrevCredits uint64
}

// VoteAccount is one validator's vote-account snapshot at a slot.
type VoteAccount struct {
	VotePubkey     string
	NodePubkey     string
	ActivatedStake uint64
	Commission     uint8
	LastVote       uint64
	RootSlot       uint64
	EpochCredits   []EpochCredit
}

// SlotWitness is the full per-slot snapshot: every tracked vote account
// plus the Merkle commitment binding them to the slot.
type SlotWitness struct {
	Slot          uint64
	VoteAccounts  []VoteAccount
	StateRoot     [32]byte
	AccountHashes [][32]byte
}

// HashVoteAccount hashes one vote account's fields into a Merkle leaf,
// matching the field order in original_source/prover/src/witness.rs's
// compute_merkle_root: pubkeys, stake, commission, last vote, root slot,
// then the epoch-credit history in order.
func HashVoteAccount(v VoteAccount) [32]byte {
	h := blake3.New(32, nil)
	h.Write([]byte(v.VotePubkey))
	h.Write([]byte(v.NodePubkey))
	writeU64(h, v.ActivatedStake)
	h.Write([]byte{v.Commission})
	writeU64(h, v.LastVote)
	writeU64(h, v.RootSlot)
	for _, c := range v.EpochCredits {
		writeU64(h, c.Epoch)
		writeU64(h, c.Credits)
		writeU64(h, c.PrevCredits)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeU64(h *blake3.Hasher, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

// ComputeStateRoot sorts the given vote accounts by pubkey, hashes each
// into a Merkle leaf, builds the commitment tree, and binds the slot
// number into the final root. Returns the state root and the sorted,
// per-account leaf hashes (in the same order used to build the tree).
func ComputeStateRoot(slot uint64, accounts []VoteAccount) ([32]byte, [][32]byte) {
	sorted := make([]VoteAccount, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].VotePubkey < sorted[j].VotePubkey
	})

	hashes := make([][32]byte, 0, len(sorted))
	for _, v := range sorted {
		hashes = append(hashes, HashVoteAccount(v))
	}
	if len(hashes) == 0 {
		hashes = append(hashes, [32]byte{})
	}

	tree := merkle.New(hashes)
	root := tree.Root()

	final := blake3.New(32, nil)
	writeU64(final, slot)
	final.Write(root[:])
	var stateRoot [32]byte
	copy(stateRoot[:], final.Sum(nil))

	return stateRoot, hashes
}

// BuildSlotWitness assembles a SlotWitness from raw vote-account data,
// computing and attaching its state root.
func BuildSlotWitness(slot uint64, accounts []VoteAccount) SlotWitness {
	root, hashes := ComputeStateRoot(slot, accounts)
	return SlotWitness{
		Slot:          slot,
		VoteAccounts:  accounts,
		StateRoot:     root,
		AccountHashes: hashes,
	}
}

// ValidateWindow checks that witnesses is non-empty and strictly
// increasing in slot, the precondition the trace builder relies on.
func ValidateWindow(witnesses []SlotWitness) error {
	if len(witnesses) == 0 {
		return witnessErr(ErrEmptyWindow, "witness window is empty")
	}
	for i := 1; i < len(witnesses); i++ {
		if witnesses[i].Slot <= witnesses[i-1].Slot {
			return witnessErr(ErrNonMonotonic, "slots must be strictly increasing")
		}
	}
	return nil
}
