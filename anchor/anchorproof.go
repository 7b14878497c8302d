package anchor

import (
	"bytes"

	bolt "go.etcd.io/bbolt"

	"zksl.dev/core/anchor/ed25519"
	"zksl.dev/core/ds"
)

// Slot-window and resource bounds the anchor_proof instruction enforces.
const (
	MaxSlotsPerArtifact  = 2048
	MaxClockSkewSecs     = 120
	MaxArtifactSizeBytes = 524288
)

// AnchorProofRequest carries the arguments of the anchor_proof
// instruction, matching the fields the caller's transaction commits to.
type AnchorProofRequest struct {
	ArtifactID       [16]byte
	ProofHash        [32]byte
	Seq              uint64
	StartSlot        uint64
	EndSlot          uint64
	ArtifactLen      uint32
	StateRootBefore  [32]byte
	StateRootAfter   [32]byte
	AggregatorPubkey [32]byte
	Timestamp        int64
	DSHash           [32]byte
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// AnchorProof runs the full anchor_proof instruction: aggregator-key
// and Ed25519-preflight checks, sequence and slot-range monotonicity,
// clock-skew and domain-separation verification, and finally commits a
// new ProofRecord. instructions/currentIndex simulate the surrounding
// transaction's instruction list, with the native Ed25519-verify
// instruction expected immediately before currentIndex.
func (l *Ledger) AnchorProof(req AnchorProofRequest, instructions []ed25519.Instruction, currentIndex int, now int64) (*ProofAnchoredEvent, error) {
	var ev *ProofAnchoredEvent
	err := l.db.Update(func(tx *bolt.Tx) error {
		cfg, err := l.getConfig(tx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return anchorErr(ErrPaused, "anchor_proof: program is paused")
		}

		allowed := allowedAggregatorKey(cfg, req.Seq)
		if allowed != req.AggregatorPubkey {
			return anchorErr(ErrAggregatorMismatch, "anchor_proof: aggregator_pubkey is not the allowed key for this seq")
		}

		edData, err := ed25519.Preflight(instructions, currentIndex)
		if err != nil {
			return anchorErr(ErrBadEd25519Order, err.Error())
		}

		aggState, err := l.getAggregatorState(tx)
		if err != nil {
			return err
		}
		var wantSeq uint64 = 1
		if aggState.LastSeq != 0 {
			wantSeq = aggState.LastSeq + 1
		}
		if req.Seq != wantSeq {
			return anchorErr(ErrNonMonotonicSeq, "anchor_proof: seq is not the expected next sequence")
		}

		rangeState, err := l.getRangeState(tx)
		if err != nil {
			return err
		}
		if req.EndSlot < req.StartSlot {
			return anchorErr(ErrRangeOverlap, "anchor_proof: end_slot precedes start_slot")
		}
		if req.EndSlot-req.StartSlot+1 > MaxSlotsPerArtifact {
			return anchorErr(ErrRangeOverlap, "anchor_proof: slot window exceeds the maximum artifact span")
		}
		if rangeState.LastEndSlot != 0 && req.StartSlot != rangeState.LastEndSlot+1 {
			return anchorErr(ErrRangeOverlap, "anchor_proof: start_slot does not continue the last accepted range")
		}

		if absInt64(now-req.Timestamp) > MaxClockSkewSecs {
			return anchorErr(ErrClockSkew, "anchor_proof: timestamp is outside the accepted clock skew")
		}

		dsMsg := ds.Message{
			ChainID:   cfg.ChainID,
			ProgramID: l.programID,
			ProofHash: req.ProofHash,
			StartSlot: req.StartSlot,
			EndSlot:   req.EndSlot,
			Seq:       req.Seq,
		}
		wantHash := ds.Hash(dsMsg)
		if wantHash != req.DSHash {
			return anchorErr(ErrBadDomainSeparation, "anchor_proof: recomputed domain-separation hash mismatch")
		}

		_, pubkey, msg, err := ed25519.Verified(edData)
		if err != nil {
			return anchorErr(ErrBadEd25519Order, err.Error())
		}
		if pubkey != req.AggregatorPubkey {
			return anchorErr(ErrAggregatorMismatch, "anchor_proof: Ed25519 instruction signer is not aggregator_pubkey")
		}
		builtMsg := ds.Build(dsMsg)
		if !bytes.Equal(msg, builtMsg[:]) {
			return anchorErr(ErrBadDomainSeparation, "anchor_proof: Ed25519 instruction message does not match the recomputed domain-separation bytes")
		}

		if req.ArtifactLen > MaxArtifactSizeBytes {
			return anchorErr(ErrInsufficientBudget, "anchor_proof: artifact_len exceeds the maximum artifact size")
		}

		if existing, found, err := l.getProofRecord(tx, req.ProofHash, req.Seq); err != nil {
			return err
		} else if found && existing.Seq != 0 {
			return anchorErr(ErrProofAlreadyAnchored, "anchor_proof: proof record already exists for this hash and seq")
		}

		rec := ProofRecord{
			ProofHash:        req.ProofHash,
			Seq:              req.Seq,
			StartSlot:        req.StartSlot,
			EndSlot:          req.EndSlot,
			StateRootBefore:  req.StateRootBefore,
			StateRootAfter:   req.StateRootAfter,
			AggregatorPubkey: req.AggregatorPubkey,
			Timestamp:        req.Timestamp,
			DSHash:           req.DSHash,
			ArtifactID:       req.ArtifactID,
			ArtifactLen:      req.ArtifactLen,
		}
		if err := l.putProofRecord(tx, rec); err != nil {
			return err
		}

		aggState.LastSeq = req.Seq
		if err := l.putAggregatorState(tx, aggState); err != nil {
			return err
		}
		rangeState.LastEndSlot = req.EndSlot
		if err := l.putRangeState(tx, rangeState); err != nil {
			return err
		}

		ev = &ProofAnchoredEvent{
			ProofHash:   req.ProofHash,
			Seq:         req.Seq,
			StartSlot:   req.StartSlot,
			EndSlot:     req.EndSlot,
			StateBefore: req.StateRootBefore,
			StateAfter:  req.StateRootAfter,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}
