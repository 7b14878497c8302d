package anchor

import "lukechampine.com/blake3"

// Account layout sizes, exclusive of the 8-byte account-type
// discriminator every account is stored under.
const (
	ConfigSize          = 168
	ValidatorRecordSize = 136
	AggregatorStateSize = 126
	RangeStateSize      = 128
	ProofRecordSize     = 262
)

// PDA seed components, matching
// original_source/programs/validator_lock/src/lib.rs.
var (
	seedZKSL       = []byte("zksl")
	seedEscrow     = []byte("escrow")
	seedAggregator = []byte("aggregator")
	seedRange      = []byte("range")
	seedProof      = []byte("proof")
)

// DeriveAddress simulates Solana's find_program_address: a
// deterministic BLAKE3 hash over the seeds, standing in for the
// curve-point-avoidance PDA derivation the real runtime performs.
// There is no on-chain program to delegate to here, so this package
// is the authority for every address it derives.
func DeriveAddress(seeds ...[]byte) [32]byte {
	h := blake3.New(32, nil)
	for _, s := range seeds {
		h.Write(s)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func escrowAddress(validatorPubkey [32]byte) [32]byte {
	return DeriveAddress(seedZKSL, seedEscrow, validatorPubkey[:])
}

func aggregatorStateAddress() [32]byte {
	return DeriveAddress(seedZKSL, seedAggregator)
}

func rangeStateAddress() [32]byte {
	return DeriveAddress(seedZKSL, seedRange)
}

func proofRecordAddress(proofHash [32]byte, seq uint64) [32]byte {
	return DeriveAddress(seedZKSL, seedProof, proofHash[:], leU64(seq))
}

func leU64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}

// Config is the program-wide configuration PDA (168 bytes).
type Config struct {
	ZKSLMint              [32]byte
	Admin                 [32]byte
	AggregatorPubkey      [32]byte
	NextAggregatorPubkey  [32]byte
	ActivationSeq         uint64
	ChainID               uint64
	Paused                bool
	Bump                  uint8
	Reserved              [22]byte
}

// ValidatorRecord tracks one locked validator (136 bytes).
type ValidatorRecord struct {
	ValidatorPubkey   [32]byte
	LockTokenAccount  [32]byte
	LockTimestamp     int64
	Status            ValidatorStatus
	NumAccepts        uint64
	Reserved          [55]byte
}

type ValidatorStatus uint8

const (
	ValidatorStatusInactive ValidatorStatus = 0
	ValidatorStatusActive   ValidatorStatus = 1
	ValidatorStatusUnlocked ValidatorStatus = 2
)

// AggregatorState tracks the last accepted proof sequence (126 bytes).
type AggregatorState struct {
	LastSeq  uint64
	Reserved [118]byte
}

// RangeState tracks the last accepted slot window's end (128 bytes).
type RangeState struct {
	LastEndSlot uint64
	Reserved    [120]byte
}

// ProofRecord is created once per accepted proof, keyed by
// (proof_hash, seq) (262 bytes).
type ProofRecord struct {
	ProofHash        [32]byte
	Seq              uint64
	StartSlot        uint64
	EndSlot          uint64
	StateRootBefore  [32]byte
	StateRootAfter   [32]byte
	AggregatorPubkey [32]byte
	Timestamp        int64
	DSHash           [32]byte
	ArtifactID       [16]byte
	ArtifactLen      uint32
	Reserved         [50]byte
}
