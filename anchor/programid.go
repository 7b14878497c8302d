package anchor

import (
	"encoding/hex"
	"fmt"
	"os"
)

// ResolveProgramID reads the deployed program's on-chain address from
// the environment at build/deploy time: PROGRAM_ID_VALIDATOR_LOCK
// takes precedence, falling back to PROGRAM_ID. Neither being set is
// a hard configuration error, not a zero-valued default, since every
// anchor_proof domain-separation hash is bound to this address.
func ResolveProgramID() ([32]byte, error) {
	hexID := os.Getenv("PROGRAM_ID_VALIDATOR_LOCK")
	if hexID == "" {
		hexID = os.Getenv("PROGRAM_ID")
	}
	if hexID == "" {
		return [32]byte{}, fmt.Errorf("anchor: PROGRAM_ID_VALIDATOR_LOCK or PROGRAM_ID must be set")
	}
	raw, err := hex.DecodeString(hexID)
	if err != nil {
		return [32]byte{}, fmt.Errorf("anchor: decode program id: %w", err)
	}
	if len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("anchor: program id must be 32 bytes, got %d", len(raw))
	}
	var out [32]byte
	copy(out[:], raw)
	return out, nil
}
