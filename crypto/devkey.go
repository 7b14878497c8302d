package crypto

import (
	"crypto/ed25519"

	"golang.org/x/crypto/sha3"
)

// DevKeyDeriver produces reproducible ed25519 keys from a label, for
// local tooling and fixtures where a stable aggregator identity across
// runs matters more than real randomness. It does not claim any
// security property beyond determinism; production deployments must
// use GenerateStdEd25519Signer or an HSM-backed signer instead.
type DevKeyDeriver struct{}

// Derive returns the ed25519 signer seeded deterministically from label.
func (DevKeyDeriver) Derive(label string) StdEd25519Signer {
	seed := sha3.Sum256([]byte(label))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return NewStdEd25519Signer(priv)
}
