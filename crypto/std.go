package crypto

import "crypto/ed25519"

// StdEd25519Signer signs with a stdlib ed25519 private key. It is the
// only AggregatorSigner implementation this repository ships; a
// production deployment would back this interface with an HSM or a
// remote signer instead.
type StdEd25519Signer struct {
	priv ed25519.PrivateKey
}

// NewStdEd25519Signer wraps an existing ed25519 private key.
func NewStdEd25519Signer(priv ed25519.PrivateKey) StdEd25519Signer {
	return StdEd25519Signer{priv: priv}
}

// GenerateStdEd25519Signer creates a fresh keypair, for tests and local tooling.
func GenerateStdEd25519Signer() (StdEd25519Signer, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return StdEd25519Signer{}, err
	}
	return StdEd25519Signer{priv: priv}, nil
}

func (s StdEd25519Signer) PublicKey() [32]byte {
	var out [32]byte
	copy(out[:], s.priv.Public().(ed25519.PublicKey))
	return out
}

func (s StdEd25519Signer) Sign(message []byte) [64]byte {
	sig := ed25519.Sign(s.priv, message)
	var out [64]byte
	copy(out[:], sig)
	return out
}

// StdEd25519Verifier verifies with the stdlib ed25519 implementation,
// mirroring what the host runtime's Ed25519-verify instruction does.
type StdEd25519Verifier struct{}

func (StdEd25519Verifier) Verify(pubkey [32]byte, message []byte, signature [64]byte) bool {
	return ed25519.Verify(pubkey[:], message, signature[:])
}
