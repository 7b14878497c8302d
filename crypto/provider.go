// Package crypto is the narrow signing/verification surface the anchor
// program and the proving CLI depend on, kept separate from the
// standard library so a production deployment can swap in an HSM- or
// KMS-backed implementation without touching callers.
package crypto

// AggregatorSigner signs domain-separation messages on the aggregator's
// behalf, and Ed25519Verifier checks such signatures. Both are narrow
// on purpose: the anchor program never needs more than this.
type AggregatorSigner interface {
	PublicKey() [32]byte
	Sign(message []byte) [64]byte
}

type Ed25519Verifier interface {
	Verify(pubkey [32]byte, message []byte, signature [64]byte) bool
}
