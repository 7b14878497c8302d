// Package stark implements the proving and verification driver for the
// validator-state AIR. It uses a Merkle-commit-and-spot-check protocol in
// place of a full low-degree (FRI) test: no FRI-equivalent library exists
// in the toolchain this project draws on, so soundness here rests on the
// number of spot-checked rows and the proof-of-work grinding delay rather
// than on an actual low-degree proof. See DESIGN.md for the tradeoff.
package stark

// ProofOptions mirrors the fixed STARK parameter tuple from
// original_source/prover/src/north_star.rs::generate_proof
// (ProofOptions::new(64, 16, 20, FieldExtension::Quadratic, 8, 31)).
// FieldExtensionDegree, FriFoldingFactor and FriRemainderMaxDegree are
// carried as accepted metadata on the envelope even though this
// implementation's spot-check protocol does not use an extension field
// or a folding low-degree test; they exist so a proof produced against
// one parameter set is never silently accepted under another.
type ProofOptions struct {
	NumQueries            int
	BlowupFactor          int
	GrindingBits          uint
	FieldExtensionDegree  int
	FriFoldingFactor      int
	FriRemainderMaxDegree int
}

// DefaultProofOptions returns the one parameter set this system proves
// and verifies against.
func DefaultProofOptions() ProofOptions {
	return ProofOptions{
		NumQueries:            64,
		BlowupFactor:          16,
		GrindingBits:          20,
		FieldExtensionDegree:  2,
		FriFoldingFactor:      8,
		FriRemainderMaxDegree: 31,
	}
}

// Acceptable reports whether got matches the one accepted parameter set,
// mirroring winterfell's AcceptableOptions::Option check.
func Acceptable(got ProofOptions) bool {
	return got == DefaultProofOptions()
}
