package crypto

import "testing"

func TestSignAndVerifyRoundTrips(t *testing.T) {
	signer, err := GenerateStdEd25519Signer()
	if err != nil {
		t.Fatalf("GenerateStdEd25519Signer failed: %v", err)
	}
	msg := []byte("hello anchor")
	sig := signer.Sign(msg)

	var verifier StdEd25519Verifier
	if !verifier.Verify(signer.PublicKey(), msg, sig) {
		t.Fatalf("Verify rejected a signature produced by Sign")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	signer, err := GenerateStdEd25519Signer()
	if err != nil {
		t.Fatalf("GenerateStdEd25519Signer failed: %v", err)
	}
	sig := signer.Sign([]byte("original"))

	var verifier StdEd25519Verifier
	if verifier.Verify(signer.PublicKey(), []byte("tampered"), sig) {
		t.Fatalf("Verify accepted a signature over the wrong message")
	}
}

func TestDevKeyDeriverIsDeterministic(t *testing.T) {
	var d DevKeyDeriver
	a := d.Derive("aggregator-dev-1")
	b := d.Derive("aggregator-dev-1")
	if a.PublicKey() != b.PublicKey() {
		t.Fatalf("expected the same label to derive the same key")
	}
	c := d.Derive("aggregator-dev-2")
	if a.PublicKey() == c.PublicKey() {
		t.Fatalf("expected different labels to derive different keys")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer, err := GenerateStdEd25519Signer()
	if err != nil {
		t.Fatalf("GenerateStdEd25519Signer failed: %v", err)
	}
	other, err := GenerateStdEd25519Signer()
	if err != nil {
		t.Fatalf("GenerateStdEd25519Signer failed: %v", err)
	}
	msg := []byte("hello anchor")
	sig := signer.Sign(msg)

	var verifier StdEd25519Verifier
	if verifier.Verify(other.PublicKey(), msg, sig) {
		t.Fatalf("Verify accepted a signature checked against the wrong public key")
	}
}
