package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"zksl.dev/core/stark"
)

func TestRunRequiresWitnessesFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("code=%d, want 2", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected usage error on stderr")
	}
}

func TestRunProducesVerifiableProof(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "witnesses.json")
	raw := `[
		{"slot":10,"vote_accounts":[{"VotePubkey":"a","NodePubkey":"na","ActivatedStake":100}]},
		{"slot":11,"vote_accounts":[{"VotePubkey":"a","NodePubkey":"na","ActivatedStake":150}]}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write witnesses file: %v", err)
	}

	outPath := filepath.Join(dir, "proof.txt")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-witnesses", path, "-out", outPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run failed: code=%d stderr=%s", code, stderr.String())
	}

	encoded, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read proof output: %v", err)
	}
	env, err := stark.DecodeEnvelope(string(encoded))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	ok, err := stark.Verify(env)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected the CLI-produced proof to verify")
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-witnesses", "/nonexistent/witnesses.json"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("code=%d, want 1", code)
	}
}
