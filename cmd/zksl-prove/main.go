// Command zksl-prove builds a validator-state STARK proof over a window
// of slot witnesses read from a JSON file, and writes the encoded proof
// envelope to stdout or a file.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"zksl.dev/core/air"
	"zksl.dev/core/stark"
	"zksl.dev/core/trace"
	"zksl.dev/core/witness"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type witnessFileEntry struct {
	Slot         uint64                `json:"slot"`
	VoteAccounts []witness.VoteAccount `json:"vote_accounts"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("zksl-prove", flag.ContinueOnError)
	fs.SetOutput(stderr)
	witnessesPath := fs.String("witnesses", "", "path to a JSON array of {slot, vote_accounts} entries")
	blockhashHex := fs.String("blockhash", "", "32-byte hex blockhash bound into the proof's public inputs")
	outPath := fs.String("out", "", "path to write the base64-encoded proof envelope (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *witnessesPath == "" {
		fmt.Fprintln(stderr, "zksl-prove: -witnesses is required")
		return 2
	}

	raw, err := os.ReadFile(*witnessesPath)
	if err != nil {
		fmt.Fprintf(stderr, "zksl-prove: read witnesses file: %v\n", err)
		return 1
	}
	var entries []witnessFileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		fmt.Fprintf(stderr, "zksl-prove: parse witnesses file: %v\n", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Fprintln(stderr, "zksl-prove: witnesses file has no entries")
		return 1
	}

	slotWitnesses := make([]witness.SlotWitness, 0, len(entries))
	for _, e := range entries {
		slotWitnesses = append(slotWitnesses, witness.BuildSlotWitness(e.Slot, e.VoteAccounts))
	}
	if err := witness.ValidateWindow(slotWitnesses); err != nil {
		fmt.Fprintf(stderr, "zksl-prove: invalid witness window: %v\n", err)
		return 1
	}

	var blockhash [32]byte
	if *blockhashHex != "" {
		b, err := hex.DecodeString(*blockhashHex)
		if err != nil || len(b) != 32 {
			fmt.Fprintln(stderr, "zksl-prove: -blockhash must be 32 bytes of hex")
			return 2
		}
		copy(blockhash[:], b)
	}

	pi := air.PublicInputs{
		StartSlot:        slotWitnesses[0].Slot,
		EndSlot:          slotWitnesses[len(slotWitnesses)-1].Slot,
		InitialStateRoot: slotWitnesses[0].StateRoot,
		FinalStateRoot:   trace.ChainRoot(slotWitnesses[0].StateRoot, len(slotWitnesses)),
		Blockhash:        blockhash,
	}

	env, err := stark.Prove(slotWitnesses, pi)
	if err != nil {
		fmt.Fprintf(stderr, "zksl-prove: prove: %v\n", err)
		return 1
	}
	encoded := stark.EncodeEnvelope(env)

	if *outPath == "" {
		fmt.Fprintln(stdout, encoded)
		return 0
	}
	if err := os.WriteFile(*outPath, []byte(encoded), 0o644); err != nil {
		fmt.Fprintf(stderr, "zksl-prove: write output: %v\n", err)
		return 1
	}
	return 0
}
