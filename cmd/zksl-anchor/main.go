// Command zksl-anchor drives the on-chain anchor state machine from a
// single JSON request read on stdin, against a bbolt ledger file on
// disk, and writes a JSON response to stdout. It is a local simulator
// for the validator-lock program's instructions, not a validator or
// RPC client.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"zksl.dev/core/anchor"
	"zksl.dev/core/anchor/ed25519"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type instructionJSON struct {
	ProgramIDHex string `json:"program_id_hex"`
	DataHex      string `json:"data_hex,omitempty"`
}

type request struct {
	Op string `json:"op"`

	ZKSLMintHex         string `json:"zksl_mint_hex,omitempty"`
	AdminHex            string `json:"admin_hex,omitempty"`
	AggregatorPubkeyHex string `json:"aggregator_pubkey_hex,omitempty"`
	ChainID             uint64 `json:"chain_id,omitempty"`

	ValidatorPubkeyHex string `json:"validator_pubkey_hex,omitempty"`
	MintHex            string `json:"mint_hex,omitempty"`
	Timestamp          int64  `json:"timestamp,omitempty"`

	SignerHex               string  `json:"signer_hex,omitempty"`
	NextAggregatorPubkeyHex string  `json:"next_aggregator_pubkey_hex,omitempty"`
	ActivationSeq           *uint64 `json:"activation_seq,omitempty"`
	Paused                  *bool   `json:"paused,omitempty"`

	ArtifactIDHex      string `json:"artifact_id_hex,omitempty"`
	ProofHashHex       string `json:"proof_hash_hex,omitempty"`
	Seq                uint64 `json:"seq,omitempty"`
	StartSlot          uint64 `json:"start_slot,omitempty"`
	EndSlot            uint64 `json:"end_slot,omitempty"`
	ArtifactLen        uint32 `json:"artifact_len,omitempty"`
	StateRootBeforeHex string `json:"state_root_before_hex,omitempty"`
	StateRootAfterHex  string `json:"state_root_after_hex,omitempty"`
	DSHashHex          string `json:"ds_hash_hex,omitempty"`
	Now                int64  `json:"now,omitempty"`

	Instructions []instructionJSON `json:"instructions,omitempty"`
	CurrentIndex int               `json:"current_index,omitempty"`
}

type response struct {
	Ok  bool   `json:"ok"`
	Err string `json:"err,omitempty"`

	SeqOut   uint64 `json:"seq,omitempty"`
	StartOut uint64 `json:"start_slot,omitempty"`
	EndOut   uint64 `json:"end_slot,omitempty"`
}

func writeResp(w io.Writer, resp response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	if s == "" {
		return out, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes of hex, got %q", s)
	}
	copy(out[:], b)
	return out, nil
}

func decodeHex16(s string) ([16]byte, error) {
	var out [16]byte
	if s == "" {
		return out, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 16 {
		return out, fmt.Errorf("expected 16 bytes of hex, got %q", s)
	}
	copy(out[:], b)
	return out, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("zksl-anchor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ledgerPath := fs.String("ledger", "", "path to the bbolt ledger file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *ledgerPath == "" {
		fmt.Fprintln(stderr, "zksl-anchor: -ledger is required")
		return 2
	}

	var req request
	if err := json.NewDecoder(stdin).Decode(&req); err != nil {
		writeResp(stdout, response{Ok: false, Err: fmt.Sprintf("bad request: %v", err)})
		return 1
	}

	programID, err := anchor.ResolveProgramID()
	if err != nil {
		writeResp(stdout, response{Ok: false, Err: err.Error()})
		return 1
	}

	ledger, err := anchor.OpenLedger(*ledgerPath)
	if err != nil {
		writeResp(stdout, response{Ok: false, Err: err.Error()})
		return 1
	}
	defer func() { _ = ledger.Close() }()
	ledger.SetProgramID(programID)

	if err := dispatch(ledger, req, stdout); err != nil {
		writeResp(stdout, response{Ok: false, Err: err.Error()})
		return 1
	}
	return 0
}

func dispatch(ledger *anchor.Ledger, req request, stdout io.Writer) error {
	switch req.Op {
	case "initialize":
		mint, err := decodeHex32(req.ZKSLMintHex)
		if err != nil {
			return err
		}
		admin, err := decodeHex32(req.AdminHex)
		if err != nil {
			return err
		}
		aggregator, err := decodeHex32(req.AggregatorPubkeyHex)
		if err != nil {
			return err
		}
		if err := ledger.Initialize(anchor.InitializeParams{
			ZKSLMint: mint, Admin: admin, AggregatorPubkey: aggregator, ChainID: req.ChainID,
		}); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "init_state":
		if err := ledger.InitState(); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "ping":
		if err := ledger.Ping(); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "update_config":
		signer, err := decodeHex32(req.SignerHex)
		if err != nil {
			return err
		}
		var patch anchor.ConfigPatch
		if req.AggregatorPubkeyHex != "" {
			v, err := decodeHex32(req.AggregatorPubkeyHex)
			if err != nil {
				return err
			}
			patch.AggregatorPubkey = &v
		}
		if req.NextAggregatorPubkeyHex != "" {
			v, err := decodeHex32(req.NextAggregatorPubkeyHex)
			if err != nil {
				return err
			}
			patch.NextAggregatorPubkey = &v
		}
		patch.ActivationSeq = req.ActivationSeq
		patch.Paused = req.Paused
		if _, err := ledger.UpdateConfig(signer, patch); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "register_validator":
		validator, err := decodeHex32(req.ValidatorPubkeyHex)
		if err != nil {
			return err
		}
		mint, err := decodeHex32(req.MintHex)
		if err != nil {
			return err
		}
		if _, err := ledger.RegisterValidator(validator, mint, req.Timestamp); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "unlock_validator":
		validator, err := decodeHex32(req.ValidatorPubkeyHex)
		if err != nil {
			return err
		}
		if err := ledger.UnlockValidator(validator); err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true})
		return nil

	case "anchor_proof":
		artifactID, err := decodeHex16(req.ArtifactIDHex)
		if err != nil {
			return err
		}
		proofHash, err := decodeHex32(req.ProofHashHex)
		if err != nil {
			return err
		}
		stateBefore, err := decodeHex32(req.StateRootBeforeHex)
		if err != nil {
			return err
		}
		stateAfter, err := decodeHex32(req.StateRootAfterHex)
		if err != nil {
			return err
		}
		aggregatorPubkey, err := decodeHex32(req.AggregatorPubkeyHex)
		if err != nil {
			return err
		}
		dsHash, err := decodeHex32(req.DSHashHex)
		if err != nil {
			return err
		}
		instructions := make([]ed25519.Instruction, 0, len(req.Instructions))
		for _, ix := range req.Instructions {
			pid, err := decodeHex32(ix.ProgramIDHex)
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(ix.DataHex)
			if err != nil {
				return fmt.Errorf("bad instruction data hex: %w", err)
			}
			instructions = append(instructions, ed25519.Instruction{ProgramID: pid, Data: data})
		}

		ev, err := ledger.AnchorProof(anchor.AnchorProofRequest{
			ArtifactID:       artifactID,
			ProofHash:        proofHash,
			Seq:              req.Seq,
			StartSlot:        req.StartSlot,
			EndSlot:          req.EndSlot,
			ArtifactLen:      req.ArtifactLen,
			StateRootBefore:  stateBefore,
			StateRootAfter:   stateAfter,
			AggregatorPubkey: aggregatorPubkey,
			Timestamp:        req.Timestamp,
			DSHash:           dsHash,
		}, instructions, req.CurrentIndex, req.Now)
		if err != nil {
			return err
		}
		writeResp(stdout, response{Ok: true, SeqOut: ev.Seq, StartOut: ev.StartSlot, EndOut: ev.EndSlot})
		return nil

	default:
		return fmt.Errorf("unknown op %q", req.Op)
	}
}
