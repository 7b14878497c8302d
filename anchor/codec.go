package anchor

import "encoding/binary"

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func encodeConfig(c Config) []byte {
	out := make([]byte, ConfigSize)
	pos := 0
	pos += copy(out[pos:], c.ZKSLMint[:])
	pos += copy(out[pos:], c.Admin[:])
	pos += copy(out[pos:], c.AggregatorPubkey[:])
	pos += copy(out[pos:], c.NextAggregatorPubkey[:])
	binary.LittleEndian.PutUint64(out[pos:], c.ActivationSeq)
	pos += 8
	binary.LittleEndian.PutUint64(out[pos:], c.ChainID)
	pos += 8
	out[pos] = boolByte(c.Paused)
	pos++
	out[pos] = c.Bump
	pos++
	pos += copy(out[pos:], c.Reserved[:])
	return out
}

func decodeConfig(b []byte) (Config, error) {
	if len(b) != ConfigSize {
		return Config{}, anchorErr(ErrInvalidMint, "config: truncated account")
	}
	var c Config
	pos := 0
	copy(c.ZKSLMint[:], b[pos:pos+32])
	pos += 32
	copy(c.Admin[:], b[pos:pos+32])
	pos += 32
	copy(c.AggregatorPubkey[:], b[pos:pos+32])
	pos += 32
	copy(c.NextAggregatorPubkey[:], b[pos:pos+32])
	pos += 32
	c.ActivationSeq = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	c.ChainID = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	c.Paused = b[pos] != 0
	pos++
	c.Bump = b[pos]
	pos++
	copy(c.Reserved[:], b[pos:])
	return c, nil
}

func encodeValidatorRecord(v ValidatorRecord) []byte {
	out := make([]byte, ValidatorRecordSize)
	pos := 0
	pos += copy(out[pos:], v.ValidatorPubkey[:])
	pos += copy(out[pos:], v.LockTokenAccount[:])
	binary.LittleEndian.PutUint64(out[pos:], uint64(v.LockTimestamp))
	pos += 8
	out[pos] = byte(v.Status)
	pos++
	binary.LittleEndian.PutUint64(out[pos:], v.NumAccepts)
	pos += 8
	pos += copy(out[pos:], v.Reserved[:])
	return out
}

func decodeValidatorRecord(b []byte) (ValidatorRecord, error) {
	if len(b) != ValidatorRecordSize {
		return ValidatorRecord{}, anchorErr(ErrNotRegistered, "validator record: truncated account")
	}
	var v ValidatorRecord
	pos := 0
	copy(v.ValidatorPubkey[:], b[pos:pos+32])
	pos += 32
	copy(v.LockTokenAccount[:], b[pos:pos+32])
	pos += 32
	v.LockTimestamp = int64(binary.LittleEndian.Uint64(b[pos:]))
	pos += 8
	v.Status = ValidatorStatus(b[pos])
	pos++
	v.NumAccepts = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	copy(v.Reserved[:], b[pos:])
	return v, nil
}

func encodeAggregatorState(s AggregatorState) []byte {
	out := make([]byte, AggregatorStateSize)
	binary.LittleEndian.PutUint64(out[0:], s.LastSeq)
	copy(out[8:], s.Reserved[:])
	return out
}

func decodeAggregatorState(b []byte) (AggregatorState, error) {
	if len(b) != AggregatorStateSize {
		return AggregatorState{}, anchorErr(ErrNonMonotonicSeq, "aggregator state: truncated account")
	}
	var s AggregatorState
	s.LastSeq = binary.LittleEndian.Uint64(b[0:])
	copy(s.Reserved[:], b[8:])
	return s, nil
}

func encodeRangeState(s RangeState) []byte {
	out := make([]byte, RangeStateSize)
	binary.LittleEndian.PutUint64(out[0:], s.LastEndSlot)
	copy(out[8:], s.Reserved[:])
	return out
}

func decodeRangeState(b []byte) (RangeState, error) {
	if len(b) != RangeStateSize {
		return RangeState{}, anchorErr(ErrRangeOverlap, "range state: truncated account")
	}
	var s RangeState
	s.LastEndSlot = binary.LittleEndian.Uint64(b[0:])
	copy(s.Reserved[:], b[8:])
	return s, nil
}

func encodeProofRecord(p ProofRecord) []byte {
	out := make([]byte, ProofRecordSize)
	pos := 0
	pos += copy(out[pos:], p.ProofHash[:])
	binary.LittleEndian.PutUint64(out[pos:], p.Seq)
	pos += 8
	binary.LittleEndian.PutUint64(out[pos:], p.StartSlot)
	pos += 8
	binary.LittleEndian.PutUint64(out[pos:], p.EndSlot)
	pos += 8
	pos += copy(out[pos:], p.StateRootBefore[:])
	pos += copy(out[pos:], p.StateRootAfter[:])
	pos += copy(out[pos:], p.AggregatorPubkey[:])
	binary.LittleEndian.PutUint64(out[pos:], uint64(p.Timestamp))
	pos += 8
	pos += copy(out[pos:], p.DSHash[:])
	pos += copy(out[pos:], p.ArtifactID[:])
	binary.LittleEndian.PutUint32(out[pos:], p.ArtifactLen)
	pos += 4
	pos += copy(out[pos:], p.Reserved[:])
	return out
}

func decodeProofRecord(b []byte) (ProofRecord, error) {
	if len(b) != ProofRecordSize {
		return ProofRecord{}, anchorErr(ErrProofAlreadyAnchored, "proof record: truncated account")
	}
	var p ProofRecord
	pos := 0
	copy(p.ProofHash[:], b[pos:pos+32])
	pos += 32
	p.Seq = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	p.StartSlot = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	p.EndSlot = binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	copy(p.StateRootBefore[:], b[pos:pos+32])
	pos += 32
	copy(p.StateRootAfter[:], b[pos:pos+32])
	pos += 32
	copy(p.AggregatorPubkey[:], b[pos:pos+32])
	pos += 32
	p.Timestamp = int64(binary.LittleEndian.Uint64(b[pos:]))
	pos += 8
	copy(p.DSHash[:], b[pos:pos+32])
	pos += 32
	copy(p.ArtifactID[:], b[pos:pos+16])
	pos += 16
	p.ArtifactLen = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	copy(p.Reserved[:], b[pos:])
	return p, nil
}
