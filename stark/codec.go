package stark

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"zksl.dev/core/air"
	"zksl.dev/core/field"
	"zksl.dev/core/merkle"
)

func elementFromLE(b []byte) field.Element {
	return field.New(binary.LittleEndian.Uint64(b))
}

// EncodeEnvelope serializes env into a self-contained base64 string, the
// artifact a zksl-anchor client attaches to an anchor_proof instruction.
func EncodeEnvelope(env *Envelope) string {
	var out []byte
	out = appendU64(out, env.PublicInputs.StartSlot)
	out = appendU64(out, env.PublicInputs.EndSlot)
	out = append(out, env.PublicInputs.InitialStateRoot[:]...)
	out = append(out, env.PublicInputs.FinalStateRoot[:]...)
	out = append(out, env.PublicInputs.Blockhash[:]...)

	p := env.Proof
	out = appendU32(out, uint32(p.Options.NumQueries))
	out = appendU32(out, uint32(p.Options.BlowupFactor))
	out = appendU32(out, uint32(p.Options.GrindingBits))
	out = appendU32(out, uint32(p.Options.FieldExtensionDegree))
	out = appendU32(out, uint32(p.Options.FriFoldingFactor))
	out = appendU32(out, uint32(p.Options.FriRemainderMaxDegree))
	out = append(out, p.TraceRoot[:]...)
	out = appendU64(out, uint64(p.TraceLength))
	out = appendU64(out, p.GrindingNonce)

	out = appendU32(out, uint32(len(p.Openings)))
	for _, o := range p.Openings {
		out = appendOpening(out, o)
	}

	return base64.StdEncoding.EncodeToString(out)
}

// DecodeEnvelope parses a string produced by EncodeEnvelope.
func DecodeEnvelope(s string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("stark: decoding envelope: %w", err)
	}
	r := &reader{buf: raw}

	var pi air.PublicInputs
	pi.StartSlot = r.u64()
	pi.EndSlot = r.u64()
	copy(pi.InitialStateRoot[:], r.bytes(32))
	copy(pi.FinalStateRoot[:], r.bytes(32))
	copy(pi.Blockhash[:], r.bytes(32))

	var p Proof
	p.Options.NumQueries = int(r.u32())
	p.Options.BlowupFactor = int(r.u32())
	p.Options.GrindingBits = uint(r.u32())
	p.Options.FieldExtensionDegree = int(r.u32())
	p.Options.FriFoldingFactor = int(r.u32())
	p.Options.FriRemainderMaxDegree = int(r.u32())
	copy(p.TraceRoot[:], r.bytes(32))
	p.TraceLength = int(r.u64())
	p.GrindingNonce = r.u64()

	n := int(r.u32())
	p.Openings = make([]Opening, n)
	for i := 0; i < n; i++ {
		p.Openings[i] = r.opening()
	}
	if r.err != nil {
		return nil, r.err
	}
	return &Envelope{Proof: p, PublicInputs: pi}, nil
}

func appendOpening(out []byte, o Opening) []byte {
	out = appendU32(out, uint32(o.Index))
	out = appendRow(out, o.Row)
	out = appendProof(out, o.RowProof)
	out = appendRow(out, o.NextRow)
	out = appendProof(out, o.NextProof)
	return out
}

func appendRow(out []byte, row air.Row) []byte {
	return append(out, rowBytes(row)...)
}

func appendProof(out []byte, p merkle.Proof) []byte {
	out = appendU32(out, uint32(p.LeafIndex))
	out = appendU32(out, uint32(len(p.Siblings)))
	for _, s := range p.Siblings {
		out = append(out, s[:]...)
	}
	return out
}

func appendU32(out []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendU64(out []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(out, tmp[:]...)
}

type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.buf) {
		r.err = fmt.Errorf("stark: envelope truncated at offset %d", r.pos)
		return make([]byte, n)
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *reader) u32() uint32 {
	return binary.LittleEndian.Uint32(r.bytes(4))
}

func (r *reader) u64() uint64 {
	return binary.LittleEndian.Uint64(r.bytes(8))
}

func (r *reader) row() air.Row {
	var row air.Row
	b := r.bytes(air.NumCols * 8)
	for i := 0; i < air.NumCols; i++ {
		row[i] = elementFromLE(b[i*8 : i*8+8])
	}
	return row
}

func (r *reader) proof() merkle.Proof {
	leafIndex := int(r.u32())
	n := int(r.u32())
	siblings := make([][32]byte, n)
	for i := 0; i < n; i++ {
		copy(siblings[i][:], r.bytes(32))
	}
	return merkle.Proof{LeafIndex: leafIndex, Siblings: siblings}
}

func (r *reader) opening() Opening {
	index := int(r.u32())
	row := r.row()
	rowProof := r.proof()
	nextRow := r.row()
	nextProof := r.proof()
	return Opening{Index: index, Row: row, RowProof: rowProof, NextRow: nextRow, NextProof: nextProof}
}
