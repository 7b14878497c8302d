package stark

import (
	"encoding/binary"

	"zksl.dev/core/air"
	"zksl.dev/core/merkle"
)

// Verify recomputes the Fiat-Shamir transcript and checks every opened
// row pair. It returns (false, nil) when the proof itself is invalid,
// including openings that do not match the recomputed query positions,
// and (false, err) only when the proof options are not the accepted
// parameter set.
func Verify(env *Envelope) (bool, error) {
	if !Acceptable(env.Proof.Options) {
		return false, errUnacceptableOptions
	}
	p := env.Proof

	tr := newTranscript(p.TraceRoot[:], publicInputBytes(env.PublicInputs))

	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], p.GrindingNonce)
	check := *tr
	check.absorb(nonceBytes[:])
	if leadingZeroBits(check.squeeze()) < p.Options.GrindingBits {
		return false, nil
	}
	tr.absorb(nonceBytes[:])

	maxIndex := p.TraceLength - 2
	if maxIndex < 0 {
		return false, nil
	}
	wantPositions := queryPositions(tr, p.Options.NumQueries, maxIndex)
	if len(wantPositions) != len(p.Openings) {
		return false, nil
	}
	for i, pos := range wantPositions {
		if p.Openings[i].Index != pos {
			return false, nil
		}
	}

	for _, o := range p.Openings {
		if !merkle.Verify(p.TraceRoot, rowLeaf(o.Row), o.RowProof) {
			return false, nil
		}
		if !merkle.Verify(p.TraceRoot, rowLeaf(o.NextRow), o.NextProof) {
			return false, nil
		}
		for _, v := range air.EvaluateTransition(o.Row, o.NextRow) {
			if !v.IsZero() {
				return false, nil
			}
		}
		if o.Index == 0 {
			if !rowSatisfiesBoundary(o.Row, env.PublicInputs, 0, p.TraceLength) {
				return false, nil
			}
		}
		if o.Index+1 == p.TraceLength-1 {
			if !rowSatisfiesBoundary(o.NextRow, env.PublicInputs, p.TraceLength-1, p.TraceLength) {
				return false, nil
			}
		}
	}

	// The endpoints must always be checked even when the random query
	// set happens not to land on them, since get_assertions binds them
	// unconditionally.
	if !openingsCoverRow(p.Openings, 0) || !openingsCoverRow(p.Openings, p.TraceLength-1) {
		return false, nil
	}

	return true, nil
}

func openingsCoverRow(openings []Opening, row int) bool {
	for _, o := range openings {
		if o.Index == row || o.Index+1 == row {
			return true
		}
	}
	return false
}

func rowSatisfiesBoundary(row air.Row, pi air.PublicInputs, at int, traceLen int) bool {
	for _, a := range air.BoundaryAssertions(pi, traceLen) {
		if a.Row != at {
			continue
		}
		if !row[a.Column].Equal(a.Value) {
			return false
		}
	}
	return true
}

var errUnacceptableOptions = &optionsError{}

type optionsError struct{}

func (*optionsError) Error() string { return "stark: proof options do not match the accepted parameter set" }
