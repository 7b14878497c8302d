package air

import "zksl.dev/core/field"

// PublicInputs binds a proof to the slot window and state roots it
// attests to, matching original_source/prover/src/north_star.rs::PublicInputs.
type PublicInputs struct {
	StartSlot        uint64
	EndSlot          uint64
	InitialStateRoot [32]byte
	FinalStateRoot   [32]byte
	Blockhash        [32]byte
}

// ColumnAssertion pins column at row to value.
type ColumnAssertion struct {
	Column int
	Row    int
	Value  field.Element
}

// BoundaryAssertions returns the fixed set of trace-boundary checks the
// first and last rows of a trace of the given length must satisfy.
func BoundaryAssertions(pi PublicInputs, traceLen int) []ColumnAssertion {
	lastStep := traceLen - 1
	out := []ColumnAssertion{
		{Column: ColSlot, Row: 0, Value: field.New(pi.StartSlot)},
		{Column: ColSlot, Row: lastStep, Value: field.New(pi.EndSlot)},
	}

	initial := field.BytesToElements(pi.InitialStateRoot)
	for i := 0; i < field.RootWidth; i++ {
		out = append(out, ColumnAssertion{Column: HashStateStart + i, Row: 0, Value: initial[i]})
	}

	final := field.BytesToElements(pi.FinalStateRoot)
	for i := 0; i < field.RootWidth; i++ {
		out = append(out, ColumnAssertion{Column: HashStateStart + i, Row: lastStep, Value: final[i]})
	}

	return out
}

// CheckBoundaryAssertions reports whether every assertion holds against rows.
func CheckBoundaryAssertions(pi PublicInputs, rows []Row) bool {
	for _, a := range BoundaryAssertions(pi, len(rows)) {
		if a.Row < 0 || a.Row >= len(rows) {
			return false
		}
		if !rows[a.Row][a.Column].Equal(a.Value) {
			return false
		}
	}
	return true
}
