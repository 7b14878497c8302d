package witness

import "context"

// Source fetches the slot witnesses needed to prove a window. A real
// implementation talks to a validator RPC endpoint; fetching is out of
// scope here, so only the interface and a static test double are provided.
type Source interface {
	FetchWindow(ctx context.Context, start, end uint64) ([]SlotWitness, error)
}

// StaticSource serves a fixed, pre-built set of witnesses. It is meant
// for tests and for offline proving from a witness file.
type StaticSource struct {
	Witnesses []SlotWitness
}

func (s *StaticSource) FetchWindow(_ context.Context, start, end uint64) ([]SlotWitness, error) {
	var out []SlotWitness
	for _, w := range s.Witnesses {
		if w.Slot >= start && w.Slot <= end {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, witnessErr(ErrEmptyWindow, "no witnesses in requested window")
	}
	return out, nil
}
