package anchor

import "fmt"

// ErrorCode enumerates every failure the anchor state machine can
// return, each carrying a stable numeric code starting at 6000.
type ErrorCode int

const (
	ErrInvalidMint ErrorCode = 6000 + iota
	ErrInvalidLockAmount
	ErrAlreadyRegistered
	ErrNotRegistered
	ErrEscrowMismatch
	ErrInvalidSignature
	ErrAggregatorMismatch
	ErrProofAlreadyAnchored
	ErrStatusNotActive
	ErrMathOverflow
	ErrPaused
	ErrUnauthorized
	ErrNonMonotonicSeq
	ErrRangeOverlap
	ErrClockSkew
	ErrBadEd25519Order
	ErrBadDomainSeparation
	ErrInsufficientBudget
)

var errorNames = map[ErrorCode]string{
	ErrInvalidMint:          "InvalidMint",
	ErrInvalidLockAmount:    "InvalidLockAmount",
	ErrAlreadyRegistered:    "AlreadyRegistered",
	ErrNotRegistered:        "NotRegistered",
	ErrEscrowMismatch:       "EscrowMismatch",
	ErrInvalidSignature:     "InvalidSignature",
	ErrAggregatorMismatch:   "AggregatorMismatch",
	ErrProofAlreadyAnchored: "ProofAlreadyAnchored",
	ErrStatusNotActive:      "StatusNotActive",
	ErrMathOverflow:         "MathOverflow",
	ErrPaused:               "Paused",
	ErrUnauthorized:         "Unauthorized",
	ErrNonMonotonicSeq:      "NonMonotonicSeq",
	ErrRangeOverlap:         "RangeOverlap",
	ErrClockSkew:            "ClockSkew",
	ErrBadEd25519Order:      "BadEd25519Order",
	ErrBadDomainSeparation:  "BadDomainSeparation",
	ErrInsufficientBudget:   "InsufficientBudget",
}

func (c ErrorCode) String() string {
	if name, ok := errorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the anchor program's error type: a stable numeric code plus
// a human-readable message for CLI/log surfaces.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return fmt.Sprintf("%d %s", int(e.Code), e.Code)
	}
	return fmt.Sprintf("%d %s: %s", int(e.Code), e.Code, e.Msg)
}

func anchorErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
