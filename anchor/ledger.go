package anchor

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketConfig          = []byte("config")
	bucketValidators      = []byte("validators_by_pubkey")
	bucketAggregatorState = []byte("aggregator_state")
	bucketRangeState      = []byte("range_state")
	bucketProofRecords    = []byte("proof_records_by_key")
)

var bucketsInOrder = [][]byte{
	bucketConfig,
	bucketValidators,
	bucketAggregatorState,
	bucketRangeState,
	bucketProofRecords,
	bucketEscrowBalances,
}

const singletonKey = "singleton"

// Ledger is the bbolt-backed account store the anchor instruction
// handlers operate on. Every instruction runs inside a single
// bolt.Update transaction, matching the runtime's own all-or-nothing
// account-mutation semantics.
type Ledger struct {
	db        *bolt.DB
	programID [32]byte
}

// SetProgramID records the deployed program's own address, used to
// bind every anchor_proof domain-separation hash. Call once after
// OpenLedger, typically with the value from ResolveProgramID.
func (l *Ledger) SetProgramID(id [32]byte) {
	l.programID = id
}

// OpenLedger opens (creating if absent) the bbolt file at path and
// ensures every account bucket exists.
func OpenLedger(path string) (*Ledger, error) {
	if path == "" {
		return nil, fmt.Errorf("anchor: ledger path required")
	}
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("anchor: open bbolt: %w", err)
	}
	l := &Ledger{db: bdb}
	if err := l.db.Update(func(tx *bolt.Tx) error {
		for _, b := range bucketsInOrder {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *Ledger) getConfig(tx *bolt.Tx) (Config, error) {
	v := tx.Bucket(bucketConfig).Get([]byte(singletonKey))
	if v == nil {
		return Config{}, anchorErr(ErrUnauthorized, "config not initialized")
	}
	return decodeConfig(v)
}

func (l *Ledger) putConfig(tx *bolt.Tx, c Config) error {
	return tx.Bucket(bucketConfig).Put([]byte(singletonKey), encodeConfig(c))
}

func (l *Ledger) getAggregatorState(tx *bolt.Tx) (AggregatorState, error) {
	v := tx.Bucket(bucketAggregatorState).Get([]byte(singletonKey))
	if v == nil {
		return AggregatorState{}, nil
	}
	return decodeAggregatorState(v)
}

func (l *Ledger) putAggregatorState(tx *bolt.Tx, s AggregatorState) error {
	return tx.Bucket(bucketAggregatorState).Put([]byte(singletonKey), encodeAggregatorState(s))
}

func (l *Ledger) getRangeState(tx *bolt.Tx) (RangeState, error) {
	v := tx.Bucket(bucketRangeState).Get([]byte(singletonKey))
	if v == nil {
		return RangeState{}, nil
	}
	return decodeRangeState(v)
}

func (l *Ledger) putRangeState(tx *bolt.Tx, s RangeState) error {
	return tx.Bucket(bucketRangeState).Put([]byte(singletonKey), encodeRangeState(s))
}

func (l *Ledger) getValidator(tx *bolt.Tx, pubkey [32]byte) (ValidatorRecord, bool, error) {
	v := tx.Bucket(bucketValidators).Get(pubkey[:])
	if v == nil {
		return ValidatorRecord{}, false, nil
	}
	rec, err := decodeValidatorRecord(v)
	return rec, true, err
}

func (l *Ledger) putValidator(tx *bolt.Tx, rec ValidatorRecord) error {
	return tx.Bucket(bucketValidators).Put(rec.ValidatorPubkey[:], encodeValidatorRecord(rec))
}

func proofRecordKey(proofHash [32]byte, seq uint64) []byte {
	key := make([]byte, 40)
	copy(key[:32], proofHash[:])
	for i := 0; i < 8; i++ {
		key[32+i] = byte(seq >> (8 * uint(i)))
	}
	return key
}

func (l *Ledger) getProofRecord(tx *bolt.Tx, proofHash [32]byte, seq uint64) (ProofRecord, bool, error) {
	v := tx.Bucket(bucketProofRecords).Get(proofRecordKey(proofHash, seq))
	if v == nil {
		return ProofRecord{}, false, nil
	}
	rec, err := decodeProofRecord(v)
	return rec, true, err
}

func (l *Ledger) putProofRecord(tx *bolt.Tx, rec ProofRecord) error {
	return tx.Bucket(bucketProofRecords).Put(proofRecordKey(rec.ProofHash, rec.Seq), encodeProofRecord(rec))
}

// Config returns the current program configuration.
func (l *Ledger) Config() (Config, error) {
	var out Config
	err := l.db.View(func(tx *bolt.Tx) error {
		c, err := l.getConfig(tx)
		out = c
		return err
	})
	return out, err
}

// Validator returns the validator record for pubkey, if registered.
func (l *Ledger) Validator(pubkey [32]byte) (ValidatorRecord, bool, error) {
	var out ValidatorRecord
	var ok bool
	err := l.db.View(func(tx *bolt.Tx) error {
		rec, found, err := l.getValidator(tx, pubkey)
		out, ok = rec, found
		return err
	})
	return out, ok, err
}

// AggregatorState returns the current sequence-tracking state.
func (l *Ledger) AggregatorState() (AggregatorState, error) {
	var out AggregatorState
	err := l.db.View(func(tx *bolt.Tx) error {
		s, err := l.getAggregatorState(tx)
		out = s
		return err
	})
	return out, err
}

// RangeState returns the current slot-window tracking state.
func (l *Ledger) RangeState() (RangeState, error) {
	var out RangeState
	err := l.db.View(func(tx *bolt.Tx) error {
		s, err := l.getRangeState(tx)
		out = s
		return err
	})
	return out, err
}

// ProofRecord looks up a previously anchored proof by its key.
func (l *Ledger) ProofRecord(proofHash [32]byte, seq uint64) (ProofRecord, bool, error) {
	var out ProofRecord
	var ok bool
	err := l.db.View(func(tx *bolt.Tx) error {
		rec, found, err := l.getProofRecord(tx, proofHash, seq)
		out, ok = rec, found
		return err
	})
	return out, ok, err
}
