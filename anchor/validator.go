package anchor

import bolt "go.etcd.io/bbolt"

var bucketEscrowBalances = []byte("escrow_balances_by_address")

// LockAmountBaseUnits is the fixed amount of zksl_mint base units a
// validator locks into its escrow account on registration, and
// receives back on unlock. The mint is expected to carry 9 decimals,
// so this is exactly 1 whole token.
const LockAmountBaseUnits = 1_000_000_000

func (l *Ledger) getEscrowBalance(tx *bolt.Tx, addr [32]byte) uint64 {
	v := tx.Bucket(bucketEscrowBalances).Get(addr[:])
	if v == nil {
		return 0
	}
	var bal uint64
	for i := 0; i < 8; i++ {
		bal |= uint64(v[i]) << (8 * uint(i))
	}
	return bal
}

func (l *Ledger) putEscrowBalance(tx *bolt.Tx, addr [32]byte, bal uint64) error {
	v := make([]byte, 8)
	for i := 0; i < 8; i++ {
		v[i] = byte(bal >> (8 * uint(i)))
	}
	return tx.Bucket(bucketEscrowBalances).Put(addr[:], v)
}

// RegisterValidator locks LockAmountBaseUnits of zksl_mint into the
// validator's escrow PDA and creates its ValidatorRecord.
func (l *Ledger) RegisterValidator(validatorPubkey, mint [32]byte, timestamp int64) (*ValidatorRecord, error) {
	var out ValidatorRecord
	err := l.db.Update(func(tx *bolt.Tx) error {
		cfg, err := l.getConfig(tx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return anchorErr(ErrPaused, "register_validator: program is paused")
		}
		if mint != cfg.ZKSLMint {
			return anchorErr(ErrInvalidMint, "register_validator: wrong mint")
		}
		if existing, found, err := l.getValidator(tx, validatorPubkey); err != nil {
			return err
		} else if found && existing.Status == ValidatorStatusActive {
			return anchorErr(ErrAlreadyRegistered, "register_validator: validator already active")
		}

		escrow := escrowAddress(validatorPubkey)
		bal := l.getEscrowBalance(tx, escrow)
		if err := l.putEscrowBalance(tx, escrow, bal+LockAmountBaseUnits); err != nil {
			return err
		}

		rec := ValidatorRecord{
			ValidatorPubkey:  validatorPubkey,
			LockTokenAccount: escrow,
			LockTimestamp:    timestamp,
			Status:           ValidatorStatusActive,
		}
		if err := l.putValidator(tx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UnlockValidator releases a registered validator's escrowed stake
// and marks its record unlocked.
func (l *Ledger) UnlockValidator(validatorPubkey [32]byte) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		cfg, err := l.getConfig(tx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return anchorErr(ErrPaused, "unlock_validator: program is paused")
		}
		rec, found, err := l.getValidator(tx, validatorPubkey)
		if err != nil {
			return err
		}
		if !found {
			return anchorErr(ErrNotRegistered, "unlock_validator: no record for validator")
		}
		if rec.Status != ValidatorStatusActive {
			return anchorErr(ErrStatusNotActive, "unlock_validator: record is not active")
		}
		escrow := escrowAddress(validatorPubkey)
		if rec.LockTokenAccount != escrow {
			return anchorErr(ErrEscrowMismatch, "unlock_validator: escrow account mismatch")
		}
		bal := l.getEscrowBalance(tx, escrow)
		if bal < LockAmountBaseUnits {
			return anchorErr(ErrMathOverflow, "unlock_validator: escrow balance underflow")
		}
		if err := l.putEscrowBalance(tx, escrow, bal-LockAmountBaseUnits); err != nil {
			return err
		}
		rec.Status = ValidatorStatusUnlocked
		return l.putValidator(tx, rec)
	})
}
