package anchor

import bolt "go.etcd.io/bbolt"

// InitializeParams seeds the program-wide Config PDA. The aggregator
// sequence and slot-range PDAs start zeroed; call InitState to
// (re)confirm that explicitly, mirroring the program's separate
// init_state instruction.
type InitializeParams struct {
	ZKSLMint         [32]byte
	Admin            [32]byte
	AggregatorPubkey [32]byte
	ChainID          uint64
}

// Initialize creates the Config PDA. It fails if Config already exists.
func (l *Ledger) Initialize(p InitializeParams) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketConfig).Get([]byte(singletonKey)) != nil {
			return anchorErr(ErrUnauthorized, "config already initialized")
		}
		cfg := Config{
			ZKSLMint:         p.ZKSLMint,
			Admin:            p.Admin,
			AggregatorPubkey: p.AggregatorPubkey,
			ChainID:          p.ChainID,
		}
		if err := l.putConfig(tx, cfg); err != nil {
			return err
		}
		if err := l.putAggregatorState(tx, AggregatorState{}); err != nil {
			return err
		}
		return l.putRangeState(tx, RangeState{})
	})
}

// InitState resets the aggregator sequence and slot-range PDAs to
// zero. It is a no-op on the Config PDA; separate from Initialize so
// the two can be retried independently if either PDA's creation fails
// partway through a deployment.
func (l *Ledger) InitState() error {
	return l.db.Update(func(tx *bolt.Tx) error {
		cfg, err := l.getConfig(tx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return anchorErr(ErrPaused, "init_state: program is paused")
		}
		if err := l.putAggregatorState(tx, AggregatorState{}); err != nil {
			return err
		}
		return l.putRangeState(tx, RangeState{})
	})
}

// Ping is a diagnostic no-op that only confirms the Config PDA exists.
func (l *Ledger) Ping() error {
	return l.db.View(func(tx *bolt.Tx) error {
		_, err := l.getConfig(tx)
		return err
	})
}

// ConfigPatch lists the Config fields update_config may replace. A nil
// field is left unchanged.
type ConfigPatch struct {
	AggregatorPubkey     *[32]byte
	NextAggregatorPubkey *[32]byte
	ActivationSeq        *uint64
	Paused               *bool
}

// UpdateConfig applies patch to the Config PDA. It is the only
// state-changing instruction accepted while the program is paused, and
// it must be signed by the current admin.
func (l *Ledger) UpdateConfig(admin [32]byte, patch ConfigPatch) (*ConfigUpdatedEvent, error) {
	var ev *ConfigUpdatedEvent
	err := l.db.Update(func(tx *bolt.Tx) error {
		cfg, err := l.getConfig(tx)
		if err != nil {
			return err
		}
		if cfg.Admin != admin {
			return anchorErr(ErrUnauthorized, "update_config: signer is not the admin")
		}
		if patch.AggregatorPubkey != nil {
			cfg.AggregatorPubkey = *patch.AggregatorPubkey
		}
		if patch.NextAggregatorPubkey != nil {
			cfg.NextAggregatorPubkey = *patch.NextAggregatorPubkey
		}
		if patch.ActivationSeq != nil {
			cfg.ActivationSeq = *patch.ActivationSeq
		}
		if patch.Paused != nil {
			cfg.Paused = *patch.Paused
		}
		if err := l.putConfig(tx, cfg); err != nil {
			return err
		}
		ev = &ConfigUpdatedEvent{Admin: admin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// allowedAggregatorKey returns whichever of AggregatorPubkey or
// NextAggregatorPubkey is in effect for seq, per the rotation rule:
// the next key takes over starting at cfg.ActivationSeq. An
// ActivationSeq of 0 means no rotation is scheduled, so the current key
// stays in effect for every seq.
func allowedAggregatorKey(cfg Config, seq uint64) [32]byte {
	if cfg.ActivationSeq != 0 && seq >= cfg.ActivationSeq {
		return cfg.NextAggregatorPubkey
	}
	return cfg.AggregatorPubkey
}
