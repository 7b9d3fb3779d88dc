package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/uniques-xyz/go-uniques/journal"
	"github.com/uniques-xyz/go-uniques/ledger"
)

// journalStream is the stream all registry events append to when a journal
// is attached.
const journalStream = "registry"

// Registry is the asset registry state machine. It is not safe for
// concurrent use; callers apply one call at a time, which is also what makes
// deterministic replay possible.
type Registry struct {
	cfg    Config
	log    zerolog.Logger
	ledger *ledger.Ledger
	state  *state

	block  BlockNumber
	events []Event

	// signingKeys maps signer accounts to registered public keys for
	// presigned authorizations.
	signingKeys map[AccountID][]byte

	journal        journal.Store
	journalVersion int

	// batchDepth defers journal writes while a batch is open so a failed
	// batch leaves the journal untouched.
	batchDepth     int
	pendingJournal []Event
}

// New creates an empty registry backed by the given ledger.
func New(cfg Config, l *ledger.Ledger) *Registry {
	return &Registry{
		cfg:         cfg,
		log:         zerolog.Nop(),
		ledger:      l,
		state:       newState(),
		signingKeys: make(map[AccountID][]byte),
	}
}

// WithLogger sets the registry's logger and returns the registry.
func (r *Registry) WithLogger(log zerolog.Logger) *Registry {
	r.log = log
	return r
}

// Ledger returns the backing ledger.
func (r *Registry) Ledger() *ledger.Ledger {
	return r.ledger
}

// AttachJournal starts appending every emitted event to the store. The
// current stream version is read once so appends use optimistic concurrency.
func (r *Registry) AttachJournal(ctx context.Context, store journal.Store) error {
	version, err := store.StreamVersion(ctx, journalStream)
	if err != nil {
		return fmt.Errorf("attach journal: %w", err)
	}
	r.journal = store
	r.journalVersion = version
	return nil
}

// SetBlockNumber advances the registry clock. Deadlines and mint windows are
// evaluated against this value.
func (r *Registry) SetBlockNumber(block BlockNumber) {
	r.block = block
}

// CurrentBlock returns the registry clock.
func (r *Registry) CurrentBlock() BlockNumber {
	return r.block
}

// Events returns all events emitted since the last TakeEvents call.
func (r *Registry) Events() []Event {
	return r.events
}

// TakeEvents returns the emitted events and resets the buffer.
func (r *Registry) TakeEvents() []Event {
	events := r.events
	r.events = nil
	return events
}

// LastEvent returns the most recently emitted event, or nil.
func (r *Registry) LastEvent() Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// RegisterSigningKey associates a serialized public key with a signer
// account for presigned mint and attribute authorizations.
func (r *Registry) RegisterSigningKey(account AccountID, publicKey []byte) {
	r.signingKeys[account] = append([]byte(nil), publicKey...)
}

func (r *Registry) emit(ev Event) {
	r.events = append(r.events, ev)
	r.log.Debug().Str("event", ev.Name()).Uint64("block", uint64(r.block)).Msg("event emitted")
	if r.journal == nil {
		return
	}
	if r.batchDepth > 0 {
		r.pendingJournal = append(r.pendingJournal, ev)
		return
	}
	r.journalEvents(ev)
}

func (r *Registry) journalEvents(events ...Event) {
	records := make([]*journal.Event, 0, len(events))
	for _, ev := range events {
		record, err := journal.NewEvent(journalStream, ev.Name(), ev)
		if err != nil {
			r.log.Error().Err(err).Str("event", ev.Name()).Msg("journal encode failed")
			return
		}
		records = append(records, record)
	}
	version, err := r.journal.Append(context.Background(), journalStream, r.journalVersion, records)
	if err != nil {
		r.log.Error().Err(err).Msg("journal append failed")
		return
	}
	r.journalVersion = version
}

// isRoot reports whether origin is the configured root account.
func (r *Registry) isRoot(origin AccountID) bool {
	return r.cfg.Root != "" && origin == r.cfg.Root
}
