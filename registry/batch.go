package registry

// BatchAll runs a sequence of registry calls as one atomic unit. The calls
// are closures so any mix of operations composes. On the first error the
// registry's state, the ledger and the event buffer all roll back to their
// pre-batch snapshots and the error is returned; journal writes happen only
// when the outermost batch commits.
func (r *Registry) BatchAll(calls ...func() error) error {
	stateSnapshot := r.state.clone()
	ledgerSnapshot := r.ledger.Clone()
	eventMark := len(r.events)
	journalMark := len(r.pendingJournal)

	r.batchDepth++
	var failed error
	for _, call := range calls {
		if err := call(); err != nil {
			failed = err
			break
		}
	}
	r.batchDepth--

	if failed != nil {
		r.state = stateSnapshot
		r.ledger.Restore(ledgerSnapshot)
		r.events = r.events[:eventMark]
		r.pendingJournal = r.pendingJournal[:journalMark]
		r.log.Debug().Err(failed).Msg("batch rolled back")
		return failed
	}
	if r.batchDepth == 0 && len(r.pendingJournal) > 0 {
		r.journalEvents(r.pendingJournal...)
		r.pendingJournal = nil
	}
	return nil
}
