// Package ledger tracks free and reserved balances for registry accounts.
// Reserved balance backs storage deposits: reserving moves funds out of the
// free balance and unreserving moves them back, so the two operations are
// exact inverses.
package ledger

import (
	"errors"
	"sort"

	"github.com/holiman/uint256"
)

var ErrInsufficientBalance = errors.New("ledger: insufficient balance")

type balance struct {
	free     uint256.Int
	reserved uint256.Int
}

// Ledger holds per-account balances. It is not safe for concurrent use; the
// registry applies calls sequentially.
type Ledger struct {
	accounts map[string]*balance
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]*balance)}
}

func (l *Ledger) account(id string) *balance {
	b, ok := l.accounts[id]
	if !ok {
		b = &balance{}
		l.accounts[id] = b
	}
	return b
}

// Deposit adds amount to the account's free balance.
func (l *Ledger) Deposit(account string, amount *uint256.Int) {
	b := l.account(account)
	b.free.Add(&b.free, amount)
}

// Withdraw removes amount from the account's free balance.
func (l *Ledger) Withdraw(account string, amount *uint256.Int) error {
	b := l.account(account)
	if b.free.Lt(amount) {
		return ErrInsufficientBalance
	}
	b.free.Sub(&b.free, amount)
	return nil
}

// Transfer moves amount between the free balances of two accounts.
func (l *Ledger) Transfer(from, to string, amount *uint256.Int) error {
	if err := l.Withdraw(from, amount); err != nil {
		return err
	}
	l.Deposit(to, amount)
	return nil
}

// Reserve moves amount from the account's free balance to its reserved
// balance.
func (l *Ledger) Reserve(account string, amount *uint256.Int) error {
	b := l.account(account)
	if b.free.Lt(amount) {
		return ErrInsufficientBalance
	}
	b.free.Sub(&b.free, amount)
	b.reserved.Add(&b.reserved, amount)
	return nil
}

// Unreserve moves amount from the account's reserved balance back to its
// free balance. It releases at most what is reserved and returns the amount
// actually moved.
func (l *Ledger) Unreserve(account string, amount *uint256.Int) *uint256.Int {
	b := l.account(account)
	released := new(uint256.Int).Set(amount)
	if b.reserved.Lt(released) {
		released.Set(&b.reserved)
	}
	b.reserved.Sub(&b.reserved, released)
	b.free.Add(&b.free, released)
	return released
}

// MoveReserved moves amount of reserved balance from one account to another,
// keeping it reserved at the destination.
func (l *Ledger) MoveReserved(from, to string, amount *uint256.Int) error {
	src := l.account(from)
	if src.reserved.Lt(amount) {
		return ErrInsufficientBalance
	}
	src.reserved.Sub(&src.reserved, amount)
	dst := l.account(to)
	dst.reserved.Add(&dst.reserved, amount)
	return nil
}

// Free returns a copy of the account's free balance.
func (l *Ledger) Free(account string) *uint256.Int {
	if b, ok := l.accounts[account]; ok {
		return new(uint256.Int).Set(&b.free)
	}
	return new(uint256.Int)
}

// Reserved returns a copy of the account's reserved balance.
func (l *Ledger) Reserved(account string) *uint256.Int {
	if b, ok := l.accounts[account]; ok {
		return new(uint256.Int).Set(&b.reserved)
	}
	return new(uint256.Int)
}

// Accounts returns the ids of all accounts with a balance entry, sorted.
func (l *Ledger) Accounts() []string {
	ids := make([]string, 0, len(l.accounts))
	for id := range l.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone creates a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	clone := NewLedger()
	for id, b := range l.accounts {
		cb := &balance{}
		cb.free.Set(&b.free)
		cb.reserved.Set(&b.reserved)
		clone.accounts[id] = cb
	}
	return clone
}

// Restore replaces the ledger's contents with those of a snapshot taken via
// Clone. The snapshot must not be used afterwards.
func (l *Ledger) Restore(snapshot *Ledger) {
	l.accounts = snapshot.accounts
}
