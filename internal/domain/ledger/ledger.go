// Package ledger holds the player's credit balance.
// This package is PURE and must NOT import any infrastructure packages.
package ledger

// Ledger tracks a non-negative credit balance. It is mutated only through
// Add and Spend.
type Ledger struct {
	balance int
}

// New creates a ledger with an opening balance. Negative openings are clamped to zero.
func New(opening int) *Ledger {
	if opening < 0 {
		opening = 0
	}
	return &Ledger{balance: opening}
}

// Balance returns the current credit balance.
func (l *Ledger) Balance() int {
	return l.balance
}

// Add credits the balance and returns the new balance.
func (l *Ledger) Add(amount int) int {
	l.balance += amount
	return l.balance
}

// Spend debits amount if the balance covers it. An insufficient balance is an
// ordinary outcome: it returns false and leaves the balance untouched.
func (l *Ledger) Spend(amount int) bool {
	if l.balance < amount {
		return false
	}
	l.balance -= amount
	return true
}

// CanAfford reports whether Spend(amount) would succeed.
func (l *Ledger) CanAfford(amount int) bool {
	return l.balance >= amount
}
