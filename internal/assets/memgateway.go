package assets

import (
	"sync"

	"github.com/google/uuid"
)

// MemGateway is an in-process Gateway keeping balances in memory. It stands in
// for the host platform's token-transfer capability in tests and local runs.
type MemGateway struct {
	mu       sync.Mutex
	balances map[Account]uint64
	receipts []Receipt
}

// NewMemGateway creates a gateway with all balances at zero.
func NewMemGateway() *MemGateway {
	return &MemGateway{balances: make(map[Account]uint64)}
}

// Mint credits an account out of thin air. Funding mechanics are the host
// platform's concern, so tests use this to set up balances.
func (g *MemGateway) Mint(acct Account, amount uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.balances[acct] += amount
}

// Balance returns the current balance of an account.
func (g *MemGateway) Balance(acct Account) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balances[acct]
}

// Transfer moves amount from one account to another, atomically.
// A zero-amount transfer is a no-op that still yields a receipt.
func (g *MemGateway) Transfer(from, to Account, amount uint64) (Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.balances[from] < amount {
		return Receipt{}, ErrInsufficientFunds
	}
	g.balances[from] -= amount
	g.balances[to] += amount
	r := Receipt{
		ID:     uuid.NewString(),
		From:   from,
		To:     to,
		Amount: amount,
	}
	g.receipts = append(g.receipts, r)
	return r, nil
}

// Receipts returns a copy of all executed transfers in order.
func (g *MemGateway) Receipts() []Receipt {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Receipt, len(g.receipts))
	copy(out, g.receipts)
	return out
}
