// Package assets is the asset transfer boundary. The ledger core never reads
// balances; it only issues transfer instructions between opaque balance
// holders (a user principal, the escrow, the treasury) and reacts to their
// success or failure inside its own transaction boundary.
package assets

import "errors"

// Account identifies a balance holder. The ledger treats it as opaque.
type Account string

// Well-known platform accounts.
const (
	Escrow   Account = "escrow"
	Treasury Account = "treasury"
)

// ErrInsufficientFunds means the source account cannot cover the transfer.
var ErrInsufficientFunds = errors.New("assets: insufficient funds")

// Receipt records one executed transfer.
type Receipt struct {
	ID     string
	From   Account
	To     Account
	Amount uint64
}

// Gateway moves value between balance holders. Implementations must make each
// Transfer atomic: on error no balance has changed.
type Gateway interface {
	Transfer(from, to Account, amount uint64) (Receipt, error)
}
