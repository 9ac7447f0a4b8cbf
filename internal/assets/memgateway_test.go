package assets

import (
	"sync"
	"testing"
)

func TestTransfer(t *testing.T) {
	g := NewMemGateway()
	g.Mint("alice", 1_000_000)

	r, err := g.Transfer("alice", Escrow, 400_000)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if r.ID == "" {
		t.Fatal("receipt has no id")
	}
	if g.Balance("alice") != 600_000 || g.Balance(Escrow) != 400_000 {
		t.Fatalf("balances wrong: alice=%d escrow=%d", g.Balance("alice"), g.Balance(Escrow))
	}
}

func TestTransferInsufficient(t *testing.T) {
	g := NewMemGateway()
	g.Mint("alice", 100)
	if _, err := g.Transfer("alice", Escrow, 101); err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	// failed transfer must leave balances untouched
	if g.Balance("alice") != 100 || g.Balance(Escrow) != 0 {
		t.Fatalf("failed transfer moved funds: alice=%d escrow=%d", g.Balance("alice"), g.Balance(Escrow))
	}
}

func TestConcurrentTransfers(t *testing.T) {
	g := NewMemGateway()
	g.Mint("alice", 1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Transfer("alice", Escrow, 1)
			}
		}()
	}
	wg.Wait()

	if g.Balance(Escrow) != 1000 || g.Balance("alice") != 0 {
		t.Fatalf("lost updates: alice=%d escrow=%d", g.Balance("alice"), g.Balance(Escrow))
	}
	if len(g.Receipts()) != 1000 {
		t.Fatalf("expected 1000 receipts, got %d", len(g.Receipts()))
	}
}
