package ledger

import (
	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/internal/store"
)

// 只读查询，供调用方和测试检查账本状态

// Platform 读取平台单例
func (e *Engine) Platform() (*domain.Platform, error) {
	txn := e.store.Begin(false)
	defer txn.Discard()
	return loadPlatform(txn)
}

// Group 读取群组
func (e *Engine) Group(key addressing.Key) (*domain.Group, error) {
	txn := e.store.Begin(false)
	defer txn.Discard()
	return loadGroup(txn, key)
}

// Bet 读取 bet
func (e *Engine) Bet(key addressing.Key) (*domain.Bet, error) {
	txn := e.store.Begin(false)
	defer txn.Discard()
	return loadBet(txn, key)
}

// UserBet 读取某个用户在某个 bet 上的注单
func (e *Engine) UserBet(betKey addressing.Key, user domain.Principal) (*domain.UserBet, error) {
	txn := e.store.Begin(false)
	defer txn.Discard()

	var ub domain.UserBet
	if err := txn.Get(addressing.UserBet(betKey, string(user)), &ub); err != nil {
		if err == store.ErrNotExists {
			return nil, domain.ErrNotOwner
		}
		return nil, err
	}
	return &ub, nil
}

// Profile 读取用户档案
func (e *Engine) Profile(user domain.Principal) (*domain.UserProfile, error) {
	txn := e.store.Begin(false)
	defer txn.Discard()

	var p domain.UserProfile
	if err := txn.Get(addressing.UserProfile(string(user)), &p); err != nil {
		if err == store.ErrNotExists {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
