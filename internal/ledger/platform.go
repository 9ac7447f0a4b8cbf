package ledger

import (
	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/pkg/logger"
)

// InitializePlatform 初始化平台单例。每套部署只能初始化一次，
// 手续费以万分比计且创建后不可变。
func (e *Engine) InitializePlatform(feePercentage uint16, admin, treasury domain.Principal) (*domain.Platform, error) {
	if !domain.ValidFee(feePercentage) {
		return nil, domain.ErrInvalidFee
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	exists, err := txn.Has(addressing.Platform())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyInitialized
	}

	platform := &domain.Platform{
		Admin:         admin,
		Treasury:      treasury,
		FeePercentage: feePercentage,
	}
	if err := txn.Set(addressing.Platform(), platform); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}

	logger.Infof("[ledger] platform initialized: admin=%s fee=%d/10000", admin, feePercentage)
	e.record("initialize_platform", admin, addressing.Platform(), 0)
	return platform, nil
}
