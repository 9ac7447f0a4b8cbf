// Package ledger 是下注账本的核心状态机：平台初始化、群组管理、
// 建注、下注、结算、领奖。每个操作在一个存储事务内完成全部实体读写，
// 资产转账在事务提交前执行，提交失败时做反向转账补偿，
// 保证状态变更与资金变动要么同时生效要么都不生效。
package ledger

import (
	"sync"
	"time"

	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/assets"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/internal/journal"
	"github.com/betbot/fluxbet/internal/store"
	"github.com/betbot/fluxbet/pkg/logger"
)

// Options 引擎可选项
type Options struct {
	Escrow  assets.Account   // 托管账户（默认 assets.Escrow）
	Journal *journal.Journal // 结算流水（可选，仅审计用）
	Now     func() time.Time // 时钟注入，测试用
}

// Engine 账本引擎。写操作串行化执行（单写锁），读操作只开只读事务。
type Engine struct {
	mu      sync.Mutex
	store   store.Store
	gateway assets.Gateway
	journal *journal.Journal
	escrow  assets.Account
	now     func() time.Time
}

// New 创建账本引擎
func New(s store.Store, g assets.Gateway, opts Options) *Engine {
	if opts.Escrow == "" {
		opts.Escrow = assets.Escrow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:   s,
		gateway: g,
		journal: opts.Journal,
		escrow:  opts.Escrow,
		now:     opts.Now,
	}
}

// record 写结算流水，失败只记日志，不影响操作结果
func (e *Engine) record(op string, actor domain.Principal, entityKey addressing.Key, amount uint64) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(op, string(actor), entityKey.String(), amount); err != nil {
		logger.Warnf("[ledger] journal record failed: op=%s err=%v", op, err)
	}
}

// loadPlatform 读取平台单例
func loadPlatform(txn store.Txn) (*domain.Platform, error) {
	var p domain.Platform
	if err := txn.Get(addressing.Platform(), &p); err != nil {
		if err == store.ErrNotExists {
			return nil, domain.ErrPlatformNotFound
		}
		return nil, err
	}
	return &p, nil
}

// loadGroup 读取群组
func loadGroup(txn store.Txn, key addressing.Key) (*domain.Group, error) {
	var g domain.Group
	if err := txn.Get(key, &g); err != nil {
		if err == store.ErrNotExists {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

// loadBet 读取 bet
func loadBet(txn store.Txn, key addressing.Key) (*domain.Bet, error) {
	var b domain.Bet
	if err := txn.Get(key, &b); err != nil {
		if err == store.ErrNotExists {
			return nil, domain.ErrBetNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ensureProfile 惰性创建用户档案（幂等）。新建档案时调用方负责更新平台计数。
func (e *Engine) ensureProfile(txn store.Txn, user domain.Principal) (*domain.UserProfile, bool, error) {
	key := addressing.UserProfile(string(user))
	var p domain.UserProfile
	err := txn.Get(key, &p)
	if err == nil {
		return &p, false, nil
	}
	if err != store.ErrNotExists {
		return nil, false, err
	}
	p = domain.UserProfile{User: user, CreatedAt: e.now()}
	return &p, true, nil
}

// saveProfile 保存用户档案
func saveProfile(txn store.Txn, p *domain.UserProfile) error {
	return txn.Set(addressing.UserProfile(string(p.User)), p)
}
