package ledger

import (
	"time"

	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/assets"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/internal/store"
	"github.com/betbot/fluxbet/pkg/logger"
)

// BetParams 建注参数
type BetParams struct {
	ID           string        // 群内唯一 bet id
	Coin         string        // 标的描述字段
	Description  string        // 描述
	Options      []string      // 结果选项（2~10 个）
	Odds         []domain.Odds // 每个选项的固定赔率，与 Options 等长
	Expiry       time.Time     // 下注截止时间，必须在未来
	MinBetAmount uint64        // 最小下注额
}

// CreateBet 在群组内创建 bet。创建者必须是群成员（通常是群主）。
func (e *Engine) CreateBet(groupKey addressing.Key, creator domain.Principal, params BetParams) (*domain.Bet, addressing.Key, error) {
	if err := domain.ValidateOptionsAndOdds(params.Options, params.Odds); err != nil {
		return nil, addressing.Key{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	now := e.now()
	if !params.Expiry.After(now) {
		return nil, addressing.Key{}, domain.ErrInvalidExpiry
	}

	group, err := loadGroup(txn, groupKey)
	if err != nil {
		return nil, addressing.Key{}, err
	}
	if !group.HasMember(creator) {
		return nil, addressing.Key{}, domain.ErrNotMember
	}

	platform, err := loadPlatform(txn)
	if err != nil {
		return nil, addressing.Key{}, err
	}

	betKey := addressing.Bet(groupKey, params.ID)
	exists, err := txn.Has(betKey)
	if err != nil {
		return nil, addressing.Key{}, err
	}
	if exists {
		return nil, addressing.Key{}, domain.ErrDuplicateBet
	}

	bet := &domain.Bet{
		ID:            params.ID,
		Group:         groupKey.String(),
		Creator:       creator,
		Coin:          params.Coin,
		Description:   params.Description,
		Options:       params.Options,
		Odds:          params.Odds,
		MinBetAmount:  params.MinBetAmount,
		BetsPerOption: make([]uint64, len(params.Options)),
		CreatedAt:     now,
		Expiry:        params.Expiry,
	}

	group.ActiveBets = append(group.ActiveBets, betKey.String())

	profile, created, err := e.ensureProfile(txn, creator)
	if err != nil {
		return nil, addressing.Key{}, err
	}
	profile.AddActiveBet(betKey.String())
	if created {
		platform.TotalUsers++
	}
	platform.TotalBets++

	if err := txn.Set(betKey, bet); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := txn.Set(groupKey, group); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := saveProfile(txn, profile); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := txn.Set(addressing.Platform(), platform); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := txn.Commit(); err != nil {
		return nil, addressing.Key{}, err
	}

	logger.Infof("[ledger] bet created: id=%s coin=%s group=%s options=%d", params.ID, params.Coin, group.Name, len(params.Options))
	e.record("create_bet", creator, betKey, 0)
	return bet, betKey, nil
}

// PlaceBet 下注。要求 bet 未封盘、选项有效、金额达标、下注人是群成员
// 且尚未在该 bet 上下过注。本金从下注人转入托管账户，
// 转账成功后状态才提交；提交失败则反向转账补偿。
func (e *Engine) PlaceBet(betKey addressing.Key, user domain.Principal, amount uint64, optionIndex int) (*domain.UserBet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	bet, err := loadBet(txn, betKey)
	if err != nil {
		return nil, err
	}
	if !bet.AcceptsStakes(e.now()) {
		return nil, domain.ErrBetClosed
	}
	if !bet.ValidOption(optionIndex) {
		return nil, domain.ErrInvalidOption
	}
	if amount < bet.MinBetAmount {
		return nil, domain.ErrAmountTooLow
	}
	// 锁定赔率下的毛奖金必须可计算，入场时就拒绝会溢出的注
	if _, err := domain.GrossPayout(amount, bet.Odds[optionIndex]); err != nil {
		return nil, err
	}

	groupKey, err := addressing.FromHex(bet.Group)
	if err != nil {
		return nil, err
	}
	group, err := loadGroup(txn, groupKey)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(user) {
		return nil, domain.ErrNotMember
	}

	stakeKey := addressing.UserBet(betKey, string(user))
	exists, err := txn.Has(stakeKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateStake
	}

	userBet := &domain.UserBet{
		User:        user,
		Bet:         betKey.String(),
		Amount:      amount,
		OptionIndex: optionIndex,
		PlacedAt:    e.now(),
	}

	if bet.TotalPool, err = domain.AddAmount(bet.TotalPool, amount); err != nil {
		return nil, err
	}
	bet.BetsPerOption[optionIndex] += amount

	profile, _, err := e.ensureProfile(txn, user)
	if err != nil {
		return nil, err
	}
	profile.AddActiveBet(betKey.String())

	if err := txn.Set(stakeKey, userBet); err != nil {
		return nil, err
	}
	if err := txn.Set(betKey, bet); err != nil {
		return nil, err
	}
	if err := saveProfile(txn, profile); err != nil {
		return nil, err
	}

	// 本金入托管。转账失败则整个操作失败，状态不提交。
	if _, err := e.gateway.Transfer(assets.Account(user), e.escrow, amount); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		// 提交失败，退回本金
		if _, rerr := e.gateway.Transfer(e.escrow, assets.Account(user), amount); rerr != nil {
			logger.Errorf("[ledger] stake refund failed after commit error: user=%s amount=%d err=%v", user, amount, rerr)
		}
		return nil, err
	}

	logger.Infof("[ledger] stake placed: user=%s bet=%s option=%d amount=%d pool=%d", user, bet.ID, optionIndex, amount, bet.TotalPool)
	e.record("place_bet", user, betKey, amount)
	return userBet, nil
}

// ResolveBet 结算 bet。只有群主能结算，结算后封盘且不可逆。
// actualPrice 仅作为结算证据记录，引擎不校验它与获胜选项的关系。
func (e *Engine) ResolveBet(betKey addressing.Key, caller domain.Principal, winningOption int, actualPrice uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	bet, err := loadBet(txn, betKey)
	if err != nil {
		return err
	}

	groupKey, err := addressing.FromHex(bet.Group)
	if err != nil {
		return err
	}
	group, err := loadGroup(txn, groupKey)
	if err != nil {
		return err
	}
	if group.Admin != caller {
		return domain.ErrUnauthorized
	}
	if bet.Resolved {
		return domain.ErrAlreadyResolved
	}
	if !bet.ValidOption(winningOption) {
		return domain.ErrInvalidOption
	}

	now := e.now()
	bet.Resolved = true
	bet.WinningOption = winningOption
	bet.ActualPrice = actualPrice
	bet.ResolvedAt = &now

	group.RetireBet(betKey.String())

	if err := txn.Set(betKey, bet); err != nil {
		return err
	}
	if err := txn.Set(groupKey, group); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}

	logger.Infof("[ledger] bet resolved: id=%s winner=%q odds=%sx price=%d pool=%d",
		bet.ID, bet.Options[winningOption], bet.Odds[winningOption].Multiplier(), actualPrice, bet.TotalPool)
	e.record("resolve_bet", caller, betKey, 0)
	return nil
}

// ClaimWinnings 领取奖金，每个注单只能领取一次。
// 赢家按固定赔率计算毛奖金，扣除平台抽成后从托管账户打款，
// 抽成转入归集账户；输家本金没收，注单核销后不能再领。
// 托管账户余额不足时领取失败且注单保持未领取，补足后可重试。
func (e *Engine) ClaimWinnings(betKey addressing.Key, caller domain.Principal) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	bet, err := loadBet(txn, betKey)
	if err != nil {
		return 0, err
	}
	if !bet.Resolved {
		return 0, domain.ErrNotResolved
	}

	stakeKey := addressing.UserBet(betKey, string(caller))
	var userBet domain.UserBet
	if err := txn.Get(stakeKey, &userBet); err != nil {
		if err == store.ErrNotExists {
			return 0, domain.ErrNotOwner
		}
		return 0, err
	}
	if userBet.User != caller || userBet.Bet != betKey.String() {
		return 0, domain.ErrNotOwner
	}
	if userBet.Claimed {
		return 0, domain.ErrAlreadyClaimed
	}

	platform, err := loadPlatform(txn)
	if err != nil {
		return 0, err
	}
	profile, _, err := e.ensureProfile(txn, caller)
	if err != nil {
		return 0, err
	}

	var net, fee uint64
	if userBet.Won(bet.WinningOption) {
		net, fee, err = domain.NetPayout(userBet.Amount, bet.Odds[bet.WinningOption], platform.FeePercentage)
		if err != nil {
			return 0, err
		}
		profile.TotalWinnings += net
	} else {
		// 输家本金没收，核销注单防止反复尝试
		profile.TotalLosses += userBet.Amount
	}

	userBet.Claimed = true
	userBet.Winnings = net
	profile.RetireBet(betKey.String())

	if err := txn.Set(stakeKey, &userBet); err != nil {
		return 0, err
	}
	if err := saveProfile(txn, profile); err != nil {
		return 0, err
	}

	// 先打款再提交；任何一步失败都要让注单保持未领取状态
	if net > 0 {
		if _, err := e.gateway.Transfer(e.escrow, assets.Account(caller), net); err != nil {
			if err == assets.ErrInsufficientFunds {
				return 0, domain.ErrInsufficientEscrow
			}
			return 0, err
		}
	}
	if fee > 0 {
		if _, err := e.gateway.Transfer(e.escrow, assets.Account(platform.Treasury), fee); err != nil {
			e.refund(assets.Account(caller), e.escrow, net)
			if err == assets.ErrInsufficientFunds {
				return 0, domain.ErrInsufficientEscrow
			}
			return 0, err
		}
	}
	if err := txn.Commit(); err != nil {
		e.refund(assets.Account(caller), e.escrow, net)
		e.refund(assets.Account(platform.Treasury), e.escrow, fee)
		return 0, err
	}

	logger.Infof("[ledger] winnings claimed: user=%s bet=%s net=%d fee=%d", caller, bet.ID, net, fee)
	e.record("claim_winnings", caller, betKey, net)
	return net, nil
}

// refund 补偿性反向转账，仅在提交失败后调用
func (e *Engine) refund(from, to assets.Account, amount uint64) {
	if amount == 0 {
		return
	}
	if _, err := e.gateway.Transfer(from, to, amount); err != nil {
		logger.Errorf("[ledger] compensating transfer failed: from=%s to=%s amount=%d err=%v", from, to, amount, err)
	}
}
