package domain

import "errors"

// 授权类错误
var (
	ErrUnauthorized = errors.New("caller is not the group admin")
	ErrNotOwner     = errors.New("caller does not own this stake")
	ErrNotMember    = errors.New("user is not a member of the group")
)

// 状态冲突类错误
var (
	ErrAlreadyInitialized = errors.New("platform already initialized")
	ErrDuplicateGroup     = errors.New("group already exists")
	ErrAlreadyMember      = errors.New("user is already a member of the group")
	ErrDuplicateBet       = errors.New("bet id already exists in this group")
	ErrDuplicateStake     = errors.New("user already has a stake on this bet")
	ErrAlreadyResolved    = errors.New("bet already resolved")
	ErrAlreadyClaimed     = errors.New("winnings already claimed")
)

// 参数校验类错误
var (
	ErrInvalidFee     = errors.New("fee percentage must be within [0, 10000]")
	ErrInvalidOptions = errors.New("options and odds must match and contain 2 to 10 entries")
	ErrInvalidExpiry  = errors.New("expiry must be in the future")
	ErrInvalidOption  = errors.New("option index out of range")
	ErrAmountTooLow   = errors.New("stake amount below bet minimum")
	// ErrArithmeticOverflow 表示金额运算会溢出 uint64，下注/派奖时直接拒绝
	ErrArithmeticOverflow = errors.New("amount arithmetic overflows uint64")
)

// 时序类错误
var (
	ErrBetClosed   = errors.New("bet is closed to new stakes")
	ErrNotResolved = errors.New("bet not resolved yet")
)

// 查找类错误
var (
	ErrPlatformNotFound = errors.New("platform not initialized")
	ErrGroupNotFound    = errors.New("group not found")
	ErrBetNotFound      = errors.New("bet not found")
	ErrProfileNotFound  = errors.New("user profile not found")
)

// 转账类错误
var (
	// ErrInsufficientEscrow 表示托管账户余额不足以支付赢家。
	// 固定赔率资金池没有外部流动性兜底，奖金总额可能超过入池总额，
	// 此时 claim 失败且 Claimed 保持 false，等托管账户补足后可重试。
	ErrInsufficientEscrow = errors.New("escrow balance cannot cover payout")
)
