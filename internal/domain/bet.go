package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// 一个 bet 的选项数量限制
const (
	MinOptions = 2
	MaxOptions = 10
)

// Odds 固定赔率，单位 1/100（150 = 1.5 倍）
type Odds uint16

// Multiplier 返回赔率对应的十进制倍数，仅用于展示和日志
func (o Odds) Multiplier() decimal.Decimal {
	return decimal.New(int64(o), -2)
}

// Bet 下注标的领域模型。创建后接受下注，到期或结算后封盘。
// 采用固定赔率（赔率在创建时锁定），不是按资金池比例分配的 pari-mutuel 模式。
type Bet struct {
	ID            string     `json:"id"`              // 群内唯一的 bet id（调用方提供）
	Group         string     `json:"group"`           // 所属群组 key
	Creator       Principal  `json:"creator"`         // 创建者
	Coin          string     `json:"coin"`            // 标的币种等描述性字段
	Description   string     `json:"description"`     // 描述
	Options       []string   `json:"options"`         // 结果选项（2~10 个）
	Odds          []Odds     `json:"odds"`            // 每个选项的固定赔率，与 Options 等长
	MinBetAmount  uint64     `json:"min_bet_amount"`  // 最小下注额
	TotalPool     uint64     `json:"total_pool"`      // 资金池总额（所有选项之和）
	BetsPerOption []uint64   `json:"bets_per_option"` // 每个选项的下注总额
	CreatedAt     time.Time  `json:"created_at"`      // 创建时间
	Expiry        time.Time  `json:"expiry"`          // 截止时间，到期后拒绝新下注
	Resolved      bool       `json:"resolved"`        // 是否已结算
	WinningOption int        `json:"winning_option"`  // 获胜选项下标，仅在 Resolved 后有效
	ActualPrice   uint64     `json:"actual_price"`    // 结算时记录的实际价格（证据性字段，引擎不校验）
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// ValidOption 检查选项下标是否在范围内
func (b *Bet) ValidOption(index int) bool {
	return index >= 0 && index < len(b.Options)
}

// AcceptsStakes 检查当前时刻是否还接受下注
func (b *Bet) AcceptsStakes(now time.Time) bool {
	return !b.Resolved && now.Before(b.Expiry)
}

// ValidateOptionsAndOdds 校验选项与赔率的形状约束
func ValidateOptionsAndOdds(options []string, odds []Odds) error {
	if len(options) != len(odds) {
		return ErrInvalidOptions
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return ErrInvalidOptions
	}
	return nil
}

// GrossPayout 计算毛奖金：amount * odds / 100。乘法溢出 uint64 时报
// ErrArithmeticOverflow，绝不静默回绕。
func GrossPayout(amount uint64, odds Odds) (uint64, error) {
	if odds != 0 && amount > math.MaxUint64/uint64(odds) {
		return 0, ErrArithmeticOverflow
	}
	return amount * uint64(odds) / 100, nil
}

// FeeAmount 计算平台抽成：gross * feePercentage / 10000
func FeeAmount(gross uint64, feePercentage uint16) (uint64, error) {
	if feePercentage != 0 && gross > math.MaxUint64/uint64(feePercentage) {
		return 0, ErrArithmeticOverflow
	}
	return gross * uint64(feePercentage) / FeeDenominator, nil
}

// NetPayout 计算净奖金（毛奖金减抽成）
func NetPayout(amount uint64, odds Odds, feePercentage uint16) (net, fee uint64, err error) {
	gross, err := GrossPayout(amount, odds)
	if err != nil {
		return 0, 0, err
	}
	fee, err = FeeAmount(gross, feePercentage)
	if err != nil {
		return 0, 0, err
	}
	return gross - fee, fee, nil
}

// AddAmount 求和，溢出 uint64 时报 ErrArithmeticOverflow。
// 用于资金池累加等绝不允许回绕的路径。
func AddAmount(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

// FormatAmount 把基础单位金额格式化成带小数位的字符串，仅用于展示和日志
func FormatAmount(amount uint64, decimals int32) string {
	return decimal.New(int64(amount), -decimals).String()
}
