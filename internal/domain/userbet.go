package domain

import "time"

// UserBet 单个用户在单个 bet 上的注单，每个 (user, bet) 至多一份，金额与选项创建后不可变
type UserBet struct {
	User        Principal `json:"user"`         // 下注人
	Bet         string    `json:"bet"`          // 所属 bet key
	Amount      uint64    `json:"amount"`       // 本金
	OptionIndex int       `json:"option_index"` // 所选选项下标
	Claimed     bool      `json:"claimed"`      // 是否已领取（赢家领奖、输家核销都会置 true）
	Winnings    uint64    `json:"winnings"`     // 实际到手净奖金（claim 成功后记录，输家为 0）
	PlacedAt    time.Time `json:"placed_at"`    // 下注时间
}

// Won 判断该注单在给定获胜选项下是否获胜
func (ub *UserBet) Won(winningOption int) bool {
	return ub.OptionIndex == winningOption
}
