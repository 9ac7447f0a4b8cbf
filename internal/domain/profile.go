package domain

import "time"

// UserProfile 用户档案，首次创建或加入群组时惰性创建，每个参与方至多一份
type UserProfile struct {
	User          Principal `json:"user"`           // 档案所属参与方
	Groups        []string  `json:"groups"`         // 已加入的群组 key（插入序）
	ActiveBets    []string  `json:"active_bets"`    // 有持仓且未了结的 bet key
	PastBets      []string  `json:"past_bets"`      // 已了结的 bet key
	TotalWinnings uint64    `json:"total_winnings"` // 累计净奖金
	TotalLosses   uint64    `json:"total_losses"`   // 累计输掉的本金
	CreatedAt     time.Time `json:"created_at"`     // 创建时间
}

// AddGroup 记录加入的群组（去重）
func (p *UserProfile) AddGroup(groupKey string) {
	for _, k := range p.Groups {
		if k == groupKey {
			return
		}
	}
	p.Groups = append(p.Groups, groupKey)
}

// AddActiveBet 记录参与的 bet（去重）
func (p *UserProfile) AddActiveBet(betKey string) {
	for _, k := range p.ActiveBets {
		if k == betKey {
			return
		}
	}
	p.ActiveBets = append(p.ActiveBets, betKey)
}

// RetireBet 把 bet 从 active 移入 past（claim 时调用，幂等）
func (p *UserProfile) RetireBet(betKey string) {
	for i, k := range p.ActiveBets {
		if k == betKey {
			p.ActiveBets = append(p.ActiveBets[:i], p.ActiveBets[i+1:]...)
			break
		}
	}
	for _, k := range p.PastBets {
		if k == betKey {
			return
		}
	}
	p.PastBets = append(p.PastBets, betKey)
}
