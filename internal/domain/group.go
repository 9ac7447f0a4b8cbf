package domain

import "time"

// Group 群组领域模型，由群主创建，群内成员才能参与下注
type Group struct {
	Name        string      `json:"name"`        // 群组名（创建后不可变）
	Description string      `json:"description"` // 群组描述（创建后不可变）
	Admin       Principal   `json:"admin"`       // 群主，拥有建注/结算权限
	Members     []Principal `json:"members"`     // 成员列表（群主固定为第 0 位）
	ActiveBets  []string    `json:"active_bets"` // 未结算的 bet key 列表
	PastBets    []string    `json:"past_bets"`   // 已结算的 bet key 列表
	CreatedAt   time.Time   `json:"created_at"`  // 创建时间
}

// HasMember 检查某个参与方是否在群内
func (g *Group) HasMember(p Principal) bool {
	for _, m := range g.Members {
		if m == p {
			return true
		}
	}
	return false
}

// RetireBet 将 bet 从 active 列表移入 past 列表（结算时调用，幂等）
func (g *Group) RetireBet(betKey string) {
	for i, k := range g.ActiveBets {
		if k == betKey {
			g.ActiveBets = append(g.ActiveBets[:i], g.ActiveBets[i+1:]...)
			break
		}
	}
	for _, k := range g.PastBets {
		if k == betKey {
			return
		}
	}
	g.PastBets = append(g.PastBets, betKey)
}
