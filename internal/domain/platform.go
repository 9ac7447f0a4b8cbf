package domain

// Principal 参与方标识（由上游身份层给出，这里只当作不透明字符串）
type Principal string

// FeeDenominator 手续费分母：FeePercentage 按万分之一计（100 = 1%）
const FeeDenominator = 10000

// Platform 平台领域模型（每套部署唯一）
type Platform struct {
	Admin         Principal `json:"admin"`          // 平台管理员
	Treasury      Principal `json:"treasury"`       // 手续费归集账户
	FeePercentage uint16    `json:"fee_percentage"` // 手续费（万分比，100 = 1%）
	TotalBets     uint64    `json:"total_bets"`     // 累计创建的 bet 数（仅统计用）
	TotalUsers    uint64    `json:"total_users"`    // 累计创建的用户档案数（仅统计用）
	TotalGroups   uint64    `json:"total_groups"`   // 累计创建的群组数（仅统计用）
}

// ValidFee 检查手续费是否在 [0, 10000] 范围内
func ValidFee(feePercentage uint16) bool {
	return feePercentage <= FeeDenominator
}
