package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/assets"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/internal/journal"
	"github.com/betbot/fluxbet/internal/store"
)

// stakedBet 建好一个双人下注的 bet：bob 押 Yes，cara 押 No，各 1_000_000
func stakedBet(t *testing.T, f *fixture) (groupKey, betKey addressing.Key) {
	t.Helper()
	f.initPlatform(t)
	groupKey = f.createGroup(t)
	betKey = f.createBet(t, groupKey)
	f.join(t, groupKey, userBob, userCara)
	f.gateway.Mint(assets.Account(userBob), 1_000_000)
	f.gateway.Mint(assets.Account(userCara), 1_000_000)
	_, err := f.engine.PlaceBet(betKey, userBob, 1_000_000, 0)
	require.NoError(t, err)
	_, err = f.engine.PlaceBet(betKey, userCara, 1_000_000, 1)
	require.NoError(t, err)
	return groupKey, betKey
}

func TestResolveBet(t *testing.T) {
	f := newFixture(t)
	groupKey, betKey := stakedBet(t, f)

	// 只有群主能结算
	require.ErrorIs(t, f.engine.ResolveBet(betKey, userBob, 0, 101_000), domain.ErrUnauthorized)

	// 选项必须有效
	require.ErrorIs(t, f.engine.ResolveBet(betKey, admin, 2, 101_000), domain.ErrInvalidOption)

	require.NoError(t, f.engine.ResolveBet(betKey, admin, 0, 101_000))

	bet, err := f.engine.Bet(betKey)
	require.NoError(t, err)
	require.True(t, bet.Resolved)
	require.Equal(t, 0, bet.WinningOption)
	require.Equal(t, uint64(101_000), bet.ActualPrice)

	// bet 从群组 active 移到 past，且只移一次
	g, err := f.engine.Group(groupKey)
	require.NoError(t, err)
	require.Empty(t, g.ActiveBets)
	require.Equal(t, []string{betKey.String()}, g.PastBets)

	// 不可重复结算
	require.ErrorIs(t, f.engine.ResolveBet(betKey, admin, 1, 99_000), domain.ErrAlreadyResolved)

	// 结算后资金池与选项分布不再变化
	bet2, err := f.engine.Bet(betKey)
	require.NoError(t, err)
	require.Equal(t, bet.TotalPool, bet2.TotalPool)
	require.Equal(t, bet.BetsPerOption, bet2.BetsPerOption)
	require.Equal(t, 0, bet2.WinningOption)

	// 封盘后拒绝新下注
	f.gateway.Mint(assets.Account(userBob), 1_000_000)
	_, err = f.engine.PlaceBet(betKey, userBob, 1_000_000, 0)
	require.ErrorIs(t, err, domain.ErrBetClosed)
}

func TestClaimBeforeResolve(t *testing.T) {
	f := newFixture(t)
	_, betKey := stakedBet(t, f)

	_, err := f.engine.ClaimWinnings(betKey, userBob)
	require.ErrorIs(t, err, domain.ErrNotResolved)
}

// 验收场景：本金 1_000_000、赔率 150、手续费 100 => 净奖金 1_485_000
func TestClaimPayoutArithmetic(t *testing.T) {
	f := newFixture(t)
	_, betKey := stakedBet(t, f)
	require.NoError(t, f.engine.ResolveBet(betKey, admin, 0, 101_000))

	paid, err := f.engine.ClaimWinnings(betKey, userBob)
	require.NoError(t, err)
	require.Equal(t, uint64(1_485_000), paid)

	// 净奖金给赢家，抽成进归集账户
	require.Equal(t, uint64(1_485_000), f.gateway.Balance(assets.Account(userBob)))
	require.Equal(t, uint64(15_000), f.gateway.Balance(assets.Account(treasury)))
	// 托管剩余 2_000_000 - 1_500_000
	require.Equal(t, uint64(500_000), f.gateway.Balance(assets.Escrow))

	ub, err := f.engine.UserBet(betKey, userBob)
	require.NoError(t, err)
	require.True(t, ub.Claimed)
	require.Equal(t, uint64(1_485_000), ub.Winnings)

	profile, err := f.engine.Profile(userBob)
	require.NoError(t, err)
	require.Equal(t, uint64(1_485_000), profile.TotalWinnings)
	require.NotContains(t, profile.ActiveBets, betKey.String())
	require.Contains(t, profile.PastBets, betKey.String())

	// 再领一次失败，且没有第二笔转账
	before := len(f.gateway.Receipts())
	_, err = f.engine.ClaimWinnings(betKey, userBob)
	require.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	require.Len(t, f.gateway.Receipts(), before)
}

func TestClaimLoserForfeits(t *testing.T) {
	f := newFixture(t)
	_, betKey := stakedBet(t, f)
	require.NoError(t, f.engine.ResolveBet(betKey, admin, 0, 101_000))

	paid, err := f.engine.ClaimWinnings(betKey, userCara)
	require.NoError(t, err)
	require.Zero(t, paid)

	// 输家一分钱拿不到，但注单核销，不能反复尝试
	require.Zero(t, f.gateway.Balance(assets.Account(userCara)))
	ub, err := f.engine.UserBet(betKey, userCara)
	require.NoError(t, err)
	require.True(t, ub.Claimed)
	require.Zero(t, ub.Winnings)

	profile, err := f.engine.Profile(userCara)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), profile.TotalLosses)
	require.Contains(t, profile.PastBets, betKey.String())

	_, err = f.engine.ClaimWinnings(betKey, userCara)
	require.ErrorIs(t, err, domain.ErrAlreadyClaimed)
}

func TestClaimNotOwner(t *testing.T) {
	f := newFixture(t)
	_, betKey := stakedBet(t, f)
	require.NoError(t, f.engine.ResolveBet(betKey, admin, 0, 101_000))

	// admin 没有注单
	_, err := f.engine.ClaimWinnings(betKey, admin)
	require.ErrorIs(t, err, domain.ErrNotOwner)
}

// 固定赔率的偿付缺口：奖金承诺可以超过入池资金。
// 托管余额不够时领取失败且注单保持未领取，补足后重试成功。
func TestClaimInsufficientEscrowRetry(t *testing.T) {
	f := newFixture(t)
	f.initPlatform(t)
	groupKey := f.createGroup(t)

	params := f.defaultBetParams()
	params.Odds = []domain.Odds{500, 500} // 5 倍赔率，单边下注必然穿仓
	_, betKey, err := f.engine.CreateBet(groupKey, admin, params)
	require.NoError(t, err)

	f.join(t, groupKey, userBob)
	f.gateway.Mint(assets.Account(userBob), 1_000_000)
	_, err = f.engine.PlaceBet(betKey, userBob, 1_000_000, 0)
	require.NoError(t, err)
	require.NoError(t, f.engine.ResolveBet(betKey, admin, 0, 0))

	// 托管只有 1_000_000，应付净奖金 4_950_000
	_, err = f.engine.ClaimWinnings(betKey, userBob)
	require.ErrorIs(t, err, domain.ErrInsufficientEscrow)

	ub, err := f.engine.UserBet(betKey, userBob)
	require.NoError(t, err)
	require.False(t, ub.Claimed)

	// 外部给托管补上流动性后重试成功
	f.gateway.Mint(assets.Escrow, 4_000_000)
	paid, err := f.engine.ClaimWinnings(betKey, userBob)
	require.NoError(t, err)
	require.Equal(t, uint64(4_950_000), paid)
	require.Equal(t, uint64(50_000), f.gateway.Balance(assets.Account(treasury)))
}

// 规格验收的端到端场景，带结算流水
func TestEndToEndScenario(t *testing.T) {
	clock := newTestClock()
	gw := assets.NewMemGateway()
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()
	eng := New(store.NewMemStore(), gw, Options{Now: clock.Now, Journal: j})

	_, err = eng.InitializePlatform(100, "platform-admin", treasury)
	require.NoError(t, err)

	_, groupKey, err := eng.CreateGroup(admin, "G", "weekend pool")
	require.NoError(t, err)

	_, betKey, err := eng.CreateBet(groupKey, admin, BetParams{
		ID:           "X",
		Coin:         "BTC",
		Description:  "scenario bet",
		Options:      []string{"Yes", "No"},
		Odds:         []domain.Odds{150, 250},
		Expiry:       clock.Now().Add(time.Hour),
		MinBetAmount: 1_000_000,
	})
	require.NoError(t, err)

	require.NoError(t, eng.JoinGroup(groupKey, userBob))
	require.NoError(t, eng.JoinGroup(groupKey, userCara))
	gw.Mint(assets.Account(userBob), 1_000_000)
	gw.Mint(assets.Account(userCara), 1_000_000)

	_, err = eng.PlaceBet(betKey, userBob, 1_000_000, 0)
	require.NoError(t, err)
	_, err = eng.PlaceBet(betKey, userCara, 1_000_000, 1)
	require.NoError(t, err)

	require.NoError(t, eng.ResolveBet(betKey, admin, 0, 105_000))

	bet, err := eng.Bet(betKey)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), bet.TotalPool)
	require.Equal(t, []uint64{1_000_000, 1_000_000}, bet.BetsPerOption)

	g, err := eng.Group(groupKey)
	require.NoError(t, err)
	require.Empty(t, g.ActiveBets)
	require.Equal(t, []string{betKey.String()}, g.PastBets)

	paidWinner, err := eng.ClaimWinnings(betKey, userBob)
	require.NoError(t, err)
	require.Equal(t, uint64(1_485_000), paidWinner)

	paidLoser, err := eng.ClaimWinnings(betKey, userCara)
	require.NoError(t, err)
	require.Zero(t, paidLoser)

	for _, u := range []domain.Principal{userBob, userCara} {
		ub, err := eng.UserBet(betKey, u)
		require.NoError(t, err)
		require.True(t, ub.Claimed)
	}

	// 流水记录了每个成功操作
	stakes, err := j.ByOp("place_bet")
	require.NoError(t, err)
	require.Len(t, stakes, 2)
	claims, err := j.ByOp("claim_winnings")
	require.NoError(t, err)
	require.Len(t, claims, 2)
}
