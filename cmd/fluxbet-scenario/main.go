// fluxbet-scenario 跑一遍完整的下注生命周期（冒烟用）：
// 初始化平台 -> 建群 -> 建注 -> 两人下注 -> 结算 -> 领奖，
// 数据落在 badger 和 sqlite 流水里，资金走内存网关。
package main

import (
	"flag"
	"log"
	"time"

	"github.com/betbot/fluxbet/internal/assets"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/internal/journal"
	"github.com/betbot/fluxbet/internal/ledger"
	"github.com/betbot/fluxbet/internal/store"
	"github.com/betbot/fluxbet/pkg/config"
	"github.com/betbot/fluxbet/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "yaml 配置文件路径（可选）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}

	st, err := store.OpenBadger(cfg.Ledger.StoreDir)
	if err != nil {
		log.Fatalf("打开存储失败: %v", err)
	}
	defer st.Close()

	j, err := journal.Open(cfg.Ledger.JournalPath)
	if err != nil {
		log.Fatalf("打开流水失败: %v", err)
	}
	defer j.Close()

	gw := assets.NewMemGateway()
	eng := ledger.New(st, gw, ledger.Options{
		Escrow:  assets.Account(cfg.Ledger.EscrowAccount),
		Journal: j,
	})

	const (
		adminUser = domain.Principal("alice")
		user1     = domain.Principal("bob")
		user2     = domain.Principal("cara")
	)
	decimals := cfg.Ledger.AssetDecimals

	if _, err := eng.InitializePlatform(100, adminUser, domain.Principal(cfg.Ledger.TreasuryAcct)); err != nil {
		log.Fatalf("初始化平台失败: %v", err)
	}

	_, groupKey, err := eng.CreateGroup(adminUser, "G", "scenario group")
	if err != nil {
		log.Fatalf("建群失败: %v", err)
	}

	_, betKey, err := eng.CreateBet(groupKey, adminUser, ledger.BetParams{
		ID:           "X",
		Coin:         "BTC",
		Description:  "BTC above 100k",
		Options:      []string{"Yes", "No"},
		Odds:         []domain.Odds{150, 250},
		Expiry:       time.Now().Add(time.Hour),
		MinBetAmount: 1_000_000,
	})
	if err != nil {
		log.Fatalf("建注失败: %v", err)
	}

	for _, u := range []domain.Principal{user1, user2} {
		if err := eng.JoinGroup(groupKey, u); err != nil {
			log.Fatalf("加群失败: %v", err)
		}
		gw.Mint(assets.Account(u), 1_000_000)
	}

	if _, err := eng.PlaceBet(betKey, user1, 1_000_000, 0); err != nil {
		log.Fatalf("下注失败: %v", err)
	}
	if _, err := eng.PlaceBet(betKey, user2, 1_000_000, 1); err != nil {
		log.Fatalf("下注失败: %v", err)
	}

	if err := eng.ResolveBet(betKey, adminUser, 0, 105_000); err != nil {
		log.Fatalf("结算失败: %v", err)
	}

	paid, err := eng.ClaimWinnings(betKey, user1)
	if err != nil {
		log.Fatalf("赢家领奖失败: %v", err)
	}
	if _, err := eng.ClaimWinnings(betKey, user2); err != nil {
		log.Fatalf("输家核销失败: %v", err)
	}

	bet, err := eng.Bet(betKey)
	if err != nil {
		log.Fatalf("查询 bet 失败: %v", err)
	}

	logger.Infof("场景完成: pool=%s 赢家到手=%s 托管余额=%s 归集余额=%s",
		domain.FormatAmount(bet.TotalPool, decimals),
		domain.FormatAmount(paid, decimals),
		domain.FormatAmount(gw.Balance(assets.Account(cfg.Ledger.EscrowAccount)), decimals),
		domain.FormatAmount(gw.Balance(assets.Account(cfg.Ledger.TreasuryAcct)), decimals),
	)

	n, err := j.Count()
	if err != nil {
		log.Fatalf("读取流水失败: %v", err)
	}
	logger.Infof("流水共 %d 条", n)
}
