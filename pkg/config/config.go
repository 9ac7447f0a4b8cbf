package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/betbot/fluxbet/pkg/logger"
)

// LedgerConfig 账本配置
type LedgerConfig struct {
	StoreDir      string `yaml:"store_dir"`      // badger 数据目录
	JournalPath   string `yaml:"journal_path"`   // sqlite 结算流水文件路径
	EscrowAccount string `yaml:"escrow_account"` // 托管账户标识
	TreasuryAcct  string `yaml:"treasury_acct"`  // 手续费归集账户标识
	AssetDecimals int32  `yaml:"asset_decimals"` // 资产小数位（仅用于展示）
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`       // 日志级别
	OutputFile string `yaml:"output_file"` // 日志文件路径（可选）
	MaxSize    int    `yaml:"max_size"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `yaml:"max_backups"` // 保留的旧日志文件数量
	MaxAge     int    `yaml:"max_age"`     // 保留天数
	Compress   bool   `yaml:"compress"`    // 是否压缩旧日志
}

// Config 应用配置
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Log    LogConfig    `yaml:"log"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			StoreDir:      "data/ledger",
			JournalPath:   "data/journal.db",
			EscrowAccount: "escrow",
			TreasuryAcct:  "treasury",
			AssetDecimals: 6,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     7,
		},
	}
}

// Load 从 yaml 文件加载配置，.env 和环境变量可以覆盖部分字段。
// path 为空时返回默认配置（仅应用环境变量覆盖）。
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 应用 FLUXBET_* 环境变量覆盖
func (c *Config) applyEnv() {
	c.Ledger.StoreDir = getEnv("FLUXBET_STORE_DIR", c.Ledger.StoreDir)
	c.Ledger.JournalPath = getEnv("FLUXBET_JOURNAL_PATH", c.Ledger.JournalPath)
	c.Ledger.EscrowAccount = getEnv("FLUXBET_ESCROW_ACCOUNT", c.Ledger.EscrowAccount)
	c.Ledger.TreasuryAcct = getEnv("FLUXBET_TREASURY_ACCOUNT", c.Ledger.TreasuryAcct)
	c.Ledger.AssetDecimals = int32(parseIntEnv("FLUXBET_ASSET_DECIMALS", int(c.Ledger.AssetDecimals)))
	c.Log.Level = getEnv("FLUXBET_LOG_LEVEL", c.Log.Level)
	c.Log.OutputFile = getEnv("FLUXBET_LOG_FILE", c.Log.OutputFile)
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Ledger.EscrowAccount == "" {
		return fmt.Errorf("ledger.escrow_account is required")
	}
	if c.Ledger.TreasuryAcct == "" {
		return fmt.Errorf("ledger.treasury_acct is required")
	}
	if c.Ledger.EscrowAccount == c.Ledger.TreasuryAcct {
		return fmt.Errorf("escrow and treasury accounts must differ")
	}
	if c.Ledger.AssetDecimals < 0 || c.Ledger.AssetDecimals > 18 {
		return fmt.Errorf("ledger.asset_decimals out of range: %d", c.Ledger.AssetDecimals)
	}
	return nil
}

// LoggerConfig 转换为 pkg/logger 的配置
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		OutputFile: c.Log.OutputFile,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warnf("[config] 无法解析环境变量 %s=%s，使用默认值 %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
