package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "courtledger/internal/shared/config"
)

type Config struct {
	Storage      sharedConfig.StorageConfig      `mapstructure:"storage"`
	Pricing      sharedConfig.PricingConfig      `mapstructure:"pricing"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Partners     []sharedConfig.PartnerConfig    `mapstructure:"partners"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("COURTLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine for a desktop tool: defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Storage defaults
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.legacy_dir", ".")
	v.SetDefault("storage.backup_dir", "backups")
	v.SetDefault("storage.lock_attempts", 12)
	v.SetDefault("storage.lock_delay_ms", 100)
	v.SetDefault("storage.write_retries", 3)
	v.SetDefault("storage.write_retry_delay_ms", 300)

	// Pricing defaults (VND)
	v.SetDefault("pricing.play_rate_day", 100000)
	v.SetDefault("pricing.play_rate_evening", 120000)
	v.SetDefault("pricing.practice_rate_day", 60000)
	v.SetDefault("pricing.practice_rate_evening", 80000)
	v.SetDefault("pricing.light_surcharge", 20000)
	v.SetDefault("pricing.evening_start_hour", 17)
	v.SetDefault("pricing.off_peak_before_hour", 6)
	v.SetDefault("pricing.off_peak_from_hour", 22)
	v.SetDefault("pricing.price_warn_ceiling", 5000000)

	// Subscription defaults
	v.SetDefault("subscription.base_price", 1150000)

	// Partner profit splits, percentages must sum to 100
	v.SetDefault("partners", []map[string]any{
		{"name": "Uyen", "percent": 11.20},
		{"name": "Khoa", "percent": 41.48},
		{"name": "Sang", "percent": 47.32},
	})

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
}
