package config

import "time"

type StorageConfig struct {
	DataDir           string `mapstructure:"data_dir"`
	LegacyDir         string `mapstructure:"legacy_dir"`
	BackupDir         string `mapstructure:"backup_dir"`
	LockAttempts      int    `mapstructure:"lock_attempts"`
	LockDelayMs       int    `mapstructure:"lock_delay_ms"`
	WriteRetries      int    `mapstructure:"write_retries"`
	WriteRetryDelayMs int    `mapstructure:"write_retry_delay_ms"`
}

func (s *StorageConfig) LockDelay() time.Duration {
	return time.Duration(s.LockDelayMs) * time.Millisecond
}

func (s *StorageConfig) WriteRetryDelay() time.Duration {
	return time.Duration(s.WriteRetryDelayMs) * time.Millisecond
}

type PricingConfig struct {
	PlayRateDay         int64 `mapstructure:"play_rate_day"`
	PlayRateEvening     int64 `mapstructure:"play_rate_evening"`
	PracticeRateDay     int64 `mapstructure:"practice_rate_day"`
	PracticeRateEvening int64 `mapstructure:"practice_rate_evening"`
	LightSurcharge      int64 `mapstructure:"light_surcharge"`
	EveningStartHour    int   `mapstructure:"evening_start_hour"`
	OffPeakBeforeHour   int   `mapstructure:"off_peak_before_hour"`
	OffPeakFromHour     int   `mapstructure:"off_peak_from_hour"`
	PriceWarnCeiling    int64 `mapstructure:"price_warn_ceiling"`
}

type SubscriptionConfig struct {
	BasePrice int64 `mapstructure:"base_price"`
}

type PartnerConfig struct {
	Name    string  `mapstructure:"name"`
	Percent float64 `mapstructure:"percent"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}
