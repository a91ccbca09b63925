package config

import (
	"strings"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration is the full application configuration loaded from
// config.yaml and environment variables.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Shop       ShopConfig       `mapstructure:"shop"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" default:"local"`
}

type LoggingConfig struct {
	Level          types.LogLevel `mapstructure:"level" default:"info"`
	FluentdEnabled bool           `mapstructure:"fluentd_enabled"`
	FluentdHost    string         `mapstructure:"fluentd_host"`
	FluentdPort    int            `mapstructure:"fluentd_port"`
}

// ShopConfig carries the physical shop's billing settings. Revenue bucketing
// uses the shop timezone; all amounts are in the shop currency.
type ShopConfig struct {
	Timezone            string          `mapstructure:"timezone" default:"UTC"`
	Currency            string          `mapstructure:"currency" default:"eur"`
	DefaultInsuranceFee decimal.Decimal `mapstructure:"default_insurance_fee"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" default:"true"`
}

// NewConfig loads configuration from .env, config.yaml, and the environment.
func NewConfig() (*Configuration, error) {
	v := viper.New()

	// Load .env if present; environment variables win over file values.
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CYCLOHIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.RunModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("shop.timezone", "UTC")
	v.SetDefault("shop.currency", "eur")
	v.SetDefault("shop.default_insurance_fee", types.DefaultInsuranceFee.String())
	v.SetDefault("cache.enabled", true)
}

// Validate checks config invariants.
func (c *Configuration) Validate() error {
	if err := types.ValidateTimezone(c.Shop.Timezone); err != nil {
		return err
	}
	if c.Shop.Currency == "" {
		return ierr.NewError("shop currency is required").
			WithHint("Shop currency must be a valid ISO currency code").
			Mark(ierr.ErrValidation)
	}
	if c.Shop.DefaultInsuranceFee.IsNegative() {
		return ierr.NewError("default insurance fee cannot be negative").
			WithHint("Default insurance fee must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.RunModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Shop: ShopConfig{
			Timezone:            "UTC",
			Currency:            "eur",
			DefaultInsuranceFee: types.DefaultInsuranceFee,
		},
		Cache: CacheConfig{Enabled: true},
	}
}
