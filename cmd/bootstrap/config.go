package bootstrap

import (
	"fmt"

	"shareit/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
	),
)

// LoadConfig fails startup on settings that would otherwise surface on the first request.
func LoadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg config.Config) error {
	access, refresh, err := cfg.JWT.Durations()
	if err != nil {
		return err
	}
	if access <= 0 || refresh <= access {
		return fmt.Errorf("refresh token duration %s must exceed access token duration %s", refresh, access)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs RPS > 0 and burst >= 1, got %v/%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace is required when metrics are enabled")
	}
	return nil
}
