package bootstrap

import (
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	access, refresh, err := cfg.JWT.Durations()
	if err != nil {
		return nil, err
	}
	return jwt.NewService(cfg.JWT.Secret, access, refresh), nil
}
