package cache_fx

import (
	"go.uber.org/fx"

	"fitplan/internal/infra"
)

var Module = fx.Provide(infra.InitRedis)
