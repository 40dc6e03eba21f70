//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/uniedit/orderflow/internal/infra/config"
)

// InitializeDependencies builds the order backend graph from cfg.
func InitializeDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	panic(wire.Build(
		InfraSet,
		OutboundSet,
		ServiceSet,
		HandlerSet,
		wire.Struct(new(Dependencies), "*"),
	))
}
