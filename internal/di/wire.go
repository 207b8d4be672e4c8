//go:build wireinject
// +build wireinject

package di

import (
	"BitSense/pkg/config"
	"BitSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Snapshots and upstream feed
		ProvideSnapshotStore,
		ProvideFeed,

		// Use cases
		ProvideRefresher,

		// Board surface
		ProvideStream,
		ProvideBoardHandler,
		ProvideServer,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
