//go:build wireinject
// +build wireinject

package di

import (
	"EdgeLab/pkg/config"
	"EdgeLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Data sources
		ProvidePriceProvider,
		ProvideRunStore,

		// Modelling
		ProvideClassifier,

		// Use cases
		ProvidePipeline,

		// HTTP surface
		ProvideRunsHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
