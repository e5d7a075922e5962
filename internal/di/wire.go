//go:build wireinject
// +build wireinject

package di

import (
	"RiskDesk/pkg/config"
	"RiskDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideRiskParams,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideRedisCache,

		// Repositories
		ProvideBarProvider,
		ProvideBarStore,
		ProvidePortfolioStore,
		ProvideLivePrices,
		ProvideBundlePublisher,
		ProvidePriceStream,

		// Use cases
		ProvideBundleUseCase,
		ProvidePortfolioUseCase,
		ProvidePriceCollector,

		// HTTP and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
