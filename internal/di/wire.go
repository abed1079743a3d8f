//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/yigiitcoskun/us-economic-insights/pkg/config"
	"github.com/yigiitcoskun/us-economic-insights/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideCatalog,

		// Infrastructure clients
		ProvideFredClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideSeriesFetcher,
		ProvideClickHouseStore,
		ProvideKafkaPublisher,
		ProvideReportSinks,

		// Domain + use cases
		ProvideAnalyzer,
		ProvideAnalysisUseCase,

		// HTTP + application server
		ProvideAnalysisHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
