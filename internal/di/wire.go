//go:build wireinject
// +build wireinject

package di

import (
	"TermPulse/pkg/config"
	"TermPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideStream,
		ProvidePublisher,

		// Quote pipeline
		ProvideQuoteProvider,
		ProvideFetcher,
		ProvideOpenInterest,

		// Use cases
		ProvideAnalyzer,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
