//go:build wireinject
// +build wireinject

package di

import (
	"aurora/internal"
	"aurora/internal/backends"
	"aurora/internal/controllers"
	"aurora/internal/providers"
	"aurora/internal/scheduler"
	"aurora/internal/services"
	"aurora/internal/storage"
	"aurora/internal/structures"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewQuarantine,
		storage.NewCredentialStore,
		storage.NewAlertLog,

		services.NewRateLimiter,
		services.NewSessionService,
		services.NewRoleGate,
		services.NewAuthService,
		services.NewContactService,
		services.NewAlertService,

		backends.NewRegistry,
		scheduler.NewScheduler,

		controllers.NewAlertController,
		controllers.NewAuthController,
		controllers.NewPanelController,
		controllers.NewTrustedController,
		controllers.NewBackendController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
