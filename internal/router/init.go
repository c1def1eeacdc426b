package router

import (
	"github.com/listora/listings-api/internal/application"
	"github.com/listora/listings-api/internal/container"
	pginfra "github.com/listora/listings-api/internal/infrastructure/postgres"
	handlers "github.com/listora/listings-api/internal/interface/http"
	"github.com/listora/listings-api/internal/router/modules"
)

// InitModules builds the application modules from container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	pub := container.GetRabbitPub()

	userRepo := pginfra.NewUserRepository(pool)
	listingRepo := pginfra.NewListingRepository(pool)

	authService := application.NewAuthService(userRepo, container.GetJWT(), logger, pub)
	listingService := application.NewListingService(listingRepo, container.GetRedis(), cfg.CacheTTL, logger, pub)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authService, logger)))
	r.Add(modules.NewListingModule(handlers.NewListingHandler(listingService, logger)))
}
