package router

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
	handlers "github.com/oksasatya/geo-region-service/internal/interface/http"
	"github.com/oksasatya/geo-region-service/internal/interface/middleware"
	"github.com/oksasatya/geo-region-service/internal/router/modules"
)

// Deps are the infrastructure pieces the modules are built from. Redis and
// Cache may be nil; rate limiting and response caching are then disabled.
type Deps struct {
	Logger   *logrus.Logger
	Users    repository.UserRepository
	Regions  repository.RegionRepository
	Hasher   application.PasswordHasher
	Tokens   application.TokenIssuer
	Geocoder application.Geocoder
	Events   application.EventPublisher

	Redis    *redis.Client
	Cache    middleware.ResponseStore
	CacheTTL time.Duration

	// LoginRateLimit caps login and registration per client IP and route;
	// WriteRateLimit caps authenticated writes per user. Both per minute.
	LoginRateLimit int
	WriteRateLimit int
	Readiness      []handlers.ReadinessCheck
}

type userModuleDeps struct {
	Auth    *application.AuthUseCase
	Handler *handlers.UserHandler
}

func buildUserDeps(d Deps) userModuleDeps {
	auth := application.NewAuthUseCase(d.Users, d.Hasher, d.Tokens, d.Logger)
	geo := application.NewGeoLocationUseCase(d.Geocoder, d.Logger)

	handler := handlers.NewUserHandler(
		application.NewCreateUserUseCase(d.Users, auth, geo, d.Logger),
		application.NewUpdateUserUseCase(d.Users, auth, geo, d.Logger),
		application.NewDeleteUserUseCase(d.Users, d.Events, d.Logger),
		application.NewFindUserUseCase(d.Users),
		d.Logger,
	)
	return userModuleDeps{Auth: auth, Handler: handler}
}

func buildRegionHandler(d Deps) *handlers.RegionHandler {
	return handlers.NewRegionHandler(
		application.NewCreateRegionUseCase(d.Regions, d.Users, d.Events, d.Logger),
		application.NewUpdateRegionUseCase(d.Regions, d.Users),
		application.NewDeleteRegionUseCase(d.Regions, d.Events, d.Logger),
		application.NewFindRegionUseCase(d.Regions),
		d.Logger,
	)
}

// InitModules wires every module into the registry. Call it once at startup.
func InitModules(r *Registry, d Deps) {
	userDeps := buildUserDeps(d)
	authMW := middleware.Auth(d.Tokens, d.Users)
	cacheMW := middleware.ResponseCache(d.Cache, d.CacheTTL)
	publicLimiter := middleware.RateLimit(d.Redis, d.LoginRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	writeLimiter := middleware.RateLimit(d.Redis, d.WriteRateLimit, time.Minute, middleware.KeyByUserID(), nil)
	debugLimiter := middleware.RateLimit(d.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(2*time.Second, d.Readiness...)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userDeps.Auth), publicLimiter))
	r.Add(modules.NewUserModule(userDeps.Handler, authMW, cacheMW, publicLimiter, writeLimiter))
	r.Add(modules.NewRegionModule(buildRegionHandler(d), authMW, cacheMW, writeLimiter))
	r.Add(modules.NewDebugModule(debugLimiter))
}
