package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/oksasatya/geo-region-service/config"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	pginfra "github.com/oksasatya/geo-region-service/internal/infrastructure/postgres"
	"github.com/oksasatya/geo-region-service/pkg/helpers"
)

// Seeds a demo user and one region around Praça da Sé, São Paulo. Running it
// twice reuses the existing user.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	regions := pginfra.NewRegionRepository(pool)

	email := "demo@example.com"
	password := "Demo_123"

	u, err := users.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to look up demo user: %v", err)
	}
	if u == nil {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		address := "Praça da Sé, São Paulo"
		u = &entity.User{
			Name:           "Demo User",
			Email:          email,
			HashedPassword: hash,
			Address:        &address,
			Coordinates:    &entity.Coordinates{Latitude: -23.5503, Longitude: -46.6339},
			IsActive:       true,
		}
		if err := users.Save(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)

	reg, err := entity.NewRegion("Sé", []entity.Ring{{
		{-46.6370, -23.5530},
		{-46.6310, -23.5530},
		{-46.6310, -23.5480},
		{-46.6370, -23.5480},
		{-46.6370, -23.5530},
	}}, u)
	if err != nil {
		log.Fatalf("invalid demo region: %v", err)
	}
	if err := regions.Save(ctx, reg); err != nil {
		log.Fatalf("failed to seed region: %v", err)
	}
	fmt.Printf("seeded region: id=%s name=%s\n", reg.ID, reg.Name)
}
