// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"iqamah_backend/internal/app"
	"iqamah_backend/internal/auth"
	"iqamah_backend/internal/config"
	"iqamah_backend/internal/platform/database"
	"iqamah_backend/internal/platform/logger"
	"iqamah_backend/internal/prayer"
	"iqamah_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Repositories
		user.NewGORMRepository,
		prayer.NewGORMRepository,

		// Auth
		auth.NewJWTService,
		auth.NewGoogleVerifier,
		auth.NewService,
		auth.NewHandler,

		// Prayer
		prayer.NewService,
		prayer.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
