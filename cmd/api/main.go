package main

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/config"
	dbpkg "github.com/parlourbd/parlour-server/internal/db"
	"github.com/parlourbd/parlour-server/internal/logging"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/payments"
	"github.com/parlourbd/parlour-server/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	db, err := dbpkg.New(cfg)
	if err != nil {
		// keep listening without a store; data routes answer 503
		log.Error().Err(err).Msg("database setup failed, serving without store")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, db, cfg, log, payments.NewStripeGateway(cfg.StripeSecret))

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
