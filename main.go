package main

import (
	"fmt"
	"os"

	"github.com/evinas93/Fuji-PoS-sub001/configs"
	"github.com/evinas93/Fuji-PoS-sub001/middlewares"
	"github.com/evinas93/Fuji-PoS-sub001/pkg/logger"
	"github.com/evinas93/Fuji-PoS-sub001/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	logger.Init(os.Getenv("GIN_MODE") != "release")

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate + seed
	configs.SetupDatabase()
	if err := configs.SeedAdmin(); err != nil {
		logger.L().Fatal().Err(err).Msg("seed admin")
	}
	if err := configs.SeedTables(); err != nil {
		logger.L().Fatal().Err(err).Msg("seed tables")
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.L().Info().Str("addr", addr).Msg("server running")
	if err := r.Run(addr); err != nil {
		logger.L().Fatal().Err(err).Msg("server stopped")
	}
}
