package main

import (
	"github.com/breevs/roulette-backend/config"
	"github.com/breevs/roulette-backend/utils/logger"
)

func main() {
	cfg := config.Load()
	config.SetupDatabase(cfg.DatabaseURL) // connects + migrates
	logger.Info("Database migration completed successfully")
}
