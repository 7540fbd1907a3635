package main

import (
	"github.com/placementcell/placement_service/config"
	"github.com/placementcell/placement_service/internal/api"
	"github.com/placementcell/placement_service/internal/logger"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	api.StartServer(cfg)
}
