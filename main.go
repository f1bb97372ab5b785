package main

import (
	"flag"
	"log/slog"

	"github.com/platewatch/waste-console/app"
	"github.com/platewatch/waste-console/config"
)

func main() {
	cfgPath := flag.String("config", "waste-console.json", "path to the console configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, continuing with defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("PlateWatch Waste Console", 1100, 700, cfg, *cfgPath, logger)
	application.Start()
}
