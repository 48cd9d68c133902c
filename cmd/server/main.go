package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/jablog/internal/buildinfo"
	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server"
	"github.com/dmitrijs2005/jablog/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel)
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "error", err)
		os.Exit(1)
	}
}
