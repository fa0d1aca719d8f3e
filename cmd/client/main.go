package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/avorobjovs/demoboard/internal/client/cli"
	"github.com/avorobjovs/demoboard/internal/client/config"
	"github.com/avorobjovs/demoboard/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
