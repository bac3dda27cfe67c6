package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/timemachine/internal/buildinfo"
	"github.com/dmitrijs2005/timemachine/internal/client/cli"
	"github.com/dmitrijs2005/timemachine/internal/client/client"
	"github.com/dmitrijs2005/timemachine/internal/client/config"
	"github.com/dmitrijs2005/timemachine/internal/client/services"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if err := run(context.Background(), config.LoadConfig()); err != nil {
		log.Fatal(err)
	}

}

// run wires the client and serves the REPL. Everything it opens is closed
// before it returns.
func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	transport, err := client.NewHTTPTransport(client.HTTPTransportConfig{
		ServerURL: cfg.ServerURL,
		Timeout:   cfg.RequestTimeout,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	api := client.NewAPIClient(transport)

	session := services.NewSession(db, logger)
	view := services.NewViewState(api, session, logger)
	auth := services.NewAuthFlow(api, session, view, logger)

	app := cli.NewApp(auth, view, session, logger, os.Stdin, os.Stdout)
	app.Run(ctx)

	return nil
}
