package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/ontime/internal/adapter"
	"github.com/MKhiriev/ontime/internal/client"
	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const tokenEnv = "ONTIME_TOKEN"

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("ontime", flag.ContinueOnError)
	address := fs.String("a", "", "server address (host:port or URL)")
	token := fs.String("t", os.Getenv(tokenEnv), "bearer token, defaults to $"+tokenEnv)
	verbose := fs.Bool("v", false, "verbose logging")
	showVersion := fs.Bool("version", false, "print build info and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return 0
	}

	log := logger.NewConsoleLogger("ontime-client", *verbose)

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}
	if *address != "" {
		cfg.Adapter.HTTPAddress = *address
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		return 1
	}
	serverAdapter.SetToken(*token)

	app := client.NewApp(serverAdapter, os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, fs.Args())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, client.ErrNoCommand), errors.Is(err, client.ErrUnknownCommand), errors.Is(err, client.ErrUsage):
		fmt.Fprintf(os.Stderr, "%v\nusage: ontime [-a addr] [-t token] [-v] <command> [args]\n", err)
		app.Usage(os.Stderr)
		return 2
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}
