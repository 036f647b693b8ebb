package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/client"
	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/tui"
	"github.com/MKhiriev/go-todo-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		memguard.SafeExit(1)
	}

	log := logger.NewClientLogger("todo-client", cfg.App.LogFile)
	log.Info().Str("build", buildInfo.String()).Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("create local storage")
		memguard.SafeExit(1)
	}
	defer storages.Close()

	relay, err := adapter.NewEmailJSRelay(cfg.Feedback, log)
	if err != nil {
		if !errors.Is(err, adapter.ErrRelayNotConfigured) {
			log.Error().Err(err).Msg("create feedback relay")
			memguard.SafeExit(1)
		}
		log.Info().Msg("feedback relay disabled, feedback is kept locally")
	}

	keys := crypto.NewKeyChainService(crypto.WithFingerprintKey(cfg.App.FingerprintKey))
	services := service.NewClientServices(storages, relay, keys, cfg.App.AutoLockTimeout, log)

	app := client.NewApp(services, tui.New(services, buildInfo, log), log)
	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		storages.Close()
		memguard.SafeExit(1)
	}
}
