package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	vaulthttp "github.com/MKhiriev/go-cred-vault/internal/handler/http"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/server"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("backend", cfg.Storage.Backend).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := context.Background()
	documents, err := store.NewDocumentStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating document store")
	}
	defer func() {
		if err = documents.Close(context.Background()); err != nil {
			log.Err(err).Msg("error closing document store")
		}
	}()

	if err = documents.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("error pinging document store")
	}
	log.Info().Msg("pinged the document store, connection is healthy")

	services := service.NewServices(documents, cfg, log)
	handler := vaulthttp.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
