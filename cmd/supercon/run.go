package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the supercon server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring supercon: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting supercon server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := app.NewAppState(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	if err := appState.Backend.Ping(ctx); err != nil {
		log.Warnf("annotation backend %s is not answering: %v", cfg.Backend.Server, err)
	}
	cancel()

	srv := server.Create(appState)
	setupSignalHandler(srv)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
}

// setupSignalHandler shuts the server down gracefully on termination
func setupSignalHandler(srv *http.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down the server: %v", err)
		}
	}()
}
