package main

import (
	"context"
	"errors"
	"eventual/internal/app"
	"eventual/internal/app/consumers"
	"eventual/internal/app/deps"
	"eventual/internal/app/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "eventual/internal/core/domain/logging"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the occurrence consumer",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(ctx, httpServer, deps, func() {
		shutdownConsumers()
		shutdownDeps()
	})
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("defaultLanguage", deps.DefaultLanguage),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	// SSE subscribers keep their connections open until the streams close.
	deps.SseServer.Close()
	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(context.Background(), "HTTP server has shutdowned.")
}
