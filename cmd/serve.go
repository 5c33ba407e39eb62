package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/trustdns/anchord/api"
	"github.com/trustdns/anchord/log"
	"github.com/trustdns/anchord/metrics"
	"github.com/trustdns/anchord/trustanchor"
)

const readHeaderTimeout = 20 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Loads the trust anchor store and serves the inspection API and metrics",
		RunE:  startServer,
	}
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	if cfg.API.Listen == "" {
		return errors.New("api.listen is not configured")
	}

	// collection must be running before Load publishes its events
	metrics.StartCollection()

	store := trustanchor.NewStore(cfg.TrustAnchors)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}

	router := chi.NewRouter()
	api.RegisterEndpoint(router, store)
	router.Handle("/metrics", metrics.Exporter())

	httpServer := &http.Server{
		Addr:              cfg.API.Listen,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		log.Log().Info("terminating...")

		_ = httpServer.Shutdown(context.Background())
	}()

	log.Log().Infof("inspection api available at http://%s/api/anchors", cfg.API.Listen)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
