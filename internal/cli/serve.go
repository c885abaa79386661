package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CosimoLM/InteligenciaArtificialV3/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Loads or trains the classification model, starts the background retrain
worker and serves the REST API until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if a.Config.JWTSecret == "" {
			return errors.New("JWT_SECRET is required to serve the API")
		}

		log := logger.Component("server")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveMigrate {
			if err := a.Migrate(ctx); err != nil {
				return err
			}
		}
		if err := a.InitClassification(ctx); err != nil {
			return err
		}

		a.Retrainer.Start(ctx)

		port := a.Config.Port
		if servePort != "" {
			port = servePort
		}
		e := a.Router()

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Str("port", port).Msg("http server listening")
			if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}

		stop()
		select {
		case <-a.Retrainer.Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("retrain worker did not stop in time")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}
