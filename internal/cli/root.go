// Package cli holds the cobra commands of the textapi binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/app"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/pkg/config"
	"github.com/CosimoLM/InteligenciaArtificialV3/pkg/logger"
)

type contextKey string

const appKey contextKey = "app"

var rootCmd = &cobra.Command{
	Use:           "textapi",
	Short:         "Text classification API",
	Long:          `textapi stores users and their texts and classifies each text by sentiment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd == cmd.Root() {
			return nil
		}

		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.IsDevelopment(),
			Service: "textapi",
		})

		a, err := app.New(cmd.Context(), cfg, logger.Get())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(appKey).(*app.App)
		if !ok {
			return nil
		}
		return a.Close(context.Background())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd, migrateCmd, retrainCmd, statsCmd, credentialsCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func appFromContext(ctx context.Context) (*app.App, error) {
	a, ok := ctx.Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return a, nil
}
