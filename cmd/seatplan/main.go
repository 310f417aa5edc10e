// Command seatplan seats groups in venues with social-distancing rules and
// serves the same engine over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"svw.info/seatplan/internal/config"
	"svw.info/seatplan/internal/evaluate"
	"svw.info/seatplan/internal/infrastructure/storage"
	"svw.info/seatplan/internal/usecase"
	"svw.info/seatplan/internal/validator"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "seatplan",
		Short:         "Seat groups in a venue while keeping them apart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			a.cfg = cfg
			a.logger = config.NewLogger(cfg.Log.Level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML or JSON config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newServeCmd(a), newSolveCmd(a), newSuggestCmd(a), newRunsCmd(a))
	return root
}

// service wires the configured ports. The returned store must be closed.
func (a *app) service() (*usecase.Service, storage.Store, error) {
	st, err := storage.Open(a.cfg.Storage.Driver, a.cfg.Storage.Path, a.logger.With("component", "storage"))
	if err != nil {
		return nil, nil, err
	}
	uc := usecase.NewService(evaluate.New(), validator.New(), st, a.cfg.Suggest, a.logger)
	return uc, st, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seatplan:", err)
		os.Exit(1)
	}
}
