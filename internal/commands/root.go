package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexus-dev/nexus/internal/buildinfo"
	"github.com/nexus-dev/nexus/internal/config"
	"github.com/nexus-dev/nexus/internal/logger"
)

// app holds the settings resolved before any subcommand runs.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "nexus",
		Short:   "Banking transaction analytics",
		Long:    "Nexus cleans raw banking transactions, rejects inconsistent records, and reports branch volume, anomalies and customer lifetime value.",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+" when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(
		newAnalyzeCommand(a),
		newValidateCommand(a),
		newProfileCommand(),
		newDiagnosticsCommand(),
		newInitCommand(),
	)

	return rootCmd
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking for %s: %w", config.FileName, err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: logger.Format(cfg.Logging.Format),
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	if path != "" {
		log.Debug().Str("path", path).Msg("loaded config")
	}

	a.cfg = cfg
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
