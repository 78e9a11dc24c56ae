package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/internal/config"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "interceptor",
	Short: "Interceptor — ordered request filters in front of a target",
	Long: `Interceptor runs requests through an ordered chain of filters and then
hands them to a single target. Pipelines are declared in YAML; without a
config file the canonical authentication + debug pipeline is used.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "pipeline config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig returns the pipeline from --config, or the default pipeline.
// The config's log level applies unless -v was given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !verbose {
		level, err := config.ParseLevel(cfg.Settings.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}
	return cfg, nil
}

// openOutput resolves the configured output; the returned close func is
// always safe to call.
func openOutput(cmd *cobra.Command, output string) (io.Writer, func() error, error) {
	switch output {
	case "", config.DefaultOutput:
		return cmd.OutOrStdout(), func() error { return nil }, nil
	case "stderr":
		return cmd.ErrOrStderr(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output file: %w", err)
	}
	return f, f.Close, nil
}
