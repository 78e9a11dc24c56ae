package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/config"
	"github.com/tkingovr/interceptor/internal/filter"
	"github.com/tkingovr/interceptor/internal/metrics"
	"github.com/tkingovr/interceptor/internal/pipeline"
)

var sendMetrics bool

var sendCmd = &cobra.Command{
	Use:   "send [requests...]",
	Short: "Send requests through the configured pipeline",
	Long: `Build the pipeline from --config (or the default pipeline) and send each
request through it in order. With no arguments a single "Home" request is sent.`,
	Example: `  interceptor send Home About
  interceptor send -c pipeline.yaml --metrics /admin/users`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendMetrics, "metrics", false, "print pipeline metrics after sending")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg.Settings.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	deps := pipeline.Deps{Out: out, Logger: logger}
	if sendMetrics {
		deps.Metrics = metrics.NewCollector()
	}

	manager, err := pipeline.Build(cfg, deps)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	client := filter.NewClient()
	client.SetManager(manager)

	if len(args) == 0 {
		args = []string{config.DefaultRequest}
	}
	logger.Info("sending requests",
		slog.Int("count", len(args)),
		slog.String("config", cfgFile),
	)
	for _, req := range args {
		client.Send(cmd.Context(), api.Request(req))
	}

	if deps.Metrics != nil {
		return deps.Metrics.WriteText(cmd.OutOrStdout())
	}
	return nil
}
