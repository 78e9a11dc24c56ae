package cli

import (
	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/internal/filter"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canonical pipeline on the request \"Home\"",
	Long: `Wire an authentication filter and a debug filter in front of a console
target, then send a single request through a client.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	manager := filter.NewManager(logger, filter.NewConsoleTarget(out))
	manager.RegisterFilter(filter.NewAuthenticationFilter(out))
	manager.RegisterFilter(filter.NewDebugFilter(out))

	client := filter.NewClient()
	client.SetManager(manager)
	client.Send(cmd.Context(), "Home")
	return nil
}
