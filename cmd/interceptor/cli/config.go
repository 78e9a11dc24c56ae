package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved pipeline configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}

		r := pipeline.NewRegistry()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# filter kinds: %s\n", strings.Join(r.FilterKinds(), ", "))
		fmt.Fprintf(out, "# target kinds: %s\n", strings.Join(r.TargetKinds(), ", "))
		_, err = out.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
