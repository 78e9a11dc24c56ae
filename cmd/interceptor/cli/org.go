package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/internal/org"
)

var orgFile string

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Print an organisation chart",
	Long: `Print an organisation chart and its total salary. The chart is read from
--file (YAML) or, without it, a built-in sample is used.`,
	Args: cobra.NoArgs,
	RunE: runOrg,
}

func init() {
	orgCmd.Flags().StringVarP(&orgFile, "file", "f", "", "org chart file (YAML)")
	rootCmd.AddCommand(orgCmd)
}

func runOrg(cmd *cobra.Command, args []string) error {
	root := org.DefaultChart()
	if orgFile != "" {
		var err error
		root, err = org.Load(orgFile)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, root)
	fmt.Fprintf(out, "total salary: %d\n", root.TotalSalary())
	return nil
}
