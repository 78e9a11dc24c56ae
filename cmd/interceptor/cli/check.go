package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/config"
	"github.com/tkingovr/interceptor/internal/pipeline"
	"github.com/tkingovr/interceptor/internal/policy"
)

var (
	checkRequest string
	checkFilter  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run a policy filter without running the pipeline",
	Long: `Check what verdict a request would receive from a policy filter in the
config. Useful for testing and debugging policy rules.`,
	Example: `  interceptor check -c pipeline.yaml --request /admin/users
  interceptor check -c pipeline.yaml --filter guard --request Home`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkRequest, "request", "", "request to check")
	checkCmd.Flags().StringVar(&checkFilter, "filter", "", "name of the policy filter (default: first policy filter)")
	_ = checkCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config/-c is required for check command")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fc, err := findPolicyFilter(cfg, checkFilter)
	if err != nil {
		return err
	}

	engine, err := pipeline.NewPolicyEngine(fc.Options)
	if err != nil {
		return fmt.Errorf("creating policy engine: %w", err)
	}

	result, err := engine.Evaluate(cmd.Context(), &policy.EvalInput{Request: api.Request(checkRequest)})
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(api.CheckResponse{
		Verdict: result.Verdict,
		Rule:    result.Rule,
		Message: result.Message,
	})
}

func findPolicyFilter(cfg *config.Config, name string) (*config.FilterConfig, error) {
	for i := range cfg.Filters {
		fc := &cfg.Filters[i]
		if fc.Kind != "policy" {
			continue
		}
		if name == "" || fc.Name == name {
			return fc, nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("no policy filter named %q in config", name)
	}
	return nil, fmt.Errorf("config has no policy filter")
}
