package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkingovr/interceptor/internal/factory"
)

var factoryCmd = &cobra.Command{
	Use:   "factory [FAMILY KIND]...",
	Short: "Create shapes and colors through the abstract factory",
	Long: `Create products by family (SHAPE or COLOR) and kind, and let each product
render itself. With no arguments every shape and color is produced.`,
	Example: `  interceptor factory
  interceptor factory SHAPE CIRCLE COLOR BLUE`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args)%2 != 0 {
			return fmt.Errorf("expected FAMILY KIND pairs, got %d arguments", len(args))
		}
		return nil
	},
	RunE: runFactory,
}

func init() {
	rootCmd.AddCommand(factoryCmd)
}

func runFactory(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{
			factory.ChoiceShape, "CIRCLE",
			factory.ChoiceShape, "RECTANGLE",
			factory.ChoiceShape, "SQUARE",
			factory.ChoiceColor, "BLUE",
			factory.ChoiceColor, "RED",
			factory.ChoiceColor, "GREEN",
		}
	}

	out := cmd.OutOrStdout()
	for i := 0; i < len(args); i += 2 {
		family, kind := args[i], args[i+1]
		f, err := factory.Producer(family)
		if err != nil {
			return err
		}
		switch family {
		case factory.ChoiceShape:
			shape, err := f.Shape(kind)
			if err != nil {
				return err
			}
			shape.Draw(out)
		case factory.ChoiceColor:
			color, err := f.Color(kind)
			if err != nil {
				return err
			}
			color.Fill(out)
		}
	}
	return nil
}
