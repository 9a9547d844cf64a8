package cmd

import (
	"fmt"
	"os"

	"github.com/artomat/artomat/internal/styles"
	"github.com/spf13/cobra"
)

func newStylesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Inspect the art style catalog",
	}

	cmd.AddCommand(newStylesListCmd())
	cmd.AddCommand(newStylesPickCmd())

	return cmd
}

func stylesFilePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("STYLES_FILE"); path != "" {
		return path
	}
	return "art_styles.json"
}

func newStylesListCmd() *cobra.Command {
	var stylesFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every style in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := styles.Load(stylesFilePath(stylesFile))
			if err != nil {
				return err
			}
			for _, style := range catalog.Styles {
				fmt.Println(style)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stylesFile, "styles-file", "", "Path to the art style catalog (JSON or YAML)")

	return cmd
}

func newStylesPickCmd() *cobra.Command {
	var stylesFile string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print a random style from the catalog",
		Example: `  # Random pick
  artomat styles pick

  # Reproducible pick
  artomat styles pick --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := styles.Load(stylesFilePath(stylesFile))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				fmt.Println(catalog.PickSeeded(seed))
			} else {
				fmt.Println(catalog.Pick())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stylesFile, "styles-file", "", "Path to the art style catalog (JSON or YAML)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible pick")

	return cmd
}
