package cmd

import (
	"fmt"
	"os"

	"github.com/artomat/artomat/internal/gist"
	"github.com/artomat/artomat/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Work with the prompt history stored in the gist",
	}

	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryExportCmd())

	return cmd
}

func historyClient() (*gist.Client, error) {
	token := os.Getenv("GIST_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GIST_TOKEN environment variable is not set")
	}
	gistID := os.Getenv("GIST_ID")
	if gistID == "" {
		return nil, fmt.Errorf("GIST_ID environment variable is not set")
	}
	return gist.NewClient(token, gistID), nil
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the prompt history from the gist",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := historyClient()
			if err != nil {
				return err
			}

			records, err := client.History(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No prompts recorded yet.")
				return nil
			}

			for _, record := range records {
				fmt.Printf("%s  %s", record.GeneratedAt, record.Style)
				if record.ImageFile != "" {
					fmt.Printf("  [%s]", record.ImageFile)
				}
				fmt.Println()
			}
			fmt.Printf("\n%d prompts total\n", len(records))
			return nil
		},
	}
}

func newHistoryExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the prompt history to a JSONL or Parquet file",
		Example: `  artomat history export --output prompts.jsonl
  artomat history export --output prompts.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := historyClient()
			if err != nil {
				return err
			}

			records, err := client.History(cmd.Context())
			if err != nil {
				return err
			}

			if err := history.Export(records, output); err != nil {
				return err
			}

			fmt.Printf("Exported %d prompts to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "prompts.jsonl", "Export file path (.jsonl or .parquet)")

	return cmd
}
