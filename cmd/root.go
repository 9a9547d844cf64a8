package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artomat",
		Short: "Art prompt and image generator backed by Gemini and a GitHub gist",
		Long: `Artomat picks a random art style, asks an LLM to expand it into a detailed
art concept prompt, archives the prompt in a GitHub gist, and optionally renders
the concept into a PNG with an image generation model.

Each invocation is a single independent run; prompt history lives in the gist
and generated images live in a local output directory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newStylesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
