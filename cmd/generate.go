package cmd

import (
	"fmt"

	"github.com/artomat/artomat/internal/artwork"
	"github.com/artomat/artomat/internal/config"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var stylesFile string
	var outputDir string
	var style string
	var provider string
	var model string
	var skipImage bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the art generation pipeline once",
		Long: `Picks a random art style, generates a detailed art concept prompt with the
configured LLM provider, saves the prompt to the configured gist, and renders
the concept into a PNG unless image generation is disabled.

A failed image render is not fatal: the prompt has already been archived in
the gist and the run still succeeds.`,
		Example: `  # Full run: prompt plus image
  artomat generate

  # Prompt only
  artomat generate --skip-image

  # Force a specific style instead of a random pick
  artomat generate --style "Art Nouveau"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if stylesFile != "" {
				cfg.StylesFile = stylesFile
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if provider != "" {
				cfg.Provider = provider
			}
			if skipImage {
				cfg.SkipImageGeneration = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc, err := artwork.NewService(cfg)
			if err != nil {
				return err
			}

			record, err := svc.Run(cmd.Context(), artwork.RunOptions{Style: style, Model: model})
			if err != nil {
				return err
			}

			fmt.Printf("Art Style: %s\n", record.Style)
			fmt.Printf("Prompt:    %s\n", record.GistURL)
			if record.ImageFile != "" {
				fmt.Printf("Image:     %s\n", record.ImageFile)
			} else {
				fmt.Println("Image:     not generated (use the prompt with external tools)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stylesFile, "styles-file", "", "Path to the art style catalog (JSON or YAML)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for generated images and metadata")
	cmd.Flags().StringVar(&style, "style", "", "Use this style instead of a random pick")
	cmd.Flags().StringVar(&provider, "provider", "", "Concept text provider: gemini, openai, or ollama")
	cmd.Flags().StringVar(&model, "model", "", "Concept model, overriding the provider's configured model")
	cmd.Flags().BoolVar(&skipImage, "skip-image", false, "Skip image generation, archive the prompt only")

	return cmd
}
