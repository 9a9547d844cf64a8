package artwork

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/artomat/artomat/internal/config"
	"github.com/artomat/artomat/internal/gallery"
	"github.com/artomat/artomat/internal/gemini"
	"github.com/artomat/artomat/internal/gist"
	"github.com/artomat/artomat/internal/models"
	"github.com/artomat/artomat/internal/ollama"
	"github.com/artomat/artomat/internal/openai"
	"github.com/artomat/artomat/internal/providers"
	"github.com/artomat/artomat/internal/styles"
)

const timestampLayout = "2006-01-02 15:04:05 UTC"

// ImageGenerator renders a prompt into raw image bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model, prompt string) ([]byte, error)
}

// PromptStore persists a prompt record remotely and returns its public URL.
type PromptStore interface {
	SavePrompt(ctx context.Context, record models.PromptRecord, noteFilename string) (string, error)
}

// Service runs the generation pipeline: pick a style, expand it into a
// concept, persist the prompt, render the image.
type Service struct {
	cfg    *config.Config
	text   providers.Provider
	images ImageGenerator
	store  PromptStore
	now    func() time.Time
}

// RunOptions tweaks a single run.
type RunOptions struct {
	// Style bypasses the random catalog pick when non-empty.
	Style string
	// Model overrides the provider's configured concept model when non-empty.
	Model string
}

// NewService wires a service from the configuration.
func NewService(cfg *config.Config) (*Service, error) {
	text, err := textProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:    cfg,
		text:   text,
		images: gemini.New(),
		store:  gist.NewClient(cfg.GistToken, cfg.GistID),
		now:    time.Now,
	}, nil
}

func textProvider(name string) (providers.Provider, error) {
	switch name {
	case "gemini":
		return gemini.New(), nil
	case "openai":
		return openai.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

func (s *Service) textModel() string {
	switch s.cfg.Provider {
	case "openai":
		return s.cfg.OpenAIModel
	case "ollama":
		return s.cfg.OllamaModel
	default:
		return s.cfg.GeminiModel
	}
}

// Run executes the pipeline once. Configuration, concept generation, and
// gist persistence failures are fatal; image rendering failures degrade to
// a prompt-only run.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*models.PromptRecord, error) {
	style := opts.Style
	if style == "" {
		catalog, err := styles.Load(s.cfg.StylesFile)
		if err != nil {
			return nil, err
		}
		style = catalog.Pick()
	}
	slog.Info("Selected art style", "style", style)

	model := opts.Model
	if model == "" {
		model = s.textModel()
	}
	concept, err := s.text.GenerateText(ctx, providers.Config{
		Model:       model,
		Temperature: 0.9,
		Prompt:      buildConceptPrompt(style),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate art concept: %w", err)
	}
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, fmt.Errorf("provider returned an empty art concept")
	}
	slog.Info("Generated art concept", "style", style, "chars", len(concept))

	ts := s.now().UTC()
	record := models.PromptRecord{
		Style:       style,
		Concept:     concept,
		GeneratedAt: ts.Format(timestampLayout),
		Model:       model,
	}

	noteFilename := fmt.Sprintf("art_prompt_%s.md", ts.Format("20060102_150405"))
	gistURL, err := s.store.SavePrompt(ctx, record, noteFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to save prompt to gist: %w", err)
	}
	record.GistURL = gistURL
	slog.Info("Prompt saved to gist", "url", gistURL)

	if s.cfg.SkipImageGeneration {
		slog.Info("Skipping image generation", "reason", "SKIP_IMAGE_GENERATION=true")
		return &record, nil
	}

	data, err := s.renderWithRetry(ctx, concept)
	if err != nil {
		slog.Warn("Image generation failed, continuing with prompt only", "err", err)
		return &record, nil
	}

	writer := gallery.NewWriter(s.cfg.OutputDir)
	imageFile := ts.Format("20060102150405") + ".png"
	imagePath, err := writer.WriteImage(imageFile, data)
	if err != nil {
		slog.Warn("Failed to write image, continuing with prompt only", "err", err)
		return &record, nil
	}
	record.ImageFile = imageFile
	slog.Info("Image saved", "path", imagePath)

	if metaPath, err := writer.WriteMetadata(record); err != nil {
		slog.Warn("Failed to write metadata sidecar", "err", err)
	} else {
		slog.Info("Metadata saved", "path", metaPath)
	}

	return &record, nil
}

func buildConceptPrompt(style string) string {
	return fmt.Sprintf(`You are an expert art director and creative visionary. Generate a highly detailed and evocative art concept prompt in the style of "%s".

Your prompt should be rich with:
- Visual details (colors, textures, composition, lighting)
- Mood and atmosphere
- Specific artistic techniques characteristic of %s
- Subject matter that exemplifies this style
- Technical specifications (perspective, proportions, medium details)

The prompt should be 150-250 words and be specific enough that an AI image generator can create a high-quality, authentic representation of %s.

Format your response as a single, flowing paragraph without any headers or meta-commentary. Begin directly with the art concept description.`, style, style, style)
}
