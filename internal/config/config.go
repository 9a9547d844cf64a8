package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for a generation run. Everything comes
// from environment variables; the generate command may override the file
// paths and toggles with flags.
type Config struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIModel  string
	OllamaModel  string
	ImageModel   string

	GistToken string
	GistID    string

	SkipImageGeneration bool

	ImageRetryMaxAttempts  int
	ImageRetryInitialDelay time.Duration

	StylesFile string
	OutputDir  string
}

// Load reads the configuration from environment variables. The .env file,
// if any, has already been loaded by the root command. Callers apply any
// flag overrides and then Validate.
func Load() *Config {
	cfg := &Config{
		Provider:     os.Getenv("PROVIDER"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		OllamaModel:  os.Getenv("OLLAMA_MODEL"),
		ImageModel:   os.Getenv("IMAGE_MODEL"),
		GistToken:    os.Getenv("GIST_TOKEN"),
		GistID:       os.Getenv("GIST_ID"),
		StylesFile:   os.Getenv("STYLES_FILE"),
		OutputDir:    os.Getenv("OUTPUT_DIR"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash-exp"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o"
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "mistral-small3.2:24b"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "imagen-3.0-generate-001"
	}
	if cfg.StylesFile == "" {
		cfg.StylesFile = "art_styles.json"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "images"
	}

	cfg.SkipImageGeneration = strings.EqualFold(os.Getenv("SKIP_IMAGE_GENERATION"), "true")

	if attempts, err := strconv.Atoi(os.Getenv("IMAGE_RETRY_MAX_ATTEMPTS")); err == nil && attempts > 0 {
		cfg.ImageRetryMaxAttempts = attempts
	} else {
		cfg.ImageRetryMaxAttempts = 4
	}

	if delay, err := strconv.Atoi(os.Getenv("IMAGE_RETRY_INITIAL_DELAY_SECONDS")); err == nil && delay > 0 {
		cfg.ImageRetryInitialDelay = time.Duration(delay) * time.Second
	} else {
		cfg.ImageRetryInitialDelay = 2 * time.Second
	}

	return cfg
}

// Validate checks the required fields for a generation run.
func (c *Config) Validate() error {
	if c.GistToken == "" {
		return fmt.Errorf("GIST_TOKEN environment variable is not set")
	}
	if c.GistID == "" {
		return fmt.Errorf("GIST_ID environment variable is not set")
	}
	// The Gemini key is needed for concept text when gemini is the provider,
	// and for image rendering whenever images are enabled.
	if c.GeminiAPIKey == "" && (c.Provider == "gemini" || !c.SkipImageGeneration) {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
