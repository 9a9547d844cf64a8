package artwork

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artomat/artomat/internal/config"
	"github.com/artomat/artomat/internal/models"
	"github.com/artomat/artomat/internal/providers"
)

type fakeTextProvider struct {
	response string
	err      error
	prompt   string
	model    string
}

func (f *fakeTextProvider) GenerateText(ctx context.Context, cfg providers.Config) (string, error) {
	f.prompt = cfg.Prompt
	f.model = cfg.Model
	return f.response, f.err
}

type fakePromptStore struct {
	saved        []models.PromptRecord
	noteFilename string
	err          error
}

func (f *fakePromptStore) SavePrompt(ctx context.Context, record models.PromptRecord, noteFilename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, record)
	f.noteFilename = noteFilename
	return "https://gist.github.com/tester/abc123#" + noteFilename, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 25, 12, 30, 45, 0, time.UTC)
}

func testService(t *testing.T, text *fakeTextProvider, gen *fakeImageGen, store *fakePromptStore) *Service {
	t.Helper()
	return &Service{
		cfg: &config.Config{
			Provider:               "gemini",
			GeminiModel:            "gemini-2.0-flash-exp",
			ImageModel:             "imagen-test",
			ImageRetryMaxAttempts:  2,
			ImageRetryInitialDelay: time.Second,
			OutputDir:              filepath.Join(t.TempDir(), "images"),
		},
		text:   text,
		images: gen,
		store:  store,
		now:    fixedNow,
	}
}

func TestRunFullPipeline(t *testing.T) {
	captureSleeps(t)

	text := &fakeTextProvider{response: "A luminous riverside scene rendered in sweeping organic curves."}
	gen := &fakeImageGen{results: []fakeImageResult{{data: []byte("png-bytes")}}}
	store := &fakePromptStore{}
	svc := testService(t, text, gen, store)

	record, err := svc.Run(context.Background(), RunOptions{Style: "Art Nouveau"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if record.Style != "Art Nouveau" {
		t.Errorf("Unexpected style: %s", record.Style)
	}
	if record.Concept != text.response {
		t.Errorf("Unexpected concept: %q", record.Concept)
	}
	if record.GeneratedAt != "2026-08-25 12:30:45 UTC" {
		t.Errorf("Unexpected timestamp: %s", record.GeneratedAt)
	}
	if store.noteFilename != "art_prompt_20260825_123045.md" {
		t.Errorf("Unexpected note filename: %s", store.noteFilename)
	}
	if record.GistURL == "" {
		t.Error("Expected gist URL on record")
	}
	if record.ImageFile != "20260825123045.png" {
		t.Errorf("Unexpected image file: %s", record.ImageFile)
	}

	imagePath := filepath.Join(svc.cfg.OutputDir, record.ImageFile)
	data, err := os.ReadFile(imagePath)
	if err != nil {
		t.Fatalf("Expected image on disk: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Unexpected image contents: %q", data)
	}

	metaPath := filepath.Join(svc.cfg.OutputDir, "20260825123045_metadata.json")
	if _, err := os.Stat(metaPath); err != nil {
		t.Errorf("Expected metadata sidecar on disk: %v", err)
	}
}

func TestRunSkipsImageWhenDisabled(t *testing.T) {
	text := &fakeTextProvider{response: "A cathedral of raw concrete under flat grey light."}
	gen := &fakeImageGen{results: []fakeImageResult{{data: []byte("png-bytes")}}}
	store := &fakePromptStore{}
	svc := testService(t, text, gen, store)
	svc.cfg.SkipImageGeneration = true

	record, err := svc.Run(context.Background(), RunOptions{Style: "Brutalism"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gen.calls != 0 {
		t.Errorf("Expected no image generation calls, got %d", gen.calls)
	}
	if record.ImageFile != "" {
		t.Errorf("Expected no image file, got %s", record.ImageFile)
	}
	if len(store.saved) != 1 {
		t.Fatalf("Expected prompt saved to store, got %d records", len(store.saved))
	}
}

func TestRunDegradesWhenImageFails(t *testing.T) {
	text := &fakeTextProvider{response: "Flat planes of color stacked into a harbor at dusk."}
	gen := &fakeImageGen{results: []fakeImageResult{{err: errors.New("model not available")}}}
	store := &fakePromptStore{}
	svc := testService(t, text, gen, store)

	record, err := svc.Run(context.Background(), RunOptions{Style: "Color Field"})
	if err != nil {
		t.Fatalf("Expected graceful degradation, got error: %v", err)
	}

	if record.ImageFile != "" {
		t.Errorf("Expected no image file, got %s", record.ImageFile)
	}
	if record.GistURL == "" {
		t.Error("Expected the prompt to have been persisted before the image step")
	}

	// Nothing should have been written to the output directory.
	matches, _ := filepath.Glob(filepath.Join(svc.cfg.OutputDir, "*"))
	if len(matches) != 0 {
		t.Errorf("Expected empty output dir, found %v", matches)
	}
}

func TestRunFailsOnEmptyConcept(t *testing.T) {
	text := &fakeTextProvider{response: "   \n"}
	store := &fakePromptStore{}
	svc := testService(t, text, &fakeImageGen{results: []fakeImageResult{{}}}, store)

	if _, err := svc.Run(context.Background(), RunOptions{Style: "Ukiyo-e"}); err == nil {
		t.Fatal("Expected error for empty concept, got nil")
	}
	if len(store.saved) != 0 {
		t.Error("Expected nothing persisted on concept failure")
	}
}

func TestRunFailsWhenGistSaveFails(t *testing.T) {
	text := &fakeTextProvider{response: "A concept."}
	store := &fakePromptStore{err: errors.New("401 bad credentials")}
	gen := &fakeImageGen{results: []fakeImageResult{{data: []byte("png-bytes")}}}
	svc := testService(t, text, gen, store)

	if _, err := svc.Run(context.Background(), RunOptions{Style: "Ukiyo-e"}); err == nil {
		t.Fatal("Expected error when gist save fails, got nil")
	}
	if gen.calls != 0 {
		t.Error("Expected no image generation after persistence failure")
	}
}

func TestRunPicksStyleFromCatalog(t *testing.T) {
	dir := t.TempDir()
	stylesFile := filepath.Join(dir, "styles.json")
	if err := os.WriteFile(stylesFile, []byte(`{"art_styles": ["Fauvism"]}`), 0644); err != nil {
		t.Fatalf("Failed to write styles file: %v", err)
	}

	text := &fakeTextProvider{response: "Wild brushwork in saturated vermilion and green."}
	store := &fakePromptStore{}
	svc := testService(t, text, &fakeImageGen{results: []fakeImageResult{{data: []byte("png")}}}, store)
	svc.cfg.StylesFile = stylesFile
	svc.cfg.SkipImageGeneration = true

	record, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record.Style != "Fauvism" {
		t.Errorf("Expected style from catalog, got %s", record.Style)
	}
}

func TestRunFailsOnMissingCatalog(t *testing.T) {
	text := &fakeTextProvider{response: "A concept."}
	svc := testService(t, text, &fakeImageGen{results: []fakeImageResult{{}}}, &fakePromptStore{})
	svc.cfg.StylesFile = filepath.Join(t.TempDir(), "missing.json")

	if _, err := svc.Run(context.Background(), RunOptions{}); err == nil {
		t.Fatal("Expected error for missing catalog, got nil")
	}
}

func TestRunUsesModelOverride(t *testing.T) {
	text := &fakeTextProvider{response: "A concept in careful detail."}
	store := &fakePromptStore{}
	svc := testService(t, text, &fakeImageGen{results: []fakeImageResult{{data: []byte("png")}}}, store)
	svc.cfg.SkipImageGeneration = true

	record, err := svc.Run(context.Background(), RunOptions{Style: "Bauhaus", Model: "gemini-exp-1206"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if text.model != "gemini-exp-1206" {
		t.Errorf("Expected override to reach the provider, got %s", text.model)
	}
	if record.Model != "gemini-exp-1206" {
		t.Errorf("Expected override on the record, got %s", record.Model)
	}
}

func TestTextModelPerProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{provider: "gemini", want: "gemini-2.0-flash-exp"},
		{provider: "openai", want: "gpt-4o"},
		{provider: "ollama", want: "mistral-small3.2:24b"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			svc := &Service{cfg: &config.Config{
				Provider:    tt.provider,
				GeminiModel: "gemini-2.0-flash-exp",
				OpenAIModel: "gpt-4o",
				OllamaModel: "mistral-small3.2:24b",
			}}
			if got := svc.textModel(); got != tt.want {
				t.Errorf("textModel() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTextProviderSelection(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "ollama"} {
		if _, err := textProvider(name); err != nil {
			t.Errorf("Expected provider %s to be supported: %v", name, err)
		}
	}
	if _, err := textProvider("midjourney"); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}
