package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artomat/artomat/internal/models"
)

// HistoryFilename is the gist file holding the JSON array of prompt records.
const HistoryFilename = "prompts.json"

// Client talks to the GitHub Gist REST API for a single gist.
type Client struct {
	BaseURL    string
	token      string
	gistID     string
	httpClient *http.Client
}

// NewClient creates a gist client for the given token and gist identifier.
func NewClient(token, gistID string) *Client {
	return &Client{
		BaseURL: "https://api.github.com",
		token:   token,
		gistID:  gistID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type gistFile struct {
	Filename  string `json:"filename,omitempty"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

type gistPayload struct {
	HTMLURL string `json:"html_url"`
	Owner   struct {
		Login string `json:"login"`
	} `json:"owner"`
	Files map[string]gistFile `json:"files"`
}

func (c *Client) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/gists/%s", c.BaseURL, c.gistID)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

func (c *Client) fetch(ctx context.Context) (*gistPayload, error) {
	req, err := c.newRequest(ctx, "GET", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("could not access gist %s: %d - %s", c.gistID, resp.StatusCode, string(body))
	}

	var payload gistPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode gist response: %w", err)
	}

	return &payload, nil
}

// fileContent returns the content of a gist file, following raw_url when
// GitHub has truncated the inline content.
func (c *Client) fileContent(ctx context.Context, f gistFile) (string, error) {
	if !f.Truncated {
		return f.Content, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", f.RawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create raw content request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch raw gist content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code fetching raw content: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read raw gist content: %w", err)
	}
	return string(data), nil
}

// History returns the prompt records stored in the gist's prompts.json.
// A gist without a history file yields an empty slice.
func (c *Client) History(ctx context.Context) ([]models.PromptRecord, error) {
	payload, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	file, ok := payload.Files[HistoryFilename]
	if !ok {
		return []models.PromptRecord{}, nil
	}

	content, err := c.fileContent(ctx, file)
	if err != nil {
		return nil, err
	}

	var records []models.PromptRecord
	if err := json.Unmarshal([]byte(content), &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", HistoryFilename, err)
	}
	return records, nil
}

// SavePrompt writes the record to the gist as a timestamped markdown note
// and appends it to the prompts.json history array in the same update.
// It returns the public URL of the note.
func (c *Client) SavePrompt(ctx context.Context, record models.PromptRecord, noteFilename string) (string, error) {
	payload, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}

	history := []models.PromptRecord{}
	if file, ok := payload.Files[HistoryFilename]; ok {
		content, err := c.fileContent(ctx, file)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal([]byte(content), &history); err != nil {
			return "", fmt.Errorf("failed to parse existing %s: %w", HistoryFilename, err)
		}
	}
	history = append(history, record)

	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt history: %w", err)
	}

	update := map[string]map[string]gistFile{
		"files": {
			noteFilename:    {Content: renderNote(record)},
			HistoryFilename: {Content: string(historyJSON)},
		},
	}

	body, err := json.Marshal(update)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gist update: %w", err)
	}

	req, err := c.newRequest(ctx, "PATCH", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to update gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to update gist %s: %d - %s", c.gistID, resp.StatusCode, string(respBody))
	}

	return fmt.Sprintf("https://gist.github.com/%s/%s#%s", payload.Owner.Login, c.gistID, noteFilename), nil
}

func renderNote(record models.PromptRecord) string {
	return fmt.Sprintf(`# Art Concept: %s

**Generated:** %s

**Art Style:** %s

## Art Concept Prompt

%s

---

*This prompt was generated with %s and is used to create AI-generated artwork.*
`, record.Style, record.GeneratedAt, record.Style, record.Concept, record.Model)
}
