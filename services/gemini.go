package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// The upstream has no latency guarantee; cap how long a request blocks.
	geminiTimeout = 30 * time.Second
)

// GeminiService implements TextGenerator against the Gemini REST API.
// The narrative model is used for long-form summaries, the flash model for
// commentary and structured predictions.
type GeminiService struct {
	apiKey     string
	model      string
	flashModel string
	baseURL    string
	httpClient *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiService creates a Gemini-backed text generator.
func NewGeminiService(apiKey, model, flashModel string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		flashModel: flashModel,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{
			Timeout: geminiTimeout,
		},
	}
}

func (g *GeminiService) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	return g.generateContent(ctx, g.model, prompt, "")
}

func (g *GeminiService) GenerateCommentary(ctx context.Context, prompt string) (string, error) {
	return g.generateContent(ctx, g.flashModel, prompt, "")
}

func (g *GeminiService) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	return g.generateContent(ctx, g.flashModel, prompt, "application/json")
}

func (g *GeminiService) generateContent(ctx context.Context, model, prompt, mimeType string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if mimeType != "" {
		reqBody.GenerationConfig = &geminiGenerationConfig{ResponseMIMEType: mimeType}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini API error %d (%s): %s",
			geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
