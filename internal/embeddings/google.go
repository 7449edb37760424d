package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const googleEmbedBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GoogleEmbedder implements Embedder using the Gemini embedContent API.
type GoogleEmbedder struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGoogleEmbedder creates a new Gemini embedder.
func NewGoogleEmbedder(apiKey string, model string) *GoogleEmbedder {
	return &GoogleEmbedder{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{},
	}
}

func (e *GoogleEmbedder) Name() string {
	return "google"
}

type googleEmbedRequest struct {
	Content googleEmbedContent `json:"content"`
}

type googleEmbedContent struct {
	Parts []googleEmbedPart `json:"parts"`
}

type googleEmbedPart struct {
	Text string `json:"text"`
}

type googleEmbedResponse struct {
	Embedding *struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (e *GoogleEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (e *GoogleEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(googleEmbedRequest{
		Content: googleEmbedContent{Parts: []googleEmbedPart{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:embedContent?key=%s", googleEmbedBaseURL, e.model, e.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini embed request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embed response: %w", err)
	}

	var apiResp googleEmbedResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal embed response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("gemini embed error (%s): %s", apiResp.Error.Status, apiResp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini embed returned status %d: %s", httpResp.StatusCode, string(respBody))
	}
	if apiResp.Embedding == nil {
		return nil, fmt.Errorf("gemini embed response missing embedding")
	}
	return apiResp.Embedding.Values, nil
}
