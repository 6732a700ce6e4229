package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const hfModelURL = "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-2-1"

// HuggingFace runs stable diffusion through the inference API and returns
// the generated image as a data URL.
type HuggingFace struct {
	httpClient *http.Client
}

func NewHuggingFace(httpClient *http.Client) *HuggingFace {
	return &HuggingFace{httpClient: httpClient}
}

func (h *HuggingFace) Name() string { return SourceHuggingFace }

func (h *HuggingFace) Search(ctx context.Context, key, query string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"inputs": query,
		"parameters": map[string]int{
			"width":  512,
			"height": 512,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode huggingface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfModelURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("huggingface read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("huggingface returned status %d", resp.StatusCode)
	}

	// The inference API streams raw image bytes on success.
	if ct := resp.Header.Get("Content-Type"); ct == "image/png" || ct == "image/jpeg" {
		return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(body), nil
	}
	return "", fmt.Errorf("huggingface returned unexpected content type")
}
