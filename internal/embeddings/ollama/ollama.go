package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider calls the Ollama embeddings API. The vector dimension is fixed by
// the configured model; Embed rejects responses of any other width so a
// misconfigured model cannot poison the index.
type Provider struct {
	client *resty.Client
	model  string
	dim    int
}

// New creates a Provider for baseURL and model, pinned to dim-wide vectors.
func New(baseURL, model string, dim int) *Provider {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
	return &Provider{client: c, model: model, dim: dim}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     string    `json:"error"`
}

// Embed generates a dense vector for the given text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	reqBody := embedRequest{Model: p.model, Prompt: text}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/api/embeddings")
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		// The model may simply not be present yet; pull it and retry once.
		_ = p.pullModel(ctx)
		resp2, err2 := p.client.R().SetContext(ctx).SetBody(&reqBody).Post("/api/embeddings")
		if err2 != nil {
			return nil, fmt.Errorf("ollama status %d: %s (retry after pull: %v)", resp.StatusCode(), resp.String(), err2)
		}
		if resp2.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("ollama status %d: %s (after pull attempt)", resp2.StatusCode(), resp2.String())
		}
		resp = resp2
	}

	var er embedResponse
	if err := json.Unmarshal(resp.Body(), &er); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if er.Error != "" {
		return nil, fmt.Errorf("ollama embeddings error: %s", er.Error)
	}
	if p.dim > 0 && len(er.Embedding) != p.dim {
		return nil, fmt.Errorf("model %s returned %d-dim vector, want %d", p.model, len(er.Embedding), p.dim)
	}

	vec := make([]float32, len(er.Embedding))
	for i, v := range er.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// pullModel tries to pull the model via Ollama API; best-effort.
func (p *Provider) pullModel(ctx context.Context) error {
	body := map[string]string{"name": p.model}
	_, _ = p.client.R().SetContext(ctx).SetBody(body).Post("/api/pull")
	return nil
}

// HealthPing checks /api/tags for the configured model's presence.
func (p *Provider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return err
	}
	want := baseModelName(p.model)
	for _, m := range data.Models {
		if baseModelName(m.Name) == want {
			return nil
		}
	}
	return fmt.Errorf("model %s not found", want)
}

// baseModelName strips an optional ":tag" suffix.
func baseModelName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return name
}
