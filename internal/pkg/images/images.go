// Package images resolves an educational image for a description by trying
// a chain of stock/generation providers in order, falling back to a locally
// synthesized placeholder when none is configured or all fail.
package images

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// API sources recorded against generated images.
const (
	SourceHuggingFace = "huggingface"
	SourcePixabay     = "pixabay"
	SourceUnsplash    = "unsplash"
	SourcePexels      = "pexels"
	SourcePlaceholder = "placeholder"
)

// Keys carries the per-request provider credentials. Empty keys skip the
// provider.
type Keys struct {
	HFToken     string
	PixabayKey  string
	UnsplashKey string
	PexelsKey   string
}

// Result is a resolved image URL and the provider that produced it.
type Result struct {
	URL    string
	Source string
}

// Provider finds or generates one image for a query.
type Provider interface {
	Name() string
	Search(ctx context.Context, key, query string) (string, error)
}

// Chain tries providers in order and never fails: when every provider is
// skipped or errors, it returns a placeholder URL.
type Chain struct {
	providers []Provider
	keyFor    func(Keys, string) string
	logger    zerolog.Logger
}

// NewChain builds the default HF -> Pixabay -> Unsplash -> Pexels chain.
func NewChain(logger zerolog.Logger) *Chain {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Chain{
		providers: []Provider{
			NewHuggingFace(httpClient),
			NewPixabay(httpClient),
			NewUnsplash(httpClient),
			NewPexels(httpClient),
		},
		keyFor: keyFor,
		logger: logger,
	}
}

func keyFor(keys Keys, name string) string {
	switch name {
	case SourceHuggingFace:
		return keys.HFToken
	case SourcePixabay:
		return keys.PixabayKey
	case SourceUnsplash:
		return keys.UnsplashKey
	case SourcePexels:
		return keys.PexelsKey
	}
	return ""
}

// Resolve returns the first provider hit, or a placeholder.
func (c *Chain) Resolve(ctx context.Context, keys Keys, query string) Result {
	for _, p := range c.providers {
		key := c.keyFor(keys, p.Name())
		if key == "" {
			continue
		}
		url, err := p.Search(ctx, key, query)
		if err != nil {
			c.logger.Warn().Err(err).Str("provider", p.Name()).Msg("image provider failed")
			continue
		}
		if url != "" {
			return Result{URL: url, Source: p.Name()}
		}
	}
	return Result{URL: PlaceholderURL(query), Source: SourcePlaceholder}
}
