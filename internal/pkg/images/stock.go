package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Pixabay searches pixabay.com stock photos.
type Pixabay struct {
	httpClient *http.Client
}

func NewPixabay(httpClient *http.Client) *Pixabay {
	return &Pixabay{httpClient: httpClient}
}

func (p *Pixabay) Name() string { return SourcePixabay }

func (p *Pixabay) Search(ctx context.Context, key, query string) (string, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("q", query)
	q.Set("image_type", "photo")
	q.Set("per_page", "3")

	var out struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err := getJSON(ctx, p.httpClient, "https://pixabay.com/api/?"+q.Encode(), nil, &out); err != nil {
		return "", fmt.Errorf("pixabay: %w", err)
	}
	if len(out.Hits) == 0 {
		return "", nil
	}
	return out.Hits[0].WebformatURL, nil
}

// Unsplash searches api.unsplash.com photos.
type Unsplash struct {
	httpClient *http.Client
}

func NewUnsplash(httpClient *http.Client) *Unsplash {
	return &Unsplash{httpClient: httpClient}
}

func (u *Unsplash) Name() string { return SourceUnsplash }

func (u *Unsplash) Search(ctx context.Context, key, query string) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("client_id", key)

	var out struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := getJSON(ctx, u.httpClient, "https://api.unsplash.com/search/photos?"+q.Encode(), nil, &out); err != nil {
		return "", fmt.Errorf("unsplash: %w", err)
	}
	if len(out.Results) == 0 {
		return "", nil
	}
	return out.Results[0].URLs.Regular, nil
}

// Pexels searches api.pexels.com photos.
type Pexels struct {
	httpClient *http.Client
}

func NewPexels(httpClient *http.Client) *Pexels {
	return &Pexels{httpClient: httpClient}
}

func (p *Pexels) Name() string { return SourcePexels }

func (p *Pexels) Search(ctx context.Context, key, query string) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	headers := map[string]string{"Authorization": key}
	var out struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := getJSON(ctx, p.httpClient, "https://api.pexels.com/v1/search?"+q.Encode(), headers, &out); err != nil {
		return "", fmt.Errorf("pexels: %w", err)
	}
	if len(out.Photos) == 0 {
		return "", nil
	}
	return out.Photos[0].Src.Medium, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
