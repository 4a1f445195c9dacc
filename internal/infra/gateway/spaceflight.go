package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/metrics"
	"github.com/microcosm-cc/bluemonday"
)

// spaceflightEnvelope mirrors the articles endpoint response. Only the
// truthiness of previous/next is used, never their values.
type spaceflightEnvelope struct {
	Previous *string              `json:"previous"`
	Next     *string              `json:"next"`
	Results  []spaceflightArticle `json:"results"`
}

type spaceflightArticle struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

// SpaceflightGateway fetches article pages from the Spaceflight News API.
type SpaceflightGateway struct {
	baseURL string
	client  *http.Client
	policy  *bluemonday.Policy
}

func NewSpaceflightGateway(baseURL string) *SpaceflightGateway {
	return &SpaceflightGateway{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Upstream titles and summaries are plain text by contract but are
		// not trusted; markup is stripped before anything reaches a template.
		policy: bluemonday.StrictPolicy(),
	}
}

func (g *SpaceflightGateway) FetchPage(ctx context.Context, limit, offset int) (*domain.BatchPage, error) {
	url := fmt.Sprintf("%s/v4/articles/?limit=%d&offset=%d", g.baseURL, limit, offset)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.NewsPagesFetched.WithLabelValues("error").Inc()
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.NewsPagesFetched.WithLabelValues("error").Inc()
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var env spaceflightEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.NewsPagesFetched.WithLabelValues("error").Inc()
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("decoding response: %w", err)}
	}

	articles := make([]domain.Article, 0, len(env.Results))
	for _, a := range env.Results {
		articles = append(articles, domain.Article{
			Title:    g.policy.Sanitize(a.Title),
			Summary:  g.policy.Sanitize(a.Summary),
			ImageURL: a.ImageURL,
			URL:      a.URL,
		})
	}

	metrics.NewsPagesFetched.WithLabelValues("success").Inc()
	metrics.NewsFetchDuration.Observe(time.Since(start).Seconds())

	return &domain.BatchPage{
		Articles:    articles,
		HasPrevious: env.Previous != nil && *env.Previous != "",
		HasNext:     env.Next != nil && *env.Next != "",
	}, nil
}
