package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

const (
	serpBaseURL    = "https://serpapi.com"
	defaultResults = 5
)

// Client searches recent news for a symbol through the SerpAPI Google
// News engine.
type Client struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	logger     *logger.Logger
}

func NewClient(apiKey string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "news search requires a SerpAPI key")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		client:     &http.Client{Timeout: 20 * time.Second},
		baseURL:    serpBaseURL,
		apiKey:     apiKey,
		maxResults: defaultResults,
		logger:     log,
	}, nil
}

type searchResponse struct {
	Error       string `json:"error"`
	NewsResults []struct {
		Title  string `json:"title"`
		Link   string `json:"link"`
		Date   string `json:"date"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"news_results"`
}

// Search returns up to five recent articles mentioning the query. An
// empty result set is an error so callers can distinguish "no coverage"
// from a degraded search.
func (c *Client) Search(ctx context.Context, query string) ([]types.Article, error) {
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "query must not be empty")
	}

	params := url.Values{}
	params.Set("engine", "google_news")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)

	u := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNewsSearchFailed, "failed to build news request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeNewsSearchFailed, err, "news search for %q failed", query)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNewsSearchFailed, "failed to read news response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeNewsSearchFailed, "news search returned status %d: %s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNewsSearchFailed, "failed to decode news response", err)
	}

	if search.Error != "" {
		return nil, errors.Newf(errors.ErrCodeNewsSearchFailed, "news search rejected: %s", search.Error)
	}

	articles := make([]types.Article, 0, c.maxResults)
	for _, hit := range search.NewsResults {
		if hit.Title == "" {
			continue
		}

		articles = append(articles, types.Article{
			Title:     hit.Title,
			Link:      hit.Link,
			Source:    hit.Source.Name,
			Published: hit.Date,
		})

		if len(articles) == c.maxResults {
			break
		}
	}

	if len(articles) == 0 {
		return nil, errors.Newf(errors.ErrCodeNewsNoResults, "no news found for %q", query)
	}

	c.logger.Debug("news search complete", zap.String("query", query), zap.Int("articles", len(articles)))

	return articles, nil
}
