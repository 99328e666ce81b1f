package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Client generates analysis narratives through the Gemini REST API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  *logger.Logger
}

func NewClient(apiKey, model string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "narrative generation requires a Google API key")
	}

	if model == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "model must not be empty")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
		logger:  log,
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate runs one model turn over the full conversation history.
func (c *Client) generate(ctx context.Context, contents []content) (string, error) {
	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	payload, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNarrativeRequestFailed, "failed to encode narrative request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNarrativeRequestFailed, "failed to build narrative request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNarrativeRequestFailed, "narrative request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNarrativeRequestFailed, "failed to read narrative response", err)
	}

	var generated generateResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		return "", errors.Wrapf(errors.ErrCodeNarrativeRequestFailed, err, "failed to decode narrative response (status %d)", resp.StatusCode)
	}

	if generated.Error != nil {
		return "", errors.Newf(errors.ErrCodeNarrativeRequestFailed,
			"narrative request rejected (code %d): %s", generated.Error.Code, generated.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrCodeNarrativeRequestFailed, "narrative request returned status %d", resp.StatusCode)
	}

	if len(generated.Candidates) == 0 {
		return "", errors.New(errors.ErrCodeNarrativeEmptyResponse, "model returned no candidates")
	}

	var text strings.Builder
	for _, p := range generated.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	if text.Len() == 0 {
		return "", errors.New(errors.ErrCodeNarrativeEmptyResponse, "model returned an empty candidate")
	}

	return text.String(), nil
}
