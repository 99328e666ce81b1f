package marketdata

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
	"github.com/finsight-dev/finsight/pkg/marketdata/provider"
)

// ClientConfig selects and parameterizes the market data backend.
type ClientConfig struct {
	Provider      string `validate:"required"`
	PolygonAPIKey string
	LookbackDays  int `validate:"gt=0"`
}

var validate = validator.New()

// Client is the data retrieval facade the dashboard talks to. It owns a
// single provider and applies the configured lookback to every fetch.
type Client struct {
	provider     provider.Provider
	lookbackDays int
	logger       *logger.Logger
}

func NewClient(cfg ClientConfig, log *logger.Logger) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data config", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	prov, err := provider.New(cfg.Provider, provider.Config{
		PolygonAPIKey: cfg.PolygonAPIKey,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		provider:     prov,
		lookbackDays: cfg.LookbackDays,
		logger:       log,
	}, nil
}

// Provider returns the name of the active backend.
func (c *Client) Provider() string {
	return c.provider.Name()
}

// GetSeries fetches the full lookback window of daily bars for a symbol.
func (c *Client) GetSeries(ctx context.Context, symbol string) (*types.Series, error) {
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "symbol must not be empty")
	}

	series, err := c.provider.FetchSeries(ctx, symbol, c.lookbackDays)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched series",
		zap.String("provider", c.provider.Name()),
		zap.String("symbol", symbol),
		zap.Int("bars", series.Len()),
		zap.Bool("has_timezone", series.HasLocation()))

	return series, nil
}

// GetQuote fetches the current market snapshot for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "symbol must not be empty")
	}

	return c.provider.FetchQuote(ctx, symbol)
}
