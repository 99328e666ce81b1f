package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

func init() {
	Register("polygon", func(cfg Config) (Provider, error) {
		return NewPolygonProvider(cfg.PolygonAPIKey, cfg.Logger)
	})
}

// PolygonProvider fetches daily aggregates and ticker details from the
// Polygon REST API. Requires an API key.
type PolygonProvider struct {
	client *polygon.Client
	logger *logger.Logger
}

func NewPolygonProvider(apiKey string, log *logger.Logger) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "polygon provider requires an API key")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonProvider{
		client: polygon.New(apiKey),
		logger: log,
	}, nil
}

func (p *PolygonProvider) Name() string {
	return "polygon"
}

func (p *PolygonProvider) FetchSeries(ctx context.Context, symbol string, lookbackDays int) (*types.Series, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithOrder(models.Asc).WithLimit(50000).WithAdjusted(true)

	// Polygon daily aggregates are stamped in eastern time.
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		location = nil
	}

	bar := progressbar.Default(-1, "fetching "+symbol)
	defer bar.Close()

	var bars []types.Bar
	iter := p.client.ListAggs(ctx, params)
	for iter.Next() {
		agg := iter.Item()

		barTime := time.Time(agg.Timestamp).UTC()
		if location != nil {
			barTime = barTime.In(location)
		}

		if len(bars) > 0 && !bars[len(bars)-1].Time.Before(barTime) {
			continue
		}

		bars = append(bars, types.Bar{
			Time:   barTime,
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
		bar.Add(1)
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to list aggregates for %s", symbol)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataReturned, "no aggregates returned for %s", symbol)
	}

	p.logger.Debug("fetched aggregates",
		zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	return types.NewSeries(symbol, location, bars)
}

// FetchQuote assembles a snapshot from ticker details and the previous
// close aggregate. Polygon's reference API carries no ratio
// fundamentals, so those fields stay missing.
func (p *PolygonProvider) FetchQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	details, err := p.client.GetTickerDetails(ctx, &models.GetTickerDetailsParams{
		Ticker: symbol,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch ticker details for %s", symbol)
	}

	quote := &types.Quote{
		Symbol:         symbol,
		CompanyName:    details.Results.Name,
		Exchange:       details.Results.PrimaryExchange,
		Industry:       details.Results.SICDescription,
		Summary:        details.Results.Description,
		Currency:       details.Results.CurrencyName,
		Price:          types.MissingQuoteField(),
		PreviousClose:  types.MissingQuoteField(),
		Change:         types.MissingQuoteField(),
		ChangePercent:  types.MissingQuoteField(),
		MarketCap:      details.Results.MarketCap,
		TrailingPE:     types.MissingQuoteField(),
		ForwardPE:      types.MissingQuoteField(),
		EPS:            types.MissingQuoteField(),
		PriceToBook:    types.MissingQuoteField(),
		DividendYield:  types.MissingQuoteField(),
		PayoutRatio:    types.MissingQuoteField(),
		Beta:           types.MissingQuoteField(),
		ReturnOnEquity: types.MissingQuoteField(),
		ProfitMargin:   types.MissingQuoteField(),
		DebtToEquity:   types.MissingQuoteField(),
		Volume:         types.MissingQuoteField(),
	}

	prev, err := p.client.GetPreviousCloseAgg(ctx, &models.GetPreviousCloseAggParams{
		Ticker: symbol,
	})
	if err != nil {
		p.logger.Warn("previous close unavailable", zap.String("symbol", symbol), zap.Error(err))

		return quote, nil
	}

	if len(prev.Results) > 0 {
		agg := prev.Results[0]
		quote.Price = agg.Close
		quote.PreviousClose = agg.Open
		quote.Change = agg.Close - agg.Open
		if agg.Open != 0 {
			quote.ChangePercent = (agg.Close - agg.Open) / agg.Open * 100
		}
		quote.Volume = agg.Volume
	}

	return quote, nil
}
