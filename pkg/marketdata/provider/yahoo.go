package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/piquette/finance-go/equity"
	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

func init() {
	Register("yahoo", func(cfg Config) (Provider, error) {
		return NewYahooProvider(cfg.Logger), nil
	})
}

// YahooProvider fetches daily bars from the Yahoo Finance chart API and
// quote fundamentals from the quote and quoteSummary endpoints. No API
// key is required.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	logger  *logger.Logger
}

func NewYahooProvider(log *logger.Logger) *YahooProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &YahooProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: yahooBaseURL,
		logger:  log,
	}
}

func (p *YahooProvider) Name() string {
	return "yahoo"
}

// yahooChart is the shape of the chart API response. Nullable values use
// pointers so missing observations survive decoding.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				ExchangeName         string `json:"exchangeName"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// chartRange maps a day count onto the coarse range buckets the chart
// API accepts. The response is trimmed back to the exact count.
func chartRange(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	case days <= 1825:
		return "5y"
	default:
		return "max"
	}
}

func (p *YahooProvider) FetchSeries(ctx context.Context, symbol string, lookbackDays int) (*types.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.baseURL, url.PathEscape(symbol), chartRange(lookbackDays))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to decode chart response for %s", symbol)
	}

	if chart.Chart.Error != nil {
		return nil, errors.Newf(errors.ErrCodeFetchFailed,
			"chart request for %s failed: %s (%s)", symbol, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataReturned, "no chart data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	location := p.loadLocation(symbol, result.Meta.ExchangeTimezoneName)

	bars := make([]types.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}

		// A bar with no price at all is a non-session row, not a
		// missing close.
		if quote.Open[i] == nil && quote.High[i] == nil && quote.Low[i] == nil && quote.Close[i] == nil {
			continue
		}

		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil {
			continue
		}

		closePrice := types.Undefined()
		if quote.Close[i] != nil {
			closePrice = *quote.Close[i]
		}

		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		barTime := time.Unix(ts, 0).UTC()
		if location != nil {
			barTime = barTime.In(location)
		}

		if len(bars) > 0 && !bars[len(bars)-1].Time.Before(barTime) {
			continue
		}

		bars = append(bars, types.Bar{
			Time:   barTime,
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  closePrice,
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataReturned, "no usable bars returned for %s", symbol)
	}

	if len(bars) > lookbackDays {
		bars = bars[len(bars)-lookbackDays:]
	}

	return types.NewSeries(symbol, location, bars)
}

// yahooValue is the {raw, fmt} pair the quoteSummary endpoint wraps
// every numeric field in.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

func (v yahooValue) value() float64 {
	if v.Raw == nil {
		return types.MissingQuoteField()
	}

	return *v.Raw
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			SummaryDetail struct {
				DividendYield yahooValue `json:"dividendYield"`
				PayoutRatio   yahooValue `json:"payoutRatio"`
				Beta          yahooValue `json:"beta"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
				ProfitMargins  yahooValue `json:"profitMargins"`
				DebtToEquity   yahooValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	eq, err := equity.Get(symbol)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch quote for %s", symbol)
	}
	if eq == nil {
		return nil, errors.Newf(errors.ErrCodeNoDataReturned, "no quote returned for %s", symbol)
	}

	name := eq.LongName
	if name == "" {
		name = eq.ShortName
	}

	result := &types.Quote{
		Symbol:         symbol,
		CompanyName:    name,
		Exchange:       eq.FullExchangeName,
		Currency:       eq.CurrencyID,
		Price:          eq.RegularMarketPrice,
		PreviousClose:  eq.RegularMarketPreviousClose,
		Change:         eq.RegularMarketChange,
		ChangePercent:  eq.RegularMarketChangePercent,
		MarketCap:      float64(eq.MarketCap),
		TrailingPE:     eq.TrailingPE,
		ForwardPE:      eq.ForwardPE,
		EPS:            eq.EpsTrailingTwelveMonths,
		PriceToBook:    eq.PriceToBook,
		DividendYield:  eq.TrailingAnnualDividendYield,
		PayoutRatio:    types.MissingQuoteField(),
		Beta:           types.MissingQuoteField(),
		ReturnOnEquity: types.MissingQuoteField(),
		ProfitMargin:   types.MissingQuoteField(),
		DebtToEquity:   types.MissingQuoteField(),
		Volume:         float64(eq.RegularMarketVolume),
	}

	// Profile and ratio fields are best effort. A quote without them is
	// still displayable.
	if err := p.fillSummary(ctx, symbol, result); err != nil {
		p.logger.Warn("quote summary unavailable", zap.String("symbol", symbol), zap.Error(err))
	}

	return result, nil
}

func (p *YahooProvider) fillSummary(ctx context.Context, symbol string, quote *types.Quote) error {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,summaryDetail,financialData",
		p.baseURL, url.PathEscape(symbol))

	body, err := p.get(ctx, u)
	if err != nil {
		return err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to decode quote summary for %s", symbol)
	}

	if summary.QuoteSummary.Error != nil {
		return errors.Newf(errors.ErrCodeFetchFailed,
			"quote summary for %s failed: %s", symbol, summary.QuoteSummary.Error.Description)
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return errors.Newf(errors.ErrCodeNoDataReturned, "no quote summary returned for %s", symbol)
	}

	result := summary.QuoteSummary.Result[0]
	quote.Sector = result.AssetProfile.Sector
	quote.Industry = result.AssetProfile.Industry
	quote.Summary = result.AssetProfile.LongBusinessSummary
	quote.Beta = result.SummaryDetail.Beta.value()
	quote.PayoutRatio = result.SummaryDetail.PayoutRatio.value()
	quote.ReturnOnEquity = result.FinancialData.ReturnOnEquity.value()
	quote.ProfitMargin = result.FinancialData.ProfitMargins.value()
	quote.DebtToEquity = result.FinancialData.DebtToEquity.value()

	if yield := result.SummaryDetail.DividendYield.value(); types.HasField(yield) {
		quote.DividendYield = yield
	}

	return nil
}

func (p *YahooProvider) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "failed to build request", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeFetchFailed, "unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func (p *YahooProvider) loadLocation(symbol, name string) *time.Location {
	if name == "" {
		p.logger.Warn("no exchange timezone reported", zap.String("symbol", symbol))

		return nil
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		p.logger.Warn("unresolvable exchange timezone",
			zap.String("symbol", symbol), zap.String("timezone", name), zap.Error(err))

		return nil
	}

	return location
}
