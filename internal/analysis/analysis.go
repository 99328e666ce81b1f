package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/indicator"
	"github.com/finsight-dev/finsight/internal/period"
	"github.com/finsight-dev/finsight/internal/store"
	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/logger"
)

// MarketData is the slice of the market data client the runner needs.
type MarketData interface {
	GetSeries(ctx context.Context, symbol string) (*types.Series, error)
	GetQuote(ctx context.Context, symbol string) (*types.Quote, error)
}

// NewsSearcher finds recent articles for a query.
type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]types.Article, error)
}

// Report is one complete analysis pass over a symbol. Quote and
// Articles are best effort; a fetch failure there surfaces as a warning
// instead of failing the pass.
type Report struct {
	Series     *types.Series
	Filtered   *types.Series
	Indicators types.IndicatorResult
	Quote      *types.Quote
	Articles   []types.Article
	Warnings   []string
}

// Runner drives a full analysis pass: fetch (or reuse) the series,
// filter it to the selected period, compute indicators over the
// filtered window, and gather quote and news context around it.
type Runner struct {
	market MarketData
	news   NewsSearcher
	store  store.SeriesStore
	logger *logger.Logger
	now    func() time.Time
}

// NewRunner wires a runner. news may be nil, in which case reports skip
// the news section.
func NewRunner(market MarketData, news NewsSearcher, seriesStore store.SeriesStore, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if seriesStore == nil {
		seriesStore = store.NewSeriesStoreV1()
	}

	return &Runner{
		market: market,
		news:   news,
		store:  seriesStore,
		logger: log,
		now:    time.Now,
	}
}

// Run executes one analysis pass. The full series is fetched only when
// the store holds nothing for the symbol; switching symbols invalidates
// the cache.
func (r *Runner) Run(ctx context.Context, symbol string, p period.Period, cfg indicator.Config) (*Report, error) {
	report := &Report{}

	series, err := r.activeSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	report.Series = series

	if allVolumeMissing(series) {
		report.Warnings = append(report.Warnings,
			"volume is zero or missing across the fetched history; volume figures are unreliable")
	}

	filtered := series
	if !series.HasLocation() && p != period.PeriodAll {
		report.Warnings = append(report.Warnings,
			"no exchange timezone association; period filtering disabled, showing full history")
	} else {
		filtered = period.Filter(series, p, r.now())
	}
	report.Filtered = filtered

	engine, err := indicator.NewEngine(cfg, r.logger)
	if err != nil {
		return nil, err
	}

	result, err := engine.Compute(filtered)
	if err != nil {
		return nil, err
	}
	report.Indicators = result
	r.store.SetIndicators(symbol, result)

	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		r.logger.Warn("quote unavailable", zap.String("symbol", symbol), zap.Error(err))
		report.Warnings = append(report.Warnings, "quote unavailable: "+err.Error())
	} else {
		report.Quote = quote
	}

	if r.news != nil {
		articles, err := r.news.Search(ctx, newsQuery(symbol, report.Quote))
		if err != nil {
			r.logger.Warn("news unavailable", zap.String("symbol", symbol), zap.Error(err))
			report.Warnings = append(report.Warnings, "news unavailable: "+err.Error())
		} else {
			report.Articles = articles
		}
	}

	return report, nil
}

// newsQuery builds the article search query. The company name gives the
// search engine a much stronger signal than the bare ticker, so it
// leads whenever the quote carries one.
func newsQuery(symbol string, quote *types.Quote) string {
	if quote != nil && quote.CompanyName != "" {
		return fmt.Sprintf("%q OR %q stock news", quote.CompanyName, symbol)
	}

	return fmt.Sprintf("%q stock news", symbol)
}

// allVolumeMissing reports whether no bar in the series carries a
// positive volume. Providers fill unreported volume with zero, so an
// all-zero series means the source has no volume data for the symbol.
func allVolumeMissing(series *types.Series) bool {
	if series.IsEmpty() {
		return false
	}

	for _, bar := range series.Bars {
		if bar.Volume > 0 {
			return false
		}
	}

	return true
}

// activeSeries returns the cached series when the symbol matches,
// fetching otherwise.
func (r *Runner) activeSeries(ctx context.Context, symbol string) (*types.Series, error) {
	if cached, err := r.store.Get().Take(); err == nil && cached.Symbol == symbol {
		return cached, nil
	}

	series, err := r.market.GetSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	r.store.Set(series)

	return series, nil
}

// Refresh drops the cached series so the next Run fetches fresh data.
func (r *Runner) Refresh() {
	r.store.Clear()
}
