package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/marketdata"
)

// BuildContext renders the analysis context a session is grounded in:
// the quote snapshot, the latest indicator readings, and recent news.
// Any of the inputs may be nil or empty; missing sections are skipped.
func BuildContext(quote *types.Quote, series *types.Series, indicators types.IndicatorResult, articles []types.Article) string {
	var b strings.Builder

	b.WriteString("You are a financial analysis assistant. Answer questions about the ")
	b.WriteString("following stock using only the data below. Be concise and note ")
	b.WriteString("uncertainty where the data is incomplete.\n")

	if quote != nil {
		writeQuoteSection(&b, quote)
	}

	if series != nil && !series.IsEmpty() {
		last := series.Last()
		fmt.Fprintf(&b, "\n## Price history\nBars: %d, latest session %s close %s\n",
			series.Len(), last.Time.Format("2006-01-02"), marketdata.FormatPrice(last.Close))
	}

	if len(indicators) > 0 {
		writeIndicatorSection(&b, indicators)
	}

	if len(articles) > 0 {
		b.WriteString("\n## Recent news\n")
		for _, article := range articles {
			fmt.Fprintf(&b, "- %s (%s, %s)\n", article.Title, article.Source, article.Published)
		}
	}

	return b.String()
}

func writeQuoteSection(b *strings.Builder, quote *types.Quote) {
	fmt.Fprintf(b, "\n## %s", quote.Symbol)
	if quote.CompanyName != "" {
		fmt.Fprintf(b, " (%s)", quote.CompanyName)
	}
	b.WriteString("\n")

	if quote.Sector != "" {
		fmt.Fprintf(b, "Sector: %s, Industry: %s\n", quote.Sector, quote.Industry)
	}

	// ChangePercent is already on a percent scale, so it skips the
	// ratio normalization the fundamental fields go through.
	fmt.Fprintf(b, "Price: %s %s (change %s, %s%%)\n",
		marketdata.FormatPrice(quote.Price), quote.Currency,
		marketdata.FormatPrice(quote.Change), marketdata.FormatRatio(quote.ChangePercent))

	fmt.Fprintf(b, "Market cap: %s, trailing P/E: %s, forward P/E: %s, EPS: %s\n",
		marketdata.FormatMarketCap(quote.MarketCap),
		marketdata.FormatRatio(quote.TrailingPE),
		marketdata.FormatRatio(quote.ForwardPE),
		marketdata.FormatRatio(quote.EPS))

	fmt.Fprintf(b, "Dividend yield: %s, payout ratio: %s, beta: %s\n",
		marketdata.FormatPercent(quote.DividendYield),
		marketdata.FormatPercent(quote.PayoutRatio),
		marketdata.FormatRatio(quote.Beta))

	fmt.Fprintf(b, "ROE: %s, profit margin: %s, debt/equity: %s, P/B: %s\n",
		marketdata.FormatPercent(quote.ReturnOnEquity),
		marketdata.FormatPercent(quote.ProfitMargin),
		marketdata.FormatRatio(quote.DebtToEquity),
		marketdata.FormatRatio(quote.PriceToBook))
}

func writeIndicatorSection(b *strings.Builder, indicators types.IndicatorResult) {
	columns := make([]string, 0, len(indicators))
	for column := range indicators {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	b.WriteString("\n## Latest indicator readings\n")
	for _, column := range columns {
		value, err := indicators.LastDefined(column).Take()
		if err != nil {
			fmt.Fprintf(b, "- %s: insufficient history\n", column)

			continue
		}

		fmt.Fprintf(b, "- %s: %s\n", column, marketdata.FormatRatio(value))
	}
}
