package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/finsight-dev/finsight/internal/analysis"
	"github.com/finsight-dev/finsight/internal/indicator"
	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/marketdata"
)

// NewSymbolInput creates the ticker entry field.
func NewSymbolInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "AAPL"
	ti.Focus()
	ti.CharLimit = 12
	ti.Width = 20
	ti.Prompt = "> "

	return ti
}

// NewBarTable creates the price table. Columns are rebuilt per report
// because the indicator set changes with the control state.
func NewBarTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "Date", Width: 12}}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// displayColumns returns the indicator columns present in the result,
// in a stable display order keyed off the control state.
func displayColumns(result types.IndicatorResult, cfg indicator.Config) []string {
	ordered := []string{
		types.SMAColumn(cfg.SMA.Window),
		types.EMAColumn(cfg.EMA.Window),
		types.ColumnBBLow,
		types.ColumnBBMid,
		types.ColumnBBHigh,
		types.ColumnRSI,
		types.ColumnMACDLine,
		types.ColumnMACDSignal,
		types.ColumnMACDHist,
	}

	columns := make([]string, 0, len(ordered))
	for _, column := range ordered {
		if result.Has(column) {
			columns = append(columns, column)
		}
	}

	return columns
}

func formatCell(v float64) string {
	if !types.IsDefined(v) {
		return "-"
	}

	return fmt.Sprintf("%.2f", v)
}

// UpdateBarTable rebuilds the table columns and rows from a report. The
// cursor lands on the most recent session.
func UpdateBarTable(t table.Model, report *analysis.Report, cfg indicator.Config) table.Model {
	indicatorColumns := displayColumns(report.Indicators, cfg)

	columns := make([]table.Column, 0, len(indicatorColumns)+2)
	columns = append(columns,
		table.Column{Title: "Date", Width: 12},
		table.Column{Title: "Close", Width: 10},
	)
	for _, column := range indicatorColumns {
		columns = append(columns, table.Column{Title: column, Width: 12})
	}

	rows := make([]table.Row, 0, report.Filtered.Len())
	for i, bar := range report.Filtered.Bars {
		row := make(table.Row, 0, len(columns))
		row = append(row, bar.Time.Format("2006-01-02"), formatCell(bar.Close))

		for _, column := range indicatorColumns {
			values, err := report.Indicators.Column(column).Take()
			if err != nil || i >= len(values) {
				row = append(row, "-")

				continue
			}

			row = append(row, formatCell(values[i]))
		}

		rows = append(rows, row)
	}

	// SetRows before SetColumns panics when the old rows are wider than
	// the new column set, so clear the rows first.
	t.SetRows(nil)
	t.SetColumns(columns)
	t.SetRows(rows)

	if len(rows) > 0 {
		t.GotoBottom()
	}

	return t
}

// RenderQuote renders the snapshot header above the table.
func RenderQuote(quote *types.Quote) string {
	if quote == nil {
		return ""
	}

	var b strings.Builder

	name := quote.Symbol
	if quote.CompanyName != "" {
		name += " - " + quote.CompanyName
	}
	if quote.Exchange != "" {
		name += " (" + quote.Exchange + ")"
	}
	b.WriteString(TitleStyle.Render(name))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s  %s\n",
		marketdata.FormatPrice(quote.Price), quote.Currency,
		FormatChange(quote.Change, quote.ChangePercent))

	fmt.Fprintf(&b, "Mkt cap %s  P/E %s  EPS %s  Div yield %s  Beta %s\n",
		marketdata.FormatMarketCap(quote.MarketCap),
		marketdata.FormatRatio(quote.TrailingPE),
		marketdata.FormatRatio(quote.EPS),
		marketdata.FormatPercent(quote.DividendYield),
		marketdata.FormatRatio(quote.Beta))

	if quote.Sector != "" {
		fmt.Fprintf(&b, "%s / %s\n", quote.Sector, quote.Industry)
	}

	return b.String()
}

// RenderArticles renders the news panel under the table. An empty
// report section renders nothing rather than an empty header.
func RenderArticles(articles []types.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("News"))
	b.WriteString("\n")

	for _, article := range articles {
		line := "- " + article.Title
		if article.Source != "" {
			line += " (" + article.Source + ")"
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderWarnings renders the non-fatal notices from the last pass.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var b strings.Builder
	for _, warning := range warnings {
		b.WriteString(WarningStyle.Render("! " + warning))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderToggles renders the indicator control line.
func RenderToggles(cfg indicator.Config) string {
	toggle := func(key, name string, enabled bool) string {
		marker := " "
		if enabled {
			marker = "x"
		}

		return fmt.Sprintf("[%s] %s:%s", marker, key, name)
	}

	return HelpStyle.Render(strings.Join([]string{
		toggle("1", "SMA", cfg.SMA.Enabled),
		toggle("2", "EMA", cfg.EMA.Enabled),
		toggle("3", "RSI", cfg.RSI.Enabled),
		toggle("4", "MACD", cfg.MACD.Enabled),
		toggle("5", "BB", cfg.Bollinger.Enabled),
	}, "  "))
}
