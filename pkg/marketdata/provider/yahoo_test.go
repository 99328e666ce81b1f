package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

const chartBody = `{
  "chart": {
    "result": [
      {
        "meta": {
          "currency": "USD",
          "exchangeName": "NMS",
          "exchangeTimezoneName": "America/New_York"
        },
        "timestamp": [1704207600, 1704294000, 1704380400, 1704466800],
        "indicators": {
          "quote": [
            {
              "open":   [184.2, 183.9, null, 181.5],
              "high":   [185.0, 184.5, null, 182.8],
              "low":    [183.4, 182.7, null, 180.9],
              "close":  [184.8, null,  null, 182.1],
              "volume": [52000000, 48000000, null, 61000000]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

const summaryBody = `{
  "quoteSummary": {
    "result": [
      {
        "assetProfile": {
          "sector": "Technology",
          "industry": "Consumer Electronics",
          "longBusinessSummary": "Designs and sells consumer electronics."
        },
        "summaryDetail": {
          "dividendYield": {"raw": 0.0044},
          "payoutRatio": {"raw": 0.147},
          "beta": {"raw": 1.25}
        },
        "financialData": {
          "returnOnEquity": {"raw": 1.4725},
          "profitMargins": {"raw": 0.2631},
          "debtToEquity": {"raw": 140.968}
        }
      }
    ],
    "error": null
  }
}`

type YahooProviderTestSuite struct {
	suite.Suite
}

func (suite *YahooProviderTestSuite) newServer(status int, body string) (*httptest.Server, *YahooProvider) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	suite.T().Cleanup(server.Close)

	provider := NewYahooProvider(nil)
	provider.baseURL = server.URL

	return server, provider
}

func (suite *YahooProviderTestSuite) TestFetchSeries() {
	_, provider := suite.newServer(http.StatusOK, chartBody)

	series, err := provider.FetchSeries(context.Background(), "AAPL", 365)
	suite.Require().NoError(err)

	// The all-null row is dropped; the null-close row survives as a
	// missing observation.
	suite.Equal(3, series.Len())
	suite.Equal("AAPL", series.Symbol)
	suite.Require().True(series.HasLocation())
	suite.Equal("America/New_York", series.Location.String())

	suite.Equal(184.8, series.Bars[0].Close)
	suite.False(series.Bars[1].HasClose())
	suite.Equal(183.9, series.Bars[1].Open)
	suite.Equal(182.1, series.Bars[2].Close)
	suite.Equal(61000000.0, series.Bars[2].Volume)
}

func (suite *YahooProviderTestSuite) TestFetchSeriesTrimsToLookback() {
	_, provider := suite.newServer(http.StatusOK, chartBody)

	series, err := provider.FetchSeries(context.Background(), "AAPL", 2)
	suite.Require().NoError(err)
	suite.Equal(2, series.Len())
	suite.Equal(182.1, series.Last().Close)
}

func (suite *YahooProviderTestSuite) TestFetchSeriesAPIError() {
	_, provider := suite.newServer(http.StatusOK, `{
	  "chart": {
	    "result": null,
	    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
	  }
	}`)

	_, err := provider.FetchSeries(context.Background(), "NOPE", 365)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFetchFailed))
}

func (suite *YahooProviderTestSuite) TestFetchSeriesEmptyResult() {
	_, provider := suite.newServer(http.StatusOK, `{"chart": {"result": [], "error": null}}`)

	_, err := provider.FetchSeries(context.Background(), "AAPL", 365)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataReturned))
}

func (suite *YahooProviderTestSuite) TestFetchSeriesHTTPError() {
	_, provider := suite.newServer(http.StatusTooManyRequests, "rate limited")

	_, err := provider.FetchSeries(context.Background(), "AAPL", 365)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFetchFailed))
}

func (suite *YahooProviderTestSuite) TestFetchSeriesMalformedBody() {
	_, provider := suite.newServer(http.StatusOK, "<html>not json</html>")

	_, err := provider.FetchSeries(context.Background(), "AAPL", 365)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeParseFailed))
}

func (suite *YahooProviderTestSuite) TestFillSummary() {
	_, provider := suite.newServer(http.StatusOK, summaryBody)

	quote := &types.Quote{
		Symbol:         "AAPL",
		DividendYield:  types.MissingQuoteField(),
		PayoutRatio:    types.MissingQuoteField(),
		Beta:           types.MissingQuoteField(),
		ReturnOnEquity: types.MissingQuoteField(),
		ProfitMargin:   types.MissingQuoteField(),
		DebtToEquity:   types.MissingQuoteField(),
	}
	suite.Require().NoError(provider.fillSummary(context.Background(), "AAPL", quote))

	suite.Equal("Technology", quote.Sector)
	suite.Equal("Consumer Electronics", quote.Industry)
	suite.InDelta(0.0044, quote.DividendYield, 1e-9)
	suite.InDelta(1.25, quote.Beta, 1e-9)
	suite.InDelta(0.2631, quote.ProfitMargin, 1e-9)
	suite.InDelta(140.968, quote.DebtToEquity, 1e-9)
}

func (suite *YahooProviderTestSuite) TestFillSummaryMissingFieldsStayMissing() {
	_, provider := suite.newServer(http.StatusOK, `{
	  "quoteSummary": {
	    "result": [{"assetProfile": {"sector": "Energy"}}],
	    "error": null
	  }
	}`)

	quote := &types.Quote{Symbol: "XOM", Beta: types.MissingQuoteField(), DividendYield: 0.035}
	suite.Require().NoError(provider.fillSummary(context.Background(), "XOM", quote))

	suite.Equal("Energy", quote.Sector)
	suite.False(types.HasField(quote.Beta))
	// A missing summary yield keeps the value already on the quote.
	suite.InDelta(0.035, quote.DividendYield, 1e-9)
}

func (suite *YahooProviderTestSuite) TestChartRange() {
	suite.Equal("1mo", chartRange(30))
	suite.Equal("3mo", chartRange(90))
	suite.Equal("1y", chartRange(365))
	suite.Equal("2y", chartRange(730))
	suite.Equal("5y", chartRange(1825))
	suite.Equal("max", chartRange(4000))
}

func TestYahooProviderTestSuite(t *testing.T) {
	suite.Run(t, new(YahooProviderTestSuite))
}
