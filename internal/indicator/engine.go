package indicator

import (
	"go.uber.org/zap"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

// Engine composes the enabled indicator families over one series. It is
// rebuilt from a fresh Config snapshot whenever the user toggles an
// indicator, so a computation never observes a half-updated configuration.
type Engine struct {
	registry Registry
	logger   *logger.Logger
}

// NewEngine validates the enabled families of the configuration and builds an
// engine holding one indicator per family. Disabled families are not
// constructed and their configuration is not validated.
func NewEngine(cfg Config, log *logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	registry := NewRegistry()

	type constructor func() (Indicator, error)

	constructors := []struct {
		enabled bool
		build   constructor
	}{
		{cfg.SMA.Enabled, func() (Indicator, error) { return NewSMA(cfg.SMA) }},
		{cfg.EMA.Enabled, func() (Indicator, error) { return NewEMA(cfg.EMA) }},
		{cfg.RSI.Enabled, func() (Indicator, error) { return NewRSI(cfg.RSI) }},
		{cfg.MACD.Enabled, func() (Indicator, error) { return NewMACD(cfg.MACD) }},
		{cfg.Bollinger.Enabled, func() (Indicator, error) { return NewBollingerBands(cfg.Bollinger) }},
	}

	for _, c := range constructors {
		if !c.enabled {
			continue
		}

		indicator, err := c.build()
		if err != nil {
			return nil, err
		}

		if err := registry.RegisterIndicator(indicator); err != nil {
			return nil, err
		}
	}

	return &Engine{
		registry: registry,
		logger:   log,
	}, nil
}

// Registry exposes the active indicator families.
func (e *Engine) Registry() Registry {
	return e.registry
}

// Compute derives all enabled indicator columns from the series. Families
// with insufficient history are omitted from the result entirely; an empty
// series yields an empty result. Compute never fails for data reasons, only
// for calculation bugs surfaced by an indicator.
func (e *Engine) Compute(series *types.Series) (types.IndicatorResult, error) {
	result := types.IndicatorResult{}
	if series.IsEmpty() {
		return result, nil
	}

	for _, name := range e.registry.ListIndicators() {
		indicator, err := e.registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		columns, err := indicator.Compute(series)
		if err != nil {
			if errors.IsInsufficientDataError(err) {
				e.logger.Debug("indicator omitted",
					zap.String("indicator", string(name)),
					zap.String("symbol", series.Symbol),
					zap.Error(err))

				continue
			}

			return nil, err
		}

		result.Merge(columns)
	}

	return result, nil
}
