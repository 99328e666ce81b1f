package store

import (
	"sync"

	"github.com/moznion/go-optional"

	"github.com/finsight-dev/finsight/internal/types"
)

// SeriesStore caches the most recently fetched series for a single
// symbol. Setting a series for a different symbol replaces the cached
// state wholesale, including any derived results registered alongside it.
type SeriesStore interface {
	// Set replaces the stored series. Derived results are always
	// dropped since they are aligned to the series that produced them.
	Set(series *types.Series)
	// Get returns the stored series, or None when nothing has been set.
	Get() optional.Option[*types.Series]
	// Symbol returns the symbol of the stored series, or "" when empty.
	Symbol() string
	// SetIndicators attaches computed indicator columns to the stored
	// series. It is a no-op when the symbol does not match the stored
	// series.
	SetIndicators(symbol string, result types.IndicatorResult)
	// Indicators returns the derived columns for the stored series.
	Indicators() optional.Option[types.IndicatorResult]
	// Clear drops the stored series and all derived results.
	Clear()
}

// SeriesStoreV1 is the mutex-guarded in-memory implementation of
// SeriesStore.
type SeriesStoreV1 struct {
	mu         sync.RWMutex
	series     *types.Series
	indicators types.IndicatorResult
}

// NewSeriesStoreV1 creates an empty store.
func NewSeriesStoreV1() *SeriesStoreV1 {
	return &SeriesStoreV1{}
}

// Set replaces the stored series and drops any derived results.
func (s *SeriesStoreV1) Set(series *types.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = series
	s.indicators = nil
}

// Get returns the stored series, or None when nothing has been set.
func (s *SeriesStoreV1) Get() optional.Option[*types.Series] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.series == nil {
		return optional.None[*types.Series]()
	}
	return optional.Some(s.series)
}

// Symbol returns the symbol of the stored series, or "" when empty.
func (s *SeriesStoreV1) Symbol() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.series == nil {
		return ""
	}
	return s.series.Symbol
}

// SetIndicators attaches computed indicator columns to the stored
// series, ignoring results computed for a different symbol.
func (s *SeriesStoreV1) SetIndicators(symbol string, result types.IndicatorResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.series == nil || s.series.Symbol != symbol {
		return
	}
	s.indicators = result
}

// Indicators returns the derived columns for the stored series.
func (s *SeriesStoreV1) Indicators() optional.Option[types.IndicatorResult] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.indicators == nil {
		return optional.None[types.IndicatorResult]()
	}
	return optional.Some(s.indicators)
}

// Clear drops the stored series and all derived results.
func (s *SeriesStoreV1) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = nil
	s.indicators = nil
}
