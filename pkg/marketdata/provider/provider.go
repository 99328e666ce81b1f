package provider

import (
	"context"
	"sort"
	"sync"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
	"github.com/finsight-dev/finsight/pkg/logger"
)

// Provider fetches historical bars and quote snapshots from one market
// data backend.
type Provider interface {
	// Name returns the provider's registry name.
	Name() string
	// FetchSeries fetches up to lookbackDays of daily bars ending at the
	// most recent session. The returned series carries the exchange
	// timezone when the backend reports one.
	FetchSeries(ctx context.Context, symbol string, lookbackDays int) (*types.Series, error)
	// FetchQuote fetches the current market snapshot and fundamentals.
	// Fields the backend does not supply are NaN.
	FetchQuote(ctx context.Context, symbol string) (*types.Quote, error)
}

// Config carries the credentials and wiring a provider factory may need.
type Config struct {
	PolygonAPIKey string
	Logger        *logger.Logger
}

// Factory constructs a provider from its config.
type Factory func(cfg Config) (Provider, error)

var (
	factoriesMutex sync.RWMutex
	factories      = make(map[string]Factory)
)

// Register adds a provider factory under a name. Later registrations
// replace earlier ones.
func Register(name string, factory Factory) {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	factories[name] = factory
}

// New builds the named provider.
func New(name string, cfg Config) (Provider, error) {
	factoriesMutex.RLock()
	factory, ok := factories[name]
	factoriesMutex.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidProvider,
			"unknown market data provider %q (available: %v)", name, Names())
	}

	return factory(cfg)
}

// Names returns the registered provider names in sorted order.
func Names() []string {
	factoriesMutex.RLock()
	defer factoriesMutex.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
