package indicator

// WindowConfig configures a single-window indicator family (SMA, EMA, RSI).
type WindowConfig struct {
	Window  int  `yaml:"window" validate:"gt=0"`
	Enabled bool `yaml:"enabled"`
}

// MACDConfig configures the MACD family. The fast window must be strictly
// smaller than the slow window.
type MACDConfig struct {
	Fast    int  `yaml:"fast" validate:"gt=0,ltfield=Slow"`
	Slow    int  `yaml:"slow" validate:"gt=0"`
	Signal  int  `yaml:"signal" validate:"gt=0"`
	Enabled bool `yaml:"enabled"`
}

// BollingerConfig configures the Bollinger Bands family.
type BollingerConfig struct {
	Window     int     `yaml:"window" validate:"gt=0"`
	Multiplier float64 `yaml:"multiplier" validate:"gt=0"`
	Enabled    bool    `yaml:"enabled"`
}

// Config is the per-recomputation snapshot of every indicator family. It is
// passed by value: the engine built from it never observes later edits.
type Config struct {
	SMA       WindowConfig    `yaml:"sma"`
	EMA       WindowConfig    `yaml:"ema"`
	RSI       WindowConfig    `yaml:"rsi"`
	MACD      MACDConfig      `yaml:"macd"`
	Bollinger BollingerConfig `yaml:"bollinger"`
}

// Validate checks every enabled family's configuration, using the same
// rules the family constructors apply. Disabled families are skipped;
// they are never constructed, so their settings are allowed to be
// incomplete until the user enables them.
func (c Config) Validate() error {
	checks := []struct {
		enabled bool
		build   func() (Indicator, error)
	}{
		{c.SMA.Enabled, func() (Indicator, error) { return NewSMA(c.SMA) }},
		{c.EMA.Enabled, func() (Indicator, error) { return NewEMA(c.EMA) }},
		{c.RSI.Enabled, func() (Indicator, error) { return NewRSI(c.RSI) }},
		{c.MACD.Enabled, func() (Indicator, error) { return NewMACD(c.MACD) }},
		{c.Bollinger.Enabled, func() (Indicator, error) { return NewBollingerBands(c.Bollinger) }},
	}

	for _, check := range checks {
		if !check.enabled {
			continue
		}

		if _, err := check.build(); err != nil {
			return err
		}
	}

	return nil
}

// DefaultConfig mirrors the dashboard's initial control state.
func DefaultConfig() Config {
	return Config{
		SMA:       WindowConfig{Window: 20, Enabled: true},
		EMA:       WindowConfig{Window: 50, Enabled: false},
		RSI:       WindowConfig{Window: 14, Enabled: true},
		MACD:      MACDConfig{Fast: 12, Slow: 26, Signal: 9, Enabled: true},
		Bollinger: BollingerConfig{Window: 20, Multiplier: 2.0, Enabled: true},
	}
}
