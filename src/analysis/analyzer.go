package analysis

import (
	"fmt"
	"time"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
)

// Analyzer evaluates option contracts against live market data. It keeps no state
// between calls; every operation re-fetches what it needs.
type Analyzer struct {
	provider eventservices.MarketDataProvider
	rates    eventservices.RiskFreeRateProvider
	calendar eventservices.BusinessDayProvider
	history  eventservices.HistoricalPriceProvider
	config   *eventmodels.AnalyzerConfigYAML
	now      func() time.Time
}

type AnalyzerOption func(*Analyzer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithHistory enables jump parameter estimation from daily closes.
func WithHistory(history eventservices.HistoricalPriceProvider) AnalyzerOption {
	return func(a *Analyzer) {
		a.history = history
	}
}

func NewAnalyzer(provider eventservices.MarketDataProvider, rates eventservices.RiskFreeRateProvider, calendar eventservices.BusinessDayProvider, config *eventmodels.AnalyzerConfigYAML, opts ...AnalyzerOption) (*Analyzer, error) {
	if provider == nil || rates == nil || calendar == nil {
		return nil, fmt.Errorf("NewAnalyzer: provider, rates and calendar are required")
	}

	if config == nil {
		config = eventmodels.DefaultAnalyzerConfig()
	}

	// the analyzer keeps its own copy of the validated config
	cfg := *config
	cfg.Profitability.ExtraHolidays = append([]string(nil), config.Profitability.ExtraHolidays...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewAnalyzer: %w", err)
	}

	a := &Analyzer{
		provider: provider,
		rates:    rates,
		calendar: calendar,
		config:   &cfg,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

func (a *Analyzer) Config() eventmodels.AnalyzerConfigYAML {
	return *a.config
}
