package run

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/analysis"
	"github.com/jiaming2012/options-analyzer/src/calendar"
	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
	"github.com/jiaming2012/options-analyzer/src/utils"
)

const defaultTradierBaseURL = "https://api.tradier.com"

type SetupArgs struct {
	ConfigPath string
	EnvDir     string
}

// Setup loads the environment and config, then wires the market data adapters into an analyzer.
//
// Environment:
//   - TRADIER_BEARER_TOKEN (required)
//   - TRADIER_BASE_URL (optional, defaults to the production api)
//   - POLYGON_API_KEY (required for the polygon rate source, enables historical closes)
func Setup(args SetupArgs) (*analysis.Analyzer, error) {
	if err := utils.InitEnvironmentVariables(args.EnvDir); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	config, err := utils.LoadAnalyzerConfig(args.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	bearerToken, err := utils.GetEnv("TRADIER_BEARER_TOKEN")
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	tradier := eventservices.NewTradierClient(utils.GetEnvOrDefault("TRADIER_BASE_URL", defaultTradierBaseURL), bearerToken)
	provider := eventservices.NewCachedMarketDataProvider(tradier, config.MarketData.CacheTTL)

	var opts []analysis.AnalyzerOption

	var polygon *eventservices.PolygonMarketData
	if apiKey, err := utils.GetEnv("POLYGON_API_KEY"); err == nil {
		polygon = eventservices.NewPolygonMarketData(eventservices.NewPolygonDailyClosesFetcher(apiKey), config.MarketData.RiskFreeRate.PolygonTicker, time.Now)
		opts = append(opts, analysis.WithHistory(polygon))
	} else {
		log.Debug("POLYGON_API_KEY not set: model consensus will use configured jump parameters")
	}

	rates, err := newRiskFreeRateProvider(config.MarketData.RiskFreeRate, polygon)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	businessDays, err := newBusinessDayProvider(config.Profitability, tradier)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	analyzer, err := analysis.NewAnalyzer(provider, rates, businessDays, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	return analyzer, nil
}

func newRiskFreeRateProvider(cfg eventmodels.RiskFreeRateConfigYAML, polygon *eventservices.PolygonMarketData) (eventservices.RiskFreeRateProvider, error) {
	switch strings.ToLower(cfg.Source) {
	case "static":
		return eventservices.StaticRiskFreeRate{Percent: cfg.StaticPercent}, nil
	case "polygon":
		if polygon == nil {
			return nil, fmt.Errorf("newRiskFreeRateProvider: polygon rate source requires POLYGON_API_KEY: %w", eventmodels.ErrInvalidConfig)
		}
		return polygon, nil
	}

	return nil, fmt.Errorf("newRiskFreeRateProvider: unknown source %q: %w", cfg.Source, eventmodels.ErrInvalidConfig)
}

func newBusinessDayProvider(cfg eventmodels.ProfitabilityConfigYAML, tradier *eventservices.TradierClient) (eventservices.BusinessDayProvider, error) {
	if strings.ToLower(cfg.HolidayCalendar) == "tradier" {
		return eventservices.NewTradierMarketCalendar(tradier), nil
	}

	extra, err := cfg.ExtraHolidayDates()
	if err != nil {
		return nil, fmt.Errorf("newBusinessDayProvider: %w", err)
	}

	return calendar.NewUSMarketCalendar(extra), nil
}
