package eventmodels

import (
	"fmt"
	"strings"
	"time"
)

type ModelIVSource string

const (
	ModelIVBlackScholes ModelIVSource = "black_scholes"
	ModelIVSABR         ModelIVSource = "sabr"
)

type SABRParamsYAML struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Rho   float64 `yaml:"rho"`
	Nu    float64 `yaml:"nu"`
}

type MispricingConfigYAML struct {
	PremiumThreshold float64        `yaml:"premiumThreshold"`
	ModelIVSource    ModelIVSource  `yaml:"modelIVSource"`
	SABR             SABRParamsYAML `yaml:"sabr"`
}

type ProfitabilityConfigYAML struct {
	PriceStep       float64  `yaml:"priceStep"`
	DayCountBasis   float64  `yaml:"dayCountBasis"`
	HolidayCalendar string   `yaml:"holidayCalendar"`
	ExtraHolidays   []string `yaml:"extraHolidays"`
}

// ExtraHolidayDates parses ExtraHolidays as YYYY-MM-DD.
func (c ProfitabilityConfigYAML) ExtraHolidayDates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(c.ExtraHolidays))
	for _, h := range c.ExtraHolidays {
		dt, err := time.Parse("2006-01-02", h)
		if err != nil {
			return nil, fmt.Errorf("ProfitabilityConfigYAML.ExtraHolidayDates: %q: %w", h, ErrInvalidConfig)
		}
		out = append(out, dt)
	}
	return out, nil
}

type RankingConfigYAML struct {
	StrikeBandPercent float64 `yaml:"strikeBandPercent"`
	DaysAfterTarget   int     `yaml:"daysAfterTarget"`
}

type ZeroDTEConfigYAML struct {
	VolumePercentile  float64 `yaml:"volumePercentile"`
	IVPercentile      float64 `yaml:"ivPercentile"`
	ATMPercentile     float64 `yaml:"atmPercentile"`
	MinQuartileSample int     `yaml:"minQuartileSample"`
}

type JumpParamsYAML struct {
	Intensity float64 `yaml:"intensity"`
	Mean      float64 `yaml:"mean"`
	StdDev    float64 `yaml:"stdDev"`
}

type PricingConfigYAML struct {
	MonteCarloPaths     int            `yaml:"monteCarloPaths"`
	MonteCarloSeed      int64          `yaml:"monteCarloSeed"`
	Jump                JumpParamsYAML `yaml:"jump"`
	HistoryLookbackDays int            `yaml:"historyLookbackDays"`
}

type RiskFreeRateConfigYAML struct {
	Source        string  `yaml:"source"`
	StaticPercent float64 `yaml:"staticPercent"`
	PolygonTicker string  `yaml:"polygonTicker"`
}

type MarketDataConfigYAML struct {
	CacheTTL     time.Duration          `yaml:"cacheTTL"`
	RiskFreeRate RiskFreeRateConfigYAML `yaml:"riskFreeRate"`
}

type AnalyzerConfigYAML struct {
	Mispricing    MispricingConfigYAML    `yaml:"mispricing"`
	Profitability ProfitabilityConfigYAML `yaml:"profitability"`
	Ranking       RankingConfigYAML       `yaml:"ranking"`
	ZeroDTE       ZeroDTEConfigYAML       `yaml:"zeroDTE"`
	Pricing       PricingConfigYAML       `yaml:"pricing"`
	MarketData    MarketDataConfigYAML    `yaml:"marketData"`
}

func DefaultAnalyzerConfig() *AnalyzerConfigYAML {
	cfg := &AnalyzerConfigYAML{}
	cfg.Defaults()
	return cfg
}

// Defaults fills every zero-valued field.
func (c *AnalyzerConfigYAML) Defaults() {
	if c.Mispricing.PremiumThreshold == 0 {
		c.Mispricing.PremiumThreshold = 0.34
	}
	if c.Mispricing.ModelIVSource == "" {
		c.Mispricing.ModelIVSource = ModelIVBlackScholes
	}
	if c.Mispricing.SABR == (SABRParamsYAML{}) {
		c.Mispricing.SABR = SABRParamsYAML{Alpha: 0.2, Beta: 0.5, Rho: -0.3, Nu: 0.4}
	}

	if c.Profitability.PriceStep == 0 {
		c.Profitability.PriceStep = 0.5
	}
	if c.Profitability.DayCountBasis == 0 {
		c.Profitability.DayCountBasis = 365
	}
	if c.Profitability.HolidayCalendar == "" {
		c.Profitability.HolidayCalendar = "us"
	}

	if c.Ranking.StrikeBandPercent == 0 {
		c.Ranking.StrikeBandPercent = 0.03
	}
	if c.Ranking.DaysAfterTarget == 0 {
		c.Ranking.DaysAfterTarget = 3
	}

	if c.ZeroDTE.VolumePercentile == 0 {
		c.ZeroDTE.VolumePercentile = 75
	}
	if c.ZeroDTE.IVPercentile == 0 {
		c.ZeroDTE.IVPercentile = 75
	}
	if c.ZeroDTE.ATMPercentile == 0 {
		c.ZeroDTE.ATMPercentile = 50
	}
	if c.ZeroDTE.MinQuartileSample == 0 {
		c.ZeroDTE.MinQuartileSample = 4
	}

	if c.Pricing.MonteCarloPaths == 0 {
		c.Pricing.MonteCarloPaths = 20000
	}
	if c.Pricing.MonteCarloSeed == 0 {
		c.Pricing.MonteCarloSeed = 7
	}
	if c.Pricing.Jump == (JumpParamsYAML{}) {
		c.Pricing.Jump = JumpParamsYAML{Intensity: 0.1, Mean: -0.05, StdDev: 0.1}
	}
	if c.Pricing.HistoryLookbackDays == 0 {
		c.Pricing.HistoryLookbackDays = 365
	}

	if c.MarketData.RiskFreeRate.Source == "" {
		c.MarketData.RiskFreeRate.Source = "static"
	}
	if c.MarketData.RiskFreeRate.StaticPercent == 0 {
		c.MarketData.RiskFreeRate.StaticPercent = 4.5
	}
	if c.MarketData.RiskFreeRate.PolygonTicker == "" {
		c.MarketData.RiskFreeRate.PolygonTicker = "I:IRX"
	}
}

func (c *AnalyzerConfigYAML) Validate() error {
	if c.Mispricing.PremiumThreshold <= 0 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: premiumThreshold must be positive: %w", ErrInvalidConfig)
	}

	switch c.Mispricing.ModelIVSource {
	case ModelIVBlackScholes, ModelIVSABR:
	default:
		return fmt.Errorf("AnalyzerConfigYAML.Validate: unknown modelIVSource %q: %w", c.Mispricing.ModelIVSource, ErrInvalidConfig)
	}

	if c.Profitability.PriceStep <= 0 || c.Profitability.DayCountBasis <= 0 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: priceStep and dayCountBasis must be positive: %w", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Profitability.HolidayCalendar) {
	case "us", "tradier":
	default:
		return fmt.Errorf("AnalyzerConfigYAML.Validate: unknown holidayCalendar %q: %w", c.Profitability.HolidayCalendar, ErrInvalidConfig)
	}

	if _, err := c.Profitability.ExtraHolidayDates(); err != nil {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: %w", err)
	}

	if c.Ranking.StrikeBandPercent <= 0 || c.Ranking.StrikeBandPercent >= 1 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: strikeBandPercent must be in (0, 1): %w", ErrInvalidConfig)
	}

	if c.Ranking.DaysAfterTarget < 0 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: daysAfterTarget must not be negative: %w", ErrInvalidConfig)
	}

	for name, p := range map[string]float64{
		"volumePercentile": c.ZeroDTE.VolumePercentile,
		"ivPercentile":     c.ZeroDTE.IVPercentile,
		"atmPercentile":    c.ZeroDTE.ATMPercentile,
	} {
		if p <= 0 || p > 100 {
			return fmt.Errorf("AnalyzerConfigYAML.Validate: %s must be in (0, 100]: %w", name, ErrInvalidConfig)
		}
	}

	if c.ZeroDTE.MinQuartileSample < 1 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: minQuartileSample must be at least 1: %w", ErrInvalidConfig)
	}

	if c.Pricing.MonteCarloPaths < 1 {
		return fmt.Errorf("AnalyzerConfigYAML.Validate: monteCarloPaths must be at least 1: %w", ErrInvalidConfig)
	}

	switch c.MarketData.RiskFreeRate.Source {
	case "static", "polygon":
	default:
		return fmt.Errorf("AnalyzerConfigYAML.Validate: unknown riskFreeRate source %q: %w", c.MarketData.RiskFreeRate.Source, ErrInvalidConfig)
	}

	return nil
}
