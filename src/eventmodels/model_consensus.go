package eventmodels

type PricingModel string

const (
	BlackScholesModel  PricingModel = "black_scholes"
	MonteCarloModel    PricingModel = "monte_carlo"
	JumpDiffusionModel PricingModel = "jump_diffusion"
)

type ModelConsensus struct {
	Contract             OptionSymbol             `json:"contract"`
	Prices               map[PricingModel]float64 `json:"prices"`
	Average              float64                  `json:"average"`
	LastPrice            float64                  `json:"last_price"`
	HistoricalVolatility *float64                 `json:"historical_volatility,omitempty"`
}
