package eventmodels

type Mispricing string

const (
	Underpriced Mispricing = "underpriced"
	Overpriced  Mispricing = "overpriced"
)

type MispricingResult struct {
	Contract       OptionSymbol `json:"contract"`
	Classification Mispricing   `json:"classification"`
	MarketIV       float64      `json:"market_iv_percent"`
	ModelIV        float64      `json:"model_iv_percent"`
	Premium        float64      `json:"premium"`
	Threshold      float64      `json:"threshold"`
}
