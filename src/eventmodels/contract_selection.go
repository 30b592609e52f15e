package eventmodels

import "time"

type SelectBestRequest struct {
	Ticker          StockSymbol
	ExpectedPrice   float64
	ExpectedDate    time.Time
	DaysAfterTarget int
	DividendYield   float64
	RiskFreeRate    *float64 // percent; nil means fetch the current rate
}

type RankedContract struct {
	OptionChainRow
	FuturePrice            float64 `json:"future_price"`
	PotentialProfitPercent float64 `json:"potential_profit_percent"`
}

type SelectBestResult struct {
	Found      bool            `json:"found"`
	Message    string          `json:"message,omitempty"`
	OptionType OptionType      `json:"option_type"`
	Best       *RankedContract `json:"best,omitempty"`
	Candidates int             `json:"candidates"`
}

type SelectionOutcome string

const (
	SelectionFound             SelectionOutcome = "found"
	SelectionEmptyChain        SelectionOutcome = "empty_chain"
	SelectionMalformedChain    SelectionOutcome = "malformed_chain"
	SelectionNoSuitableOptions SelectionOutcome = "no_suitable_options"
)

type ZeroDTECandidate struct {
	OptionChainRow
	DistanceToATM  float64 `json:"distance_to_atm"`
	SelectionScore float64 `json:"selection_score"`
}

type ZeroDTEResult struct {
	Outcome  SelectionOutcome  `json:"outcome"`
	Message  string            `json:"message,omitempty"`
	Selected *ZeroDTECandidate `json:"selected,omitempty"`
}

func (r *ZeroDTEResult) Found() bool {
	return r.Outcome == SelectionFound
}
