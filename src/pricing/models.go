package pricing

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// Models maps a pricing model name to its pricer.
type Models map[eventmodels.PricingModel]PriceFunc

// AllModels lists the models in the order they are averaged and displayed.
var AllModels = []eventmodels.PricingModel{
	eventmodels.BlackScholesModel,
	eventmodels.MonteCarloModel,
	eventmodels.JumpDiffusionModel,
}

func NewModels(cfg eventmodels.PricingConfigYAML, jump JumpParams) Models {
	return Models{
		eventmodels.BlackScholesModel:  BlackScholes,
		eventmodels.MonteCarloModel:    NewMonteCarloPricer(cfg.MonteCarloPaths, cfg.MonteCarloSeed),
		eventmodels.JumpDiffusionModel: NewJumpDiffusionPricer(jump),
	}
}

func (m Models) Get(name eventmodels.PricingModel) (PriceFunc, error) {
	f, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("Models.Get: unknown pricing model %q", name)
	}
	return f, nil
}

// PriceAll prices one contract with every model in AllModels and returns the prices
// alongside their plain average.
func (m Models) PriceAll(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType) (map[eventmodels.PricingModel]float64, float64, error) {
	prices := make(map[eventmodels.PricingModel]float64, len(AllModels))
	values := make([]float64, 0, len(AllModels))
	for _, name := range AllModels {
		f, err := m.Get(name)
		if err != nil {
			return nil, 0, fmt.Errorf("Models.PriceAll: %w", err)
		}

		p := f(spot, strike, t, r, sigma, optionType)
		prices[name] = p
		values = append(values, p)
	}

	avg, err := stats.Mean(values)
	if err != nil {
		return nil, 0, fmt.Errorf("Models.PriceAll: %w", err)
	}

	return prices, avg, nil
}
