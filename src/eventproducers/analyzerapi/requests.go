package analyzerapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

var errBadRequest = errors.New("bad request")

type ContractRequestDTO struct {
	Contract string `schema:"contract,required"`
}

func (dto *ContractRequestDTO) ToModel() (eventmodels.OptionSymbol, error) {
	symbol := eventmodels.OptionSymbol(dto.Contract)
	if _, err := symbol.Components(); err != nil {
		return "", fmt.Errorf("ContractRequestDTO.ToModel: %w", err)
	}

	return symbol, nil
}

type SurfaceRequestDTO struct {
	Contract     string  `schema:"contract,required"`
	ExpectedLow  float64 `schema:"low,required"`
	ExpectedHigh float64 `schema:"high,required"`
}

type BestRequestDTO struct {
	Ticker          string   `schema:"ticker,required"`
	ExpectedPrice   float64  `schema:"expected_price,required"`
	ExpectedDate    string   `schema:"expected_date,required"`
	DaysAfterTarget *int     `schema:"days_after_target"`
	DividendYield   float64  `schema:"dividend_yield"`
	RiskFreeRate    *float64 `schema:"risk_free_rate"`
}

func (dto *BestRequestDTO) ToModel(defaultDaysAfterTarget int) (eventmodels.SelectBestRequest, error) {
	expectedDate, err := time.Parse("2006-01-02", dto.ExpectedDate)
	if err != nil {
		return eventmodels.SelectBestRequest{}, fmt.Errorf("BestRequestDTO.ToModel: expected_date must be YYYY-MM-DD: %w", errBadRequest)
	}

	if dto.ExpectedPrice <= 0 {
		return eventmodels.SelectBestRequest{}, fmt.Errorf("BestRequestDTO.ToModel: expected_price must be positive: %w", errBadRequest)
	}

	daysAfterTarget := defaultDaysAfterTarget
	if dto.DaysAfterTarget != nil {
		daysAfterTarget = *dto.DaysAfterTarget
	}

	return eventmodels.SelectBestRequest{
		Ticker:          eventmodels.NewStockSymbol(dto.Ticker),
		ExpectedPrice:   dto.ExpectedPrice,
		ExpectedDate:    expectedDate,
		DaysAfterTarget: daysAfterTarget,
		DividendYield:   dto.DividendYield,
		RiskFreeRate:    dto.RiskFreeRate,
	}, nil
}

type ZeroDTERequestDTO struct {
	Ticker     string `schema:"ticker,required"`
	OptionType string `schema:"option_type"`
}

func (dto *ZeroDTERequestDTO) ToModel() (eventmodels.StockSymbol, eventmodels.OptionType, error) {
	optionType := eventmodels.Call
	if dto.OptionType != "" {
		o, err := eventmodels.ParseOptionType(dto.OptionType)
		if err != nil {
			return "", "", fmt.Errorf("ZeroDTERequestDTO.ToModel: %w", err)
		}
		optionType = o
	}

	return eventmodels.NewStockSymbol(dto.Ticker), optionType, nil
}
