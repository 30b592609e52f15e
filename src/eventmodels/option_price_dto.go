package eventmodels

import (
	"encoding/json"
	"fmt"
	"time"
)

type GreeksDTO struct {
	Delta     float64 `json:"delta"`
	Gamma     float64 `json:"gamma"`
	Theta     float64 `json:"theta"`
	Vega      float64 `json:"vega"`
	Rho       float64 `json:"rho"`
	Phi       float64 `json:"phi"`
	BidIv     float64 `json:"bid_iv"`
	MidIv     float64 `json:"mid_iv"`
	AskIv     float64 `json:"ask_iv"`
	SmvVol    float64 `json:"smv_vol"`
	UpdatedAt string  `json:"updated_at"`
}

type QuoteDTO struct {
	Symbol         string     `json:"symbol"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	LastPrice      *float64   `json:"last"`
	Volume         int        `json:"volume"`
	Bid            float64    `json:"bid"`
	Ask            float64    `json:"ask"`
	Underlying     string     `json:"underlying"`
	Strike         float64    `json:"strike"`
	Greeks         *GreeksDTO `json:"greeks"`
	Prevclose      *float64   `json:"prevclose"`
	OpenInterest   int        `json:"open_interest"`
	ContractSize   int        `json:"contract_size"`
	ExpirationDate string     `json:"expiration_date"`
	ExpirationType string     `json:"expiration_type"`
	OptionType     string     `json:"option_type"`
	RootSymbol     string     `json:"root_symbol"`
}

// Price returns the last trade, falling back to the previous close and then the mid.
func (q *QuoteDTO) Price() (float64, bool) {
	if q.LastPrice != nil && *q.LastPrice > 0 {
		return *q.LastPrice, true
	}

	if q.Prevclose != nil && *q.Prevclose > 0 {
		return *q.Prevclose, true
	}

	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2, true
	}

	return 0, false
}

type UnmatchedSymbolsDTO struct {
	Symbol []string `json:"symbol"`
}

type UnmatchedSymbolDTO struct {
	Symbol string `json:"symbol"`
}

type QuotesRawDTO struct {
	Quote            *json.RawMessage `json:"quote"`
	UnmatchedSymbols *json.RawMessage `json:"unmatched_symbols"`
}

type QuotesDTO struct {
	Quotes QuotesRawDTO `json:"quotes"`
}

func (dto *QuotesDTO) Parse() ([]QuoteDTO, UnmatchedSymbolsDTO, error) {
	var quotes []QuoteDTO
	if dto.Quotes.Quote != nil {
		// tradier sends an object instead of a list when a single symbol matches
		if quoteListErr := json.Unmarshal(*dto.Quotes.Quote, &quotes); quoteListErr != nil {
			var quote QuoteDTO
			if quoteSingleErr := json.Unmarshal(*dto.Quotes.Quote, &quote); quoteSingleErr != nil {
				return nil, UnmatchedSymbolsDTO{}, fmt.Errorf("QuotesDTO.Parse: error decoding JSON: %v", quoteSingleErr)
			}
			quotes = append(quotes, quote)
		}
	}

	var unmatchedSymbols UnmatchedSymbolsDTO
	if dto.Quotes.UnmatchedSymbols != nil {
		if unmatchedSymbolsErr := json.Unmarshal(*dto.Quotes.UnmatchedSymbols, &unmatchedSymbols); unmatchedSymbolsErr != nil {
			var unmatchedSymbol UnmatchedSymbolDTO
			if unmatchedSymbolErr := json.Unmarshal(*dto.Quotes.UnmatchedSymbols, &unmatchedSymbol); unmatchedSymbolErr != nil {
				return nil, UnmatchedSymbolsDTO{}, fmt.Errorf("QuotesDTO.Parse: error decoding JSON: %v", unmatchedSymbolErr)
			}
			unmatchedSymbols.Symbol = append(unmatchedSymbols.Symbol, unmatchedSymbol.Symbol)
		}
	}

	return quotes, unmatchedSymbols, nil
}

// ToOptionQuote converts an option quote. Tradier reports IV as a fraction.
func (q *QuoteDTO) ToOptionQuote() (*OptionQuote, error) {
	price, ok := q.Price()
	if !ok {
		return nil, fmt.Errorf("QuoteDTO.ToOptionQuote: no price for %s: %w", q.Symbol, ErrDataUnavailable)
	}

	if q.Greeks == nil || q.Greeks.MidIv <= 0 {
		return nil, fmt.Errorf("QuoteDTO.ToOptionQuote: no implied volatility for %s: %w", q.Symbol, ErrDataUnavailable)
	}

	var expiration time.Time
	if q.ExpirationDate != "" {
		exp, err := time.Parse("2006-01-02", q.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("QuoteDTO.ToOptionQuote: failed to parse expiration date: %w", err)
		}
		expiration = exp
	}

	return &OptionQuote{
		Symbol:            OptionSymbol(q.Symbol),
		Underlying:        NewStockSymbol(q.Underlying),
		LastPrice:         price,
		Bid:               q.Bid,
		Ask:               q.Ask,
		Volume:            q.Volume,
		ImpliedVolatility: q.Greeks.MidIv,
		ExpirationDate:    expiration,
	}, nil
}
