package eventmodels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type OptionChainItemDTO struct {
	Symbol         string     `json:"symbol"`
	Underlying     string     `json:"underlying"`
	Strike         *float64   `json:"strike"`
	LastPrice      *float64   `json:"last"`
	Bid            float64    `json:"bid"`
	Ask            float64    `json:"ask"`
	Volume         float64    `json:"volume"`
	OptionType     string     `json:"option_type"`
	ExpirationDate string     `json:"expiration_date"`
	Greeks         *GreeksDTO `json:"greeks"`
}

type OptionChainRawDTO struct {
	Option *json.RawMessage `json:"option"`
}

// OptionChainDTO mirrors the tradier /markets/options/chains payload.
// "options" is null when nothing matches.
type OptionChainDTO struct {
	Options *OptionChainRawDTO `json:"options"`
}

func (dto *OptionChainDTO) Parse() ([]OptionChainItemDTO, error) {
	if dto.Options == nil || dto.Options.Option == nil {
		return nil, nil
	}

	raw := bytes.TrimSpace(*dto.Options.Option)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []OptionChainItemDTO
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("OptionChainDTO.Parse: %v: %w", err, ErrMalformedChain)
		}
	case '{':
		var item OptionChainItemDTO
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("OptionChainDTO.Parse: %v: %w", err, ErrMalformedChain)
		}
		items = append(items, item)
	default:
		return nil, fmt.Errorf("OptionChainDTO.Parse: unexpected payload %q: %w", string(raw), ErrMalformedChain)
	}

	return items, nil
}

// ToModel keeps rows of the requested type in provider order.
func (dto *OptionChainDTO) ToModel(optionType OptionType) (OptionChain, error) {
	items, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	chain := OptionChain{}
	for _, item := range items {
		if item.Symbol == "" || item.Strike == nil {
			return nil, fmt.Errorf("OptionChainDTO.ToModel: row missing symbol or strike: %w", ErrMalformedChain)
		}

		rowType, err := ParseOptionType(item.OptionType)
		if err != nil {
			return nil, fmt.Errorf("OptionChainDTO.ToModel: %v: %w", err, ErrMalformedChain)
		}

		if rowType != optionType {
			continue
		}

		expiration, err := time.Parse("2006-01-02", item.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("OptionChainDTO.ToModel: failed to parse expiration %q: %w", item.ExpirationDate, ErrMalformedChain)
		}

		row := OptionChainRow{
			Symbol:     OptionSymbol(item.Symbol),
			Strike:     *item.Strike,
			Volume:     item.Volume,
			OptionType: rowType,
			Expiration: expiration,
		}

		if item.LastPrice != nil {
			row.LastPrice = *item.LastPrice
		}

		if item.Greeks != nil {
			row.ImpliedVolatility = item.Greeks.MidIv
		}

		chain = append(chain, row)
	}

	return chain, nil
}

type OptionExpirationDatesDTO struct {
	Date *json.RawMessage `json:"date"`
}

type OptionExpirationsResponseDTO struct {
	Expirations *OptionExpirationDatesDTO `json:"expirations"`
}

func (dto *OptionExpirationsResponseDTO) ToModel() ([]time.Time, error) {
	if dto.Expirations == nil || dto.Expirations.Date == nil {
		return nil, nil
	}

	var dates []string
	if err := json.Unmarshal(*dto.Expirations.Date, &dates); err != nil {
		var date string
		if singleErr := json.Unmarshal(*dto.Expirations.Date, &date); singleErr != nil {
			return nil, fmt.Errorf("OptionExpirationsResponseDTO.ToModel: error decoding JSON: %v", singleErr)
		}
		dates = append(dates, date)
	}

	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		exp, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("OptionExpirationsResponseDTO.ToModel: failed to parse %q: %w", d, err)
		}
		out = append(out, exp)
	}

	return out, nil
}
