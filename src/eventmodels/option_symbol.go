package eventmodels

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var occSymbolRegex = regexp.MustCompile(`^([A-Z.]{1,6}\d?)(\d{6})([CP])(\d{8})$`)

type OptionSymbol string

func (s OptionSymbol) NoPrefix() string {
	if strings.HasPrefix(string(s), "O:") {
		return string(s)[2:]
	}

	return string(s)
}

func (s OptionSymbol) String() string {
	return strings.ToUpper(s.NoPrefix())
}

// Components decomposes an OCC symbol such as SPY240621C00450000.
func (s OptionSymbol) Components() (OptionSymbolComponents, error) {
	raw := strings.ToUpper(strings.TrimSpace(s.NoPrefix()))

	match := occSymbolRegex.FindStringSubmatch(raw)
	if match == nil {
		return OptionSymbolComponents{}, fmt.Errorf("OptionSymbol.Components: %w: %q", ErrInvalidOptionSymbol, string(s))
	}

	expiration, err := time.Parse("060102", match[2])
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("OptionSymbol.Components: failed to parse expiration %s: %w", match[2], ErrInvalidOptionSymbol)
	}

	optionType, err := ParseOptionType(match[3])
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("OptionSymbol.Components: %w", err)
	}

	strikeInt, err := strconv.ParseInt(match[4], 10, 64)
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("OptionSymbol.Components: failed to parse strike %s: %w", match[4], ErrInvalidOptionSymbol)
	}

	return OptionSymbolComponents{
		Underlying:  NewStockSymbol(match[1]),
		Expiration:  expiration,
		OptionType:  optionType,
		StrikePrice: float64(strikeInt) / 1000,
		Symbol:      OptionSymbol(raw),
	}, nil
}

func (s OptionSymbol) Description() (string, error) {
	components, err := s.Components()
	if err != nil {
		return "", fmt.Errorf("OptionSymbol.Description: failed to parse option symbol: %w", err)
	}

	expiration := components.Expiration.Format("Jan 2 2006")
	strikePrice := fmt.Sprintf("%.2f", components.StrikePrice)

	optionType := "Call"
	if components.OptionType == Put {
		optionType = "Put"
	}

	return fmt.Sprintf("%s %s $%s %s", components.Underlying, expiration, strikePrice, optionType), nil
}

func NewOptionSymbol(option OptionSymbolComponents) (OptionSymbol, error) {
	if err := option.OptionType.Validate(); err != nil {
		return "", fmt.Errorf("NewOptionSymbol: %w", err)
	}

	year := option.Expiration.Year() % 100
	month := int(option.Expiration.Month())
	day := option.Expiration.Day()

	strikePrice := fmt.Sprintf("%08d", int64(option.StrikePrice*1000+0.5))

	ticker := fmt.Sprintf("%s%02d%02d%02d%s%s",
		option.Underlying.String(), year, month, day, option.OptionType.Code(), strikePrice)

	return OptionSymbol(ticker), nil
}
