package eventmodels

import "time"

// OptionSymbolComponents struct to hold parsed option details
type OptionSymbolComponents struct {
	Underlying  StockSymbol
	Expiration  time.Time
	OptionType  OptionType
	StrikePrice float64
	Symbol      OptionSymbol
}

// DaysToExpiry counts whole calendar days between now's date and the expiration date.
func (c OptionSymbolComponents) DaysToExpiry(now time.Time) int {
	return DaysBetween(now, c.Expiration)
}

// DaysBetween returns the number of calendar days from a to b, ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// YearFraction converts a day count into years using the given basis.
func YearFraction(days int, basis float64) float64 {
	return float64(days) / basis
}
