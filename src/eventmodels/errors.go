package eventmodels

import "errors"

var (
	// ErrDataUnavailable is returned when a collaborator answers with nothing usable.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrDegenerateInput marks a zero or non-finite denominator in a percentage change.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrMalformedChain signals an option chain that does not have the expected shape.
	ErrMalformedChain = errors.New("malformed option chain")

	ErrInvalidOptionSymbol    = errors.New("invalid option symbol")
	ErrInvalidOptionType      = errors.New("invalid option type")
	ErrImpliedVolNotConverged = errors.New("implied volatility did not converge")
	ErrInvalidConfig          = errors.New("invalid config")
)
