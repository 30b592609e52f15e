package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type SABRParams struct {
	Alpha float64
	Beta  float64
	Rho   float64
	Nu    float64
}

func NewSABRParams(y eventmodels.SABRParamsYAML) SABRParams {
	return SABRParams{Alpha: y.Alpha, Beta: y.Beta, Rho: y.Rho, Nu: y.Nu}
}

func (p SABRParams) Validate() error {
	if p.Alpha <= 0 || p.Nu < 0 || p.Beta < 0 || p.Beta > 1 || p.Rho <= -1 || p.Rho >= 1 {
		return fmt.Errorf("SABRParams.Validate: %+v: %w", p, eventmodels.ErrInvalidConfig)
	}
	return nil
}

// SABRVolatility is Hagan's lognormal volatility approximation.
func SABRVolatility(forward, strike, t float64, p SABRParams) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("SABRVolatility: %w", err)
	}

	if forward <= 0 || strike <= 0 || t < 0 {
		return 0, fmt.Errorf("SABRVolatility: forward=%v strike=%v t=%v: %w", forward, strike, t, eventmodels.ErrDegenerateInput)
	}

	oneMinusBeta := 1 - p.Beta
	fk := math.Pow(forward*strike, oneMinusBeta/2)
	logFK := math.Log(forward / strike)

	correction := 1 + (oneMinusBeta*oneMinusBeta/24*p.Alpha*p.Alpha/(fk*fk)+
		p.Rho*p.Beta*p.Nu*p.Alpha/(4*fk)+
		(2-3*p.Rho*p.Rho)/24*p.Nu*p.Nu)*t

	denominator := fk * (1 + oneMinusBeta*oneMinusBeta/24*logFK*logFK +
		math.Pow(oneMinusBeta, 4)/1920*math.Pow(logFK, 4))

	if math.Abs(logFK) < 1e-12 || p.Nu == 0 {
		return p.Alpha / denominator * correction, nil
	}

	z := p.Nu / p.Alpha * fk * logFK
	xz := math.Log((math.Sqrt(1-2*p.Rho*z+z*z) + z - p.Rho) / (1 - p.Rho))

	return p.Alpha / denominator * (z / xz) * correction, nil
}
