package eventservices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

const (
	tradierQuotesPath         = "/v1/markets/quotes"
	tradierOptionChainsPath   = "/v1/markets/options/chains"
	tradierExpirationsPath    = "/v1/markets/options/expirations"
	tradierMarketCalendarPath = "/v1/markets/calendar"
)

var errTradierDecode = errors.New("failed to decode json")

// TradierClient talks to the tradier brokerage market data api.
type TradierClient struct {
	baseURL     string
	bearerToken string
	client      *http.Client
}

func (c *TradierClient) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("TradierClient.get: failed to create request: %w", err)
	}

	req.URL.RawQuery = query.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearerToken))

	log.Debugf("TradierClient: GET %s?%s", path, req.URL.RawQuery)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("TradierClient.get: failed to fetch %s: %w", path, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("TradierClient.get: failed to fetch %s, http code %v: %w", path, res.Status, eventmodels.ErrDataUnavailable)
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("TradierClient.get: %w: %v", errTradierDecode, err)
	}

	return nil
}

func (c *TradierClient) fetchQuotes(ctx context.Context, symbols []string, greeks bool) ([]eventmodels.QuoteDTO, error) {
	query := url.Values{}
	query.Add("symbols", strings.Join(symbols, ","))
	query.Add("greeks", strconv.FormatBool(greeks))

	var dto eventmodels.QuotesDTO
	if err := c.get(ctx, tradierQuotesPath, query, &dto); err != nil {
		return nil, fmt.Errorf("fetchQuotes: %w", err)
	}

	quotes, unmatched, err := dto.Parse()
	if err != nil {
		return nil, fmt.Errorf("fetchQuotes: %w", err)
	}

	if len(unmatched.Symbol) > 0 {
		log.Warnf("fetchQuotes: unmatched symbols %v", unmatched.Symbol)
	}

	return quotes, nil
}

func (c *TradierClient) FetchUnderlyingPrice(ctx context.Context, symbol eventmodels.StockSymbol) (float64, error) {
	quotes, err := c.fetchQuotes(ctx, []string{symbol.String()}, false)
	if err != nil {
		return 0, fmt.Errorf("FetchUnderlyingPrice: %w", err)
	}

	for _, q := range quotes {
		if !strings.EqualFold(q.Symbol, symbol.String()) {
			continue
		}

		if price, ok := q.Price(); ok {
			return price, nil
		}
	}

	return 0, fmt.Errorf("FetchUnderlyingPrice: no price for %s: %w", symbol, eventmodels.ErrDataUnavailable)
}

func (c *TradierClient) FetchOptionQuote(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.OptionQuote, error) {
	quotes, err := c.fetchQuotes(ctx, []string{contract.String()}, true)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionQuote: %w", err)
	}

	for _, q := range quotes {
		if !strings.EqualFold(q.Symbol, contract.String()) {
			continue
		}

		quote, err := q.ToOptionQuote()
		if err != nil {
			return nil, fmt.Errorf("FetchOptionQuote: %w", err)
		}

		return quote, nil
	}

	return nil, fmt.Errorf("FetchOptionQuote: no quote for %s: %w", contract, eventmodels.ErrDataUnavailable)
}

func (c *TradierClient) FetchOptionChain(ctx context.Context, underlying eventmodels.StockSymbol, optionType eventmodels.OptionType, expiration time.Time) (eventmodels.OptionChain, error) {
	tracer := otel.Tracer("TradierClient")
	ctx, span := tracer.Start(ctx, "TradierClient.FetchOptionChain")
	defer span.End()

	span.SetAttributes(
		attribute.String("symbol", underlying.String()),
		attribute.String("optionType", string(optionType)),
		attribute.String("expiration", expiration.Format("2006-01-02")),
	)

	query := url.Values{}
	query.Add("symbol", underlying.String())
	query.Add("expiration", expiration.Format("2006-01-02"))
	query.Add("greeks", "true")

	var dto eventmodels.OptionChainDTO
	if err := c.get(ctx, tradierOptionChainsPath, query, &dto); err != nil {
		if errors.Is(err, errTradierDecode) {
			return nil, fmt.Errorf("FetchOptionChain: %v: %w", err, eventmodels.ErrMalformedChain)
		}
		return nil, fmt.Errorf("FetchOptionChain: %w", err)
	}

	chain, err := dto.ToModel(optionType)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: %w", err)
	}

	span.SetAttributes(attribute.Int("rows", len(chain)))

	return chain, nil
}

func (c *TradierClient) FetchExpirations(ctx context.Context, underlying eventmodels.StockSymbol) ([]time.Time, error) {
	query := url.Values{}
	query.Add("symbol", underlying.String())
	query.Add("includeAllRoots", "true")

	var dto eventmodels.OptionExpirationsResponseDTO
	if err := c.get(ctx, tradierExpirationsPath, query, &dto); err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	expirations, err := dto.ToModel()
	if err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	return expirations, nil
}

func (c *TradierClient) FetchMarketCalendar(ctx context.Context, year int, month time.Month) (*eventmodels.MarketCalendar, error) {
	query := url.Values{}
	query.Add("month", fmt.Sprintf("%02d", int(month)))
	query.Add("year", strconv.Itoa(year))

	var dto eventmodels.MarketCalendar
	if err := c.get(ctx, tradierMarketCalendarPath, query, &dto); err != nil {
		return nil, fmt.Errorf("FetchMarketCalendar: %w", err)
	}

	return &dto, nil
}

func NewTradierClient(baseURL, bearerToken string) *TradierClient {
	return &TradierClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
