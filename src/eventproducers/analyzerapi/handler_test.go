package analyzerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type fakeAnalyzer struct {
	err         error
	lastBestReq eventmodels.SelectBestRequest
	lastLow     float64
	lastHigh    float64
	lastType    eventmodels.OptionType
}

func (f *fakeAnalyzer) ClassifyMispricing(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.MispricingResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &eventmodels.MispricingResult{
		Contract:       contract,
		Classification: eventmodels.Underpriced,
		MarketIV:       20,
		ModelIV:        25,
		Premium:        -5,
		Threshold:      0.34,
	}, nil
}

func (f *fakeAnalyzer) BuildSurface(ctx context.Context, contract eventmodels.OptionSymbol, expectedLow, expectedHigh float64) (*eventmodels.ProfitabilitySurface, error) {
	f.lastLow, f.lastHigh = expectedLow, expectedHigh
	if f.err != nil {
		return nil, f.err
	}

	return &eventmodels.ProfitabilitySurface{
		Contract:     contract,
		PriceLevels:  []float64{99.5, 100},
		Dates:        []time.Time{time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		Values:       [][]float64{{1.2}, {1.5}},
		Interpolated: []bool{true, false},
		LastPrice:    1.4,
	}, nil
}

func (f *fakeAnalyzer) SelectBest(ctx context.Context, req eventmodels.SelectBestRequest) (*eventmodels.SelectBestResult, error) {
	f.lastBestReq = req
	if f.err != nil {
		return nil, f.err
	}

	return &eventmodels.SelectBestResult{Found: true, OptionType: eventmodels.Call, Candidates: 3}, nil
}

func (f *fakeAnalyzer) ChooseZeroDTE(ctx context.Context, ticker eventmodels.StockSymbol, optionType eventmodels.OptionType) (*eventmodels.ZeroDTEResult, error) {
	f.lastType = optionType
	if f.err != nil {
		return nil, f.err
	}

	return &eventmodels.ZeroDTEResult{
		Outcome: eventmodels.SelectionEmptyChain,
		Message: fmt.Sprintf("no options available for %s expiring today", ticker),
	}, nil
}

func (f *fakeAnalyzer) PriceWithAllModels(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.ModelConsensus, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &eventmodels.ModelConsensus{
		Contract: contract,
		Prices:   map[eventmodels.PricingModel]float64{eventmodels.BlackScholesModel: 2.5},
		Average:  2.5,
	}, nil
}

func newTestRouter(t *testing.T, svc AnalyzerService) *mux.Router {
	h, err := NewHandler(svc, 3)
	require.NoError(t, err)

	router := mux.NewRouter()
	SetupHandler(router, h)
	return router
}

func doGet(router http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("mispricing returns result with request id", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/api/v1/mispricing?contract=AAPL240621C00190000")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			RequestID string                       `json:"request_id"`
			Result    eventmodels.MispricingResult `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.RequestID)
		assert.Equal(t, eventmodels.Underpriced, body.Result.Classification)
		assert.Equal(t, eventmodels.OptionSymbol("AAPL240621C00190000"), body.Result.Contract)
	})

	t.Run("mispricing rejects malformed contract", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/api/v1/mispricing?contract=NOTASYMBOL")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "validation", body.Type)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/api/v1/mispricing")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("surface passes the expected band", func(t *testing.T) {
		svc := &fakeAnalyzer{}
		rec := doGet(newTestRouter(t, svc), "/api/v1/surface?contract=AAPL240621C00190000&low=180&high=200")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 180.0, svc.lastLow)
		assert.Equal(t, 200.0, svc.lastHigh)
	})

	t.Run("degenerate surface input maps to 422", func(t *testing.T) {
		svc := &fakeAnalyzer{err: fmt.Errorf("BuildSurface: %w", eventmodels.ErrDegenerateInput)}
		rec := doGet(newTestRouter(t, svc), "/api/v1/surface?contract=AAPL240621C00190000&low=200&high=180")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("best uses default days after target", func(t *testing.T) {
		svc := &fakeAnalyzer{}
		rec := doGet(newTestRouter(t, svc), "/api/v1/best?ticker=aapl&expected_price=200&expected_date=2024-06-21")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, svc.lastBestReq.DaysAfterTarget)
		assert.Equal(t, eventmodels.StockSymbol("AAPL"), svc.lastBestReq.Ticker)
		assert.Nil(t, svc.lastBestReq.RiskFreeRate)
	})

	t.Run("best honours explicit overrides", func(t *testing.T) {
		svc := &fakeAnalyzer{}
		rec := doGet(newTestRouter(t, svc), "/api/v1/best?ticker=aapl&expected_price=200&expected_date=2024-06-21&days_after_target=0&risk_free_rate=5.1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, svc.lastBestReq.DaysAfterTarget)
		require.NotNil(t, svc.lastBestReq.RiskFreeRate)
		assert.Equal(t, 5.1, *svc.lastBestReq.RiskFreeRate)
	})

	t.Run("best rejects bad date", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/api/v1/best?ticker=aapl&expected_price=200&expected_date=06/21/2024")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zerodte defaults to calls", func(t *testing.T) {
		svc := &fakeAnalyzer{}
		rec := doGet(newTestRouter(t, svc), "/api/v1/zerodte?ticker=spy")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, eventmodels.Call, svc.lastType)
		assert.Contains(t, rec.Body.String(), "no options available for SPY expiring today")
	})

	t.Run("zerodte rejects unknown option type", func(t *testing.T) {
		rec := doGet(newTestRouter(t, &fakeAnalyzer{}), "/api/v1/zerodte?ticker=spy&option_type=straddle")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("data unavailable maps to bad gateway", func(t *testing.T) {
		svc := &fakeAnalyzer{err: fmt.Errorf("fetch: %w", eventmodels.ErrDataUnavailable)}
		rec := doGet(newTestRouter(t, svc), "/api/v1/consensus?contract=AAPL240621C00190000")
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "data_unavailable", body.Type)
	})

	t.Run("unexpected errors map to 500", func(t *testing.T) {
		svc := &fakeAnalyzer{err: fmt.Errorf("boom")}
		rec := doGet(newTestRouter(t, svc), "/api/v1/consensus?contract=AAPL240621C00190000")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
