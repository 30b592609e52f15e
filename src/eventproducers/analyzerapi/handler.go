package analyzerapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type AnalyzerService interface {
	ClassifyMispricing(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.MispricingResult, error)
	BuildSurface(ctx context.Context, contract eventmodels.OptionSymbol, expectedLow, expectedHigh float64) (*eventmodels.ProfitabilitySurface, error)
	SelectBest(ctx context.Context, req eventmodels.SelectBestRequest) (*eventmodels.SelectBestResult, error)
	ChooseZeroDTE(ctx context.Context, ticker eventmodels.StockSymbol, optionType eventmodels.OptionType) (*eventmodels.ZeroDTEResult, error)
	PriceWithAllModels(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.ModelConsensus, error)
}

type Handler struct {
	analyzer               AnalyzerService
	decoder                *schema.Decoder
	requests               metric.Int64Counter
	defaultDaysAfterTarget int
}

func (h *Handler) decode(dst interface{}, r *http.Request) error {
	if err := h.decoder.Decode(dst, r.URL.Query()); err != nil {
		return fmt.Errorf("decode query: %v: %w", err, errBadRequest)
	}
	return nil
}

// serve wraps an endpoint with request ids, metrics and error mapping.
func (h *Handler) serve(route string, fn func(r *http.Request) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New()
		logger := log.WithContext(r.Context()).WithField("request_id", requestID)

		result, err := fn(r)

		status := "ok"
		if err != nil {
			errType, code := classifyError(err)
			status = errType

			logger.Errorf("%s: %v", route, err)
			if respErr := setErrorResponse(requestID, errType, code, err, w); respErr != nil {
				logger.Errorf("%s: failed to set error response: %v", route, respErr)
			}
		} else if respErr := setResponse(requestID, result, w); respErr != nil {
			logger.Errorf("%s: failed to set response: %v", route, respErr)
		}

		h.requests.Add(r.Context(), 1, metric.WithAttributes(
			attribute.String("route", route),
			attribute.String("status", status),
		))
	}
}

func (h *Handler) mispricing(r *http.Request) (interface{}, error) {
	var dto ContractRequestDTO
	if err := h.decode(&dto, r); err != nil {
		return nil, err
	}

	contract, err := dto.ToModel()
	if err != nil {
		return nil, err
	}

	return h.analyzer.ClassifyMispricing(r.Context(), contract)
}

func (h *Handler) surface(r *http.Request) (interface{}, error) {
	var dto SurfaceRequestDTO
	if err := h.decode(&dto, r); err != nil {
		return nil, err
	}

	contract := eventmodels.OptionSymbol(dto.Contract)
	surface, err := h.analyzer.BuildSurface(r.Context(), contract, dto.ExpectedLow, dto.ExpectedHigh)
	if err != nil {
		return nil, err
	}

	return surface.ToDTO(), nil
}

func (h *Handler) best(r *http.Request) (interface{}, error) {
	var dto BestRequestDTO
	if err := h.decode(&dto, r); err != nil {
		return nil, err
	}

	req, err := dto.ToModel(h.defaultDaysAfterTarget)
	if err != nil {
		return nil, err
	}

	return h.analyzer.SelectBest(r.Context(), req)
}

func (h *Handler) zeroDTE(r *http.Request) (interface{}, error) {
	var dto ZeroDTERequestDTO
	if err := h.decode(&dto, r); err != nil {
		return nil, err
	}

	ticker, optionType, err := dto.ToModel()
	if err != nil {
		return nil, err
	}

	return h.analyzer.ChooseZeroDTE(r.Context(), ticker, optionType)
}

func (h *Handler) consensus(r *http.Request) (interface{}, error) {
	var dto ContractRequestDTO
	if err := h.decode(&dto, r); err != nil {
		return nil, err
	}

	contract, err := dto.ToModel()
	if err != nil {
		return nil, err
	}

	return h.analyzer.PriceWithAllModels(r.Context(), contract)
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func NewHandler(analyzer AnalyzerService, defaultDaysAfterTarget int) (*Handler, error) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	requests, err := otel.Meter("analyzerapi").Int64Counter("analyzer.api.requests",
		metric.WithDescription("Number of analyzer api requests by route and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("NewHandler: failed to create request counter: %w", err)
	}

	return &Handler{
		analyzer:               analyzer,
		decoder:                decoder,
		requests:               requests,
		defaultDaysAfterTarget: defaultDaysAfterTarget,
	}, nil
}

// SetupHandler registers the analyzer routes on router. Each route carries its pattern as
// the http.route attribute for the otel http instrumentation.
func SetupHandler(router *mux.Router, h *Handler) {
	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		router.Handle(pattern, otelhttp.WithRouteTag(pattern, handlerFunc)).Methods(http.MethodGet)
	}

	handle("/health", health)
	handle("/api/v1/mispricing", h.serve("mispricing", h.mispricing))
	handle("/api/v1/surface", h.serve("surface", h.surface))
	handle("/api/v1/best", h.serve("best", h.best))
	handle("/api/v1/zerodte", h.serve("zerodte", h.zeroDTE))
	handle("/api/v1/consensus", h.serve("consensus", h.consensus))
}
