package analyzerapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type errorResponse struct {
	RequestID uuid.UUID `json:"request_id"`
	Type      string    `json:"type"`
	Msg       string    `json:"message"`
}

type resultResponse struct {
	RequestID uuid.UUID   `json:"request_id"`
	Result    interface{} `json:"result"`
}

func setResponse(requestID uuid.UUID, result interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(&resultResponse{RequestID: requestID, Result: result}); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(requestID uuid.UUID, errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := &errorResponse{RequestID: requestID, Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

// classifyError maps domain errors onto an error type and http status.
func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, eventmodels.ErrInvalidOptionSymbol), errors.Is(err, eventmodels.ErrInvalidOptionType), errors.Is(err, errBadRequest):
		return "validation", http.StatusBadRequest
	case errors.Is(err, eventmodels.ErrDegenerateInput), errors.Is(err, eventmodels.ErrImpliedVolNotConverged):
		return "degenerate_input", http.StatusUnprocessableEntity
	case errors.Is(err, eventmodels.ErrMalformedChain):
		return "malformed_chain", http.StatusBadGateway
	case errors.Is(err, eventmodels.ErrDataUnavailable):
		return "data_unavailable", http.StatusBadGateway
	}

	return "internal", http.StatusInternalServerError
}
