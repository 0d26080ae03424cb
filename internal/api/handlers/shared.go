package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ndewijer/portfolio-vis/internal/api/response"
	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/validation"
)

// maxBodyBytes bounds request bodies; a portfolio payload is a few hundred bytes.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T.
func parseJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("request body is empty")
		}
		return v, err
	}
	return v, nil
}

// parseDaysParam reads the optional "days" query parameter.
func parseDaysParam(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return nil, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("days must be an integer")
	}
	return &days, nil
}

// respondValidationError answers 400 with the field messages of a validation failure.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps a service error onto an HTTP status: malformed input is the
// client's fault (400), missing market data is the provider's (502) and anything else
// is ours (500). message names the failed operation.
func respondServiceError(w http.ResponseWriter, err error, message error) {
	switch {
	case errors.Is(err, apperrors.ErrMalformedInput), errors.Is(err, apperrors.ErrInvalidDateRange):
		respondValidationError(w, err)
	case errors.Is(err, apperrors.ErrDataUnavailable):
		response.RespondError(w, http.StatusBadGateway, message.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message.Error(), err.Error())
	}
}

// seriesOrEmpty keeps JSON arrays from encoding as null.
func seriesOrEmpty(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return values
}

func warningsOrNil(warnings []model.Warning) []model.Warning {
	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
