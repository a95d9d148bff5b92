package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// FromError maps a service error onto the HTTP error body.
// Only validation errors expose their text; everything else gets a fixed message.
func FromError(err error) ErrorMessage {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrorMessage{Message: verr.Error(), StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.ErrValidation):
		return ErrorMessage{Message: "invalid request", StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.ErrProblemNotFound):
		return ErrorMessage{Message: errs.ErrProblemNotFound.Error(), StatusCode: http.StatusNotFound}
	case errors.Is(err, errs.ErrUnauthorized):
		return ErrorMessage{Message: errs.ErrUnauthorized.Error(), StatusCode: http.StatusUnauthorized}
	case errors.Is(err, errs.ErrRateLimited):
		return ErrorMessage{Message: errs.ErrRateLimited.Error(), StatusCode: http.StatusTooManyRequests}
	case errors.Is(err, errs.ErrJudgeTimeout):
		return ErrorMessage{Message: errs.ErrJudgeTimeout.Error(), StatusCode: http.StatusGatewayTimeout}
	case errors.Is(err, errs.ErrDispatchUnavailable), errors.Is(err, errs.ErrDispatchInconsistent):
		return ErrorMessage{Message: "code execution service failed", StatusCode: http.StatusBadGateway}
	default:
		return ErrorMessage{Message: "internal server error", StatusCode: http.StatusInternalServerError}
	}
}
