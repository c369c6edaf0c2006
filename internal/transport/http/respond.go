package http

import (
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}

func writeValidation(w http.ResponseWriter, errs domain.ValidationErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Message: "Validation failed",
		Errors:  errs.Fields(),
	})
}

// statusFor maps an error to the response status
func statusFor(err error) int {
	var verrs domain.ValidationErrors
	var apiErr *api.Error
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCategory), errors.Is(err, domain.ErrInvalidSession):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfStock), errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrStepOrder):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCoupon):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, api.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// writeError responds with the status for err. Server errors get a generic message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeValidation(w, verrs)
		return
	}

	status := statusFor(err)
	msg := fallback
	if status < http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		msg = err.Error()
	}
	writeMessage(w, status, msg)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
