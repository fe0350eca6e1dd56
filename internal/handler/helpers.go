package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/waypost-dev/waypost/internal/errors"
	"github.com/waypost-dev/waypost/internal/logger"
)

// fieldErrorsResponse is the user-facing shape for recoverable input
// errors: a generic banner plus per-field detail.
type fieldErrorsResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// writeError maps service errors to HTTP. Validation errors become 422
// with field-level detail; ErrorWithStatusCode carries its own code;
// anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *internal_errors.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrorsResponse{
			Message: "Please review the fields below",
			Errors:  map[string][]string{validationErr.Field: {validationErr.Message}},
		})
		return
	}
	var statusErr *internal_errors.ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		http.Error(w, statusErr.Message, statusErr.StatusCode)
		return
	}
	logger.Log.Error("unhandled error", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// decodeValidate decodes a JSON body and checks required fields.
func decodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}
