package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hotel-booking/internal/apperror"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20

// errEmptyBody is returned by decodeJSON when the request has no body.
var errEmptyBody = errors.New("empty request body")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondInvalidJSON(w http.ResponseWriter) {
	utils.ResponseBadRequest(w, apperror.CodeInvalidJSON, "Invalid JSON", nil)
}

// respondServiceError writes err as {error, code}. Errors that are not
// *apperror.Error are reported as INTERNAL without their text.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal("Internal server error", err)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("code", appErr.Code),
	}
	if appErr.Status >= http.StatusInternalServerError {
		log.Error(operation+" failed", fields...)
	} else {
		log.Warn(operation+" rejected", fields...)
	}

	message := appErr.Message
	if appErr.Code == apperror.CodeInternal {
		message = "Internal server error"
	}
	utils.ResponseError(w, appErr.Status, appErr.Code, message, appErr.Details)
}
