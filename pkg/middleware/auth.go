package middleware

import (
	"net/http"

	"hotel-booking/pkg/remote"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ServiceAuth admits only callers presenting the shared service token in
// X-Service-Token. tokenHash is its bcrypt hash; an empty hash disables the check.
func ServiceAuth(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokenHash == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(remote.ServiceTokenHeader)
			if token == "" {
				logger.Warn("Service call without token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Missing service token")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				logger.Warn("Service call with invalid token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid service token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
