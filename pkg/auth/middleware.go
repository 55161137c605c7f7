package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
)

// OperatorMiddleware rejects requests without a valid operator bearer token
func OperatorMiddleware(v *JWTValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(ErrMissingToken, ErrMissingToken.Error()))
				return
			}

			claims, err := v.ValidateToken(token)
			if err != nil {
				logger.Debug("operator token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, ErrNotOperator) {
					apphttp.DefaultErrorHandler(w, apperrors.ForbiddenError(err, err.Error()))
					return
				}
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), claims.Subject)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
