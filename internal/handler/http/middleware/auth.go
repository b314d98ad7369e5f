package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller's claims on the request context. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, raw, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		claims, err := jwt.ClaimsFromMap(raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, claims user.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (user.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(user.Claims)
	return claims, ok
}
