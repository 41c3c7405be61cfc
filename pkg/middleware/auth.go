package middleware

import (
	"net/http"
	"strings"

	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	AdminCookieName  = "admin_session"
	AdminCookieValue = "authenticated"
)

// TokenVerifier resolves a bearer token to the caller's identity.
type TokenVerifier interface {
	Verify(raw string) (*utils.Identity, error)
}

// AuthBearer requires a valid "Authorization: Bearer <token>" header and puts the
// caller's user id and email into the request context.
func AuthBearer(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			identity, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Rejected bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.UserID, identity.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin reports whether the request carries the admin session cookie.
func IsAdmin(r *http.Request) bool {
	cookie, err := r.Cookie(AdminCookieName)
	return err == nil && cookie.Value == AdminCookieValue
}

// AdminSession rejects requests without the admin session cookie.
func AdminSession(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r) {
				logger.Warn("Admin check: access without session",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
