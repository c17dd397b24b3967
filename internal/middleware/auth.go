package middleware

import (
	"net/http"
	"strings"

	"github.com/nzoschke/healthmate/internal/ctxkeys"
	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

// RequireToken rejects requests without a valid bearer token and puts the
// token subject in the context. Browsers cannot set headers on WebSocket
// upgrades, so the token may also come from the "token" query parameter there.
func RequireToken(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromRequest(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized, "unauthorized", "missing token")
				return
			}

			subject, err := authService.VerifyJWT(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx := ctxkeys.WithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		token := strings.TrimSpace(after)
		return token, token != ""
	}

	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		token := r.URL.Query().Get("token")
		return token, token != ""
	}

	return "", false
}
