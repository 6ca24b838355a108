package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
)

// basicAuth is an HTTP middleware that enforces per-request basic
// authentication against the account service.
//
// There are no sessions or tokens: every request carries the username and
// password, and every request is re-verified. On success the authenticated
// username is stored in the request context under [utils.UsernameCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// Authorization header is absent or the credentials do not match, and with
// HTTP 503 when the document store cannot be reached.
func (h *Handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		username, password, ok := r.BasicAuth()
		if !ok {
			log.Error().Msg("missing basic auth credentials")
			w.Header().Set("WWW-Authenticate", `Basic realm="go-cred-vault"`)
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}

		authenticated, err := h.services.Accounts.Authenticate(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, store.ErrStoreUnavailable) {
				log.Err(err).Msg("document store unavailable")
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			log.Err(err).Msg("unexpected error occurred during authentication")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if !authenticated {
			log.Error().Str("username", username).Msg("authentication failed")
			http.Error(w, "invalid login/password", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UsernameCtxKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
