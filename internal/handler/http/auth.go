package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.Accounts.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlankUsername):
			log.Err(err).Msg("blank username provided")
			http.Error(w, "username cannot be blank", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrLoginAlreadyExists):
			log.Err(err).Msg("login already exists")
			http.Error(w, "login already exists", http.StatusConflict)
			return
		case errors.Is(err, store.ErrStoreUnavailable):
			log.Err(err).Msg("document store unavailable")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusCreated, usernameResponse{Username: creds.Username})
}

// login confirms the credentials already verified by the basic-auth
// middleware. There is no session or token to issue — every request
// re-authenticates — so the handler only echoes the account.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	username, _, _ := r.BasicAuth()
	writeJSON(w, http.StatusOK, usernameResponse{Username: username})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	// DeleteUser re-checks the password itself, so it needs the raw
	// credentials rather than the context username
	username, password, _ := r.BasicAuth()

	err := h.services.Accounts.DeleteUser(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			log.Err(err).Msg("account deletion refused")
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		case errors.Is(err, store.ErrStoreUnavailable):
			log.Err(err).Msg("document store unavailable")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user deletion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Str("username", username).Msg("user deleted together with all secret records")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
