// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/go-chi/chi/v5"
)

// recordsFromRequest builds a [service.RecordService] bound to the
// authenticated username stored in the request context by the basic-auth
// middleware.
func (h *Handler) recordsFromRequest(r *http.Request) (service.RecordService, error) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		return nil, service.ErrBlankUsername
	}

	return h.services.RecordsFor(username)
}

func (h *Handler) savePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	records, err := h.recordsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("record service could not be created")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request savePasswordRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := records.SavePassword(ctx, request.ServiceName, request.Use, request.Platform, request.SecretValue)
	if err != nil {
		h.writeStoreError(w, r, err, "secret record was not saved")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	records, err := h.recordsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("record service could not be created")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request updatePasswordRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	serviceName := chi.URLParam(r, "service")
	updated, err := records.UpdatePassword(ctx, serviceName, request.SecretValue)
	if err != nil {
		h.writeStoreError(w, r, err, "secret record update failed")
		return
	}
	if !updated {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, usernameResponse{Username: records.Username()})
}

func (h *Handler) deletePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	records, err := h.recordsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("record service could not be created")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	serviceName := chi.URLParam(r, "service")
	deleted, err := records.DeletePassword(ctx, serviceName)
	if err != nil {
		h.writeStoreError(w, r, err, "secret record deletion failed")
		return
	}
	if !deleted {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPasswords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	records, err := h.recordsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("record service could not be created")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	all, err := records.ViewAllPasswords(ctx)
	if err != nil {
		h.writeStoreError(w, r, err, "secret record listing failed")
		return
	}

	writeJSON(w, http.StatusOK, all)
}

// writeStoreError maps service-layer failures onto HTTP statuses:
// an unreachable store becomes 503, anything else 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	if errors.Is(err, store.ErrStoreUnavailable) {
		log.Err(err).Msg("document store unavailable")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	log.Err(err).Msg(msg)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
