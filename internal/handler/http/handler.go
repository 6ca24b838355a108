// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response types for the
// REST API. Authentication and logging concerns are handled at this layer
// before requests are forwarded to the service layer.
package http

import (
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
