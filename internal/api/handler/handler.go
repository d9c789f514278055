// Package handler wires the HTTP and websocket API onto gin.
package handler

import (
	"mentorhub/backend/internal/ai"
	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/config"
	"mentorhub/backend/internal/email"
	"mentorhub/backend/internal/storage"
)

// Handler carries the dependencies every route needs.
type Handler struct {
	Hub       *chathub.ManagerService
	Relay     *chathub.RelayService
	Storage   storage.Storage
	Cfg       *config.Config
	Mailer    email.Mailer
	Assistant *ai.Assistant
}

func NewHandler(hub *chathub.ManagerService, relay *chathub.RelayService, s storage.Storage,
	cfg *config.Config, mailer email.Mailer, assistant *ai.Assistant) *Handler {
	return &Handler{
		Hub:       hub,
		Relay:     relay,
		Storage:   s,
		Cfg:       cfg,
		Mailer:    mailer,
		Assistant: assistant,
	}
}
