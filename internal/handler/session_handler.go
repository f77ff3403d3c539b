package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"xrplutter/gateway/internal/service"
	"xrplutter/gateway/pkg/response"
)

// SessionHandler serves the pairing-session flow: create a stub session and
// poll its status while a wallet works through the pairing URI.
type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		response.InternalError(c, "session store failure")
		return
	}
	c.JSON(200, gin.H{
		"payloadId":  session.ID,
		"pairingUri": session.PairingURI,
		"qrUrl":      session.QRURL,
	})
}

func (h *SessionHandler) Status(c *gin.Context) {
	id := c.Param("id")
	if !isUUIDv4(id) {
		response.BadRequest(c, "invalid id")
		return
	}

	state, err := h.sessions.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, "not found")
			return
		}
		response.InternalError(c, "session store failure")
		return
	}
	c.JSON(200, state)
}
