package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/supportdesk/aisha/internal/chat"
)

// MalformedInputMessage is returned verbatim when the request carries no
// content, before any extraction, retrieval or model call happens.
const MalformedInputMessage = "Invalid input format. No content found."

type ChatHandler struct {
	Chat *chat.Manager
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.chat)
}

type chatRequest struct {
	Input struct {
		Content  string `json:"content"`
		Language string `json:"language"`
	} `json:"input"`
	Config struct {
		SessionID string `json:"session_id"`
	} `json:"config"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		// a user-facing diagnostic, not a backend failure, so it rides in the
		// normal response field
		return c.JSON(http.StatusOK, chatResponse{Response: MalformedInputMessage})
	}
	if strings.TrimSpace(req.Input.Content) == "" {
		return c.JSON(http.StatusOK, chatResponse{Response: MalformedInputMessage})
	}

	resp, err := h.Chat.HandleTurn(c.Request().Context(), req.Config.SessionID, req.Input.Content, req.Input.Language)
	if err != nil {
		// completion/storage failures surface as a distinct error kind and
		// never masquerade as an assistant reply
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, chatResponse{Response: resp})
}
