package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contentpilot/internal/app"
	"contentpilot/internal/transport/http/response"
)

type ChatHandler struct {
	router     *app.Router
	dispatcher *app.Dispatcher
	history    *app.HistoryService
}

type ChatRequest struct {
	SessionID string               `json:"session_id" binding:"required,max=64"`
	Prompt    string               `json:"prompt" binding:"required"`
	Documents []DocumentRefRequest `json:"documents"`
}

type DocumentRefRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewChatHandler(router *app.Router, dispatcher *app.Dispatcher, history *app.HistoryService) *ChatHandler {
	return &ChatHandler{
		router:     router,
		dispatcher: dispatcher,
		history:    history,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	refs := make([]app.DocumentRef, 0, len(req.Documents))
	for _, d := range req.Documents {
		refs = append(refs, app.DocumentRef{Name: d.Name})
	}

	ctx := c.Request.Context()
	agent := h.router.Route(ctx, req.Prompt)
	answer, err := h.dispatcher.Dispatch(ctx, agent, req.Prompt, refs)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate response failed")
		}
		return
	}

	// History persistence is best effort; a full queue must not lose
	// an answer that was already generated.
	if _, recordErr := h.history.Record(ctx, req.SessionID, req.Prompt, answer, agent); recordErr != nil {
		log.Printf("record conversation entry failed: %v", recordErr)
	}

	response.OK(c, gin.H{
		"session_id": req.SessionID,
		"agent":      agent,
		"response":   answer,
	})
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session_id")
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	entries, err := h.history.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get history failed")
		}
		return
	}

	response.OK(c, entries)
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session_id")
		return
	}

	if err := h.history.Clear(c.Request.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "clear history failed")
		}
		return
	}

	response.OK(c, gin.H{"cleared_session_id": sessionID})
}
