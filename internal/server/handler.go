package server

import (
	"encoding/json"
	"io"
	"net/http"

	stderrors "catalog-assistant/internal/common/errors"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/common/validation"
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/resolver"

	"github.com/gin-gonic/gin"
)

// ResolveRequest is the inbound JSON body for POST /api/order-intent.
type ResolveRequest struct {
	Message     string        `json:"message"`
	CustomerID  string        `json:"customerId"`
	ChatHistory []wireMessage `json:"chatHistory"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OrderIntentHandler struct {
	resolver *resolver.Resolver
	logger   logger.Logger
}

func NewOrderIntentHandler(r *resolver.Resolver, log logger.Logger) *OrderIntentHandler {
	return &OrderIntentHandler{
		resolver: r,
		logger:   log.With(map[string]interface{}{"handler": "order-intent"}),
	}
}

// Resolve handles POST /api/order-intent. Validation and authorization are
// the only conditions that surface an error status; once those gates pass,
// the resolver always produces a reply.
func (h *OrderIntentHandler) Resolve(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	var rawBody map[string]interface{}
	if err := json.Unmarshal(body, &rawBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not valid JSON"})
		return
	}

	if err := validation.ValidateResolveRequest(rawBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ResolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not valid JSON"})
		return
	}

	session := sessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	if session.CustomerID != req.CustomerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "session does not match the requested customer"})
		return
	}

	history := make([]models.ChatMessage, 0, len(req.ChatHistory))
	for _, m := range req.ChatHistory {
		role, err := models.ParseRole(m.Role)
		if err != nil {
			// Schema validation already rejects unknown roles.
			continue
		}
		history = append(history, models.ChatMessage{Role: role, Content: m.Content})
	}

	result, err := h.resolver.Resolve(c.Request.Context(), resolver.Request{
		RequestID:   requestIDFrom(c),
		CustomerID:  req.CustomerID,
		Message:     req.Message,
		ChatHistory: history,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var stdErr *stderrors.StandardError
		if ok := asStandardError(err, &stdErr); ok {
			status = stderrors.HTTPStatus(stdErr.Code)
		}
		h.logger.Error("resolution failed", map[string]interface{}{
			"requestId": requestIDFrom(c),
			"error":     err.Error(),
		})
		c.JSON(status, gin.H{"error": "unable to load your catalog right now"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func asStandardError(err error, target **stderrors.StandardError) bool {
	if se, ok := err.(*stderrors.StandardError); ok {
		*target = se
		return true
	}
	return false
}
