package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/session"
)

// Response is the JSON envelope of every /api/v1 reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: message, Data: data})
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Message: message, Data: data})
}

func abortWith(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	abortWith(c, http.StatusBadRequest, message)
}

// fail maps engine errors onto HTTP status codes.
func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		abortWith(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrInvalidState):
		abortWith(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrInvalidField):
		abortWith(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrPersistence):
		h.logger.Error("session store failure", zap.String("path", c.FullPath()), zap.Error(err))
		abortWith(c, http.StatusServiceUnavailable, "Session storage unavailable")
	default:
		h.logger.Error("internal server error", zap.String("path", c.FullPath()), zap.Error(err))
		abortWith(c, http.StatusInternalServerError, "Internal server error")
	}
}
