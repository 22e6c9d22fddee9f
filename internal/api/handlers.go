package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "IQFieldBot API"

type handler struct {
	engine *session.Engine
	pinger store.Pinger
	logger  *zap.Logger
	version string
	now     func() time.Time
}

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

type selectFieldRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
}

type answerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Answer    string `json:"answer"`
}

type messageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message"`
	Field     string `json:"field"`
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC(),
		"service":   ServiceName,
		"version":   h.version,
	})
}

func (h *handler) ready(c *gin.Context) {
	checks := gin.H{}
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.Error(err))
			checks["store"] = "down"
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
			return
		}
		checks["store"] = "up"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

func (h *handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return
	}
	s, err := h.engine.Create(c.Request.Context(), req.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, "Session created successfully. Please select a field to begin testing.", gin.H{
		"session": s,
		"state":   s.State().String(),
	})
}

func (h *handler) getSession(c *gin.Context) {
	s, err := h.engine.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, "success", gin.H{
		"session": s,
		"state":   s.State().String(),
	})
}

func (h *handler) analytics(c *gin.Context) {
	a, err := h.engine.Analytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, "success", a)
}

func (h *handler) deleteSession(c *gin.Context) {
	if err := h.engine.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, "Session deleted successfully", nil)
}

func (h *handler) selectField(c *gin.Context) {
	var req selectFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	field, err := problemgen.ParseField(req.Field)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %q", session.ErrInvalidField, req.Field))
		return
	}
	s, err := h.engine.SelectField(c.Request.Context(), req.SessionID, field)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, "Field selected successfully", gin.H{
		"session_id": s.ID,
		"field":      s.SelectedField,
		"question":   s.CurrentQuestion,
		"difficulty": s.Difficulty,
	})
}

func (h *handler) answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.engine.SubmitAnswer(c.Request.Context(), req.SessionID, req.Answer)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, "success", res)
}

func (h *handler) message(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	reply, err := h.engine.Chat(c.Request.Context(), req.SessionID, session.ChatInput{
		Message: req.Message,
		Field:   req.Field,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, "success", reply)
}
