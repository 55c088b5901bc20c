package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/internal/view"
	"github.com/khoahotran/devfinder/pkg/apperror"
	"github.com/khoahotran/devfinder/pkg/logger"
)

type SessionHandler struct {
	sessions      *sessionUC.Manager
	settleTimeout time.Duration
	logger        logger.Logger
}

func NewSessionHandler(m *sessionUC.Manager, settleTimeout time.Duration, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:      m,
		settleTimeout: settleTimeout,
		logger:        log,
	}
}

func controllerFor(c *gin.Context, m *sessionUC.Manager) (*view.Controller, bool) {
	sid, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("session id missing from context", nil))
		return nil, false
	}
	ctrl, err := m.Get(c.Request.Context(), sid)
	if err != nil {
		c.Error(apperror.NewInternal("failed to open session", err))
		return nil, false
	}
	return ctrl, true
}

// settle waits for the pending fetch, bounded by the request and timeout.
func settle(c *gin.Context, ctrl *view.Controller, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()
	_ = ctrl.WaitIdle(ctx)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(ctrl.State()))
}

func (h *SessionHandler) UpdateSearchText(c *gin.Context) {
	var req SearchTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for search text", err))
		return
	}

	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	ctrl.Dispatch(view.SearchTextEdited{Text: req.Text})
	c.JSON(http.StatusOK, ToSessionDTO(ctrl.State()))
}

// Search triggers a fetch for the current search text, or for username when
// the body carries one. Answers 202 unless ?wait=true.
func (h *SessionHandler) Search(c *gin.Context) {
	var req SearchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid JSON body for search", err))
			return
		}
	}

	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	if req.Username != nil {
		ctrl.Dispatch(view.SearchTextEdited{Text: *req.Username})
	}
	ctrl.Dispatch(view.SearchRequested{})

	if c.Query("wait") != "true" {
		c.JSON(http.StatusAccepted, ToSessionDTO(ctrl.State()))
		return
	}
	settle(c, ctrl, h.settleTimeout)
	c.JSON(http.StatusOK, ToSessionDTO(ctrl.State()))
}

func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	ctrl.Dispatch(view.ThemeToggled{})
	c.JSON(http.StatusOK, ToSessionDTO(ctrl.State()))
}
