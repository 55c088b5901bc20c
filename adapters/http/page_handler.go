package http

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/internal/view"
	"github.com/khoahotran/devfinder/pkg/logger"
)

type PageHandler struct {
	sessions      *sessionUC.Manager
	settleTimeout time.Duration
	clearDelay    time.Duration
	logger        logger.Logger
}

func NewPageHandler(m *sessionUC.Manager, settleTimeout, clearDelay time.Duration, log logger.Logger) *PageHandler {
	return &PageHandler{
		sessions:      m,
		settleTimeout: settleTimeout,
		clearDelay:    clearDelay,
		logger:        log,
	}
}

type pageData struct {
	Card    view.Card
	Refresh int
}

func (h *PageHandler) Index(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	card := view.Present(ctrl.State())
	c.HTML(http.StatusOK, pageTemplate, pageData{Card: card, Refresh: h.refreshAfter(card, ctrl)})
}

// refreshAfter is the meta refresh delay in seconds; 0 means none. The page
// polls while a fetch is pending and reloads one second after a shown error
// is due to clear.
func (h *PageHandler) refreshAfter(card view.Card, ctrl *view.Controller) int {
	switch {
	case card.Loading:
		return 1
	case card.ErrorMsg != "":
		left, ok := ctrl.ErrorClearsIn()
		if !ok {
			left = h.clearDelay
		}
		return int(math.Ceil(left.Seconds())) + 1
	default:
		return 0
	}
}

func (h *PageHandler) Search(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	ctrl.Dispatch(view.SearchTextEdited{Text: c.PostForm("username")})
	ctrl.Dispatch(view.SearchRequested{})
	settle(c, ctrl, h.settleTimeout)

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) ToggleTheme(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.sessions)
	if !ok {
		return
	}
	ctrl.Dispatch(view.ThemeToggled{})
	c.Redirect(http.StatusSeeOther, "/")
}
