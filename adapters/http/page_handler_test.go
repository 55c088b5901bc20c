package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devfinder/adapters/persistence"
	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/internal/view"
	"github.com/khoahotran/devfinder/pkg/apperror"
	"github.com/khoahotran/devfinder/pkg/logger"
)

// manualClock never fires timers; tests only move Now.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

type inertTimer struct{}

func (inertTimer) Stop() bool { return true }

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(time.Duration, func()) view.Timer { return inertTimer{} }

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPageHandler_RefreshFollowsRemainingErrorTime(t *testing.T) {
	clock := &manualClock{now: time.Unix(1_700_000_000, 0)}
	failing := account.FetcherFunc(func(context.Context, string) (*account.Account, error) {
		return nil, apperror.NewNotFound("account", "ghost")
	})
	log := logger.NewNop()
	sessions := sessionUC.NewManager(
		persistence.NewMemorySessionStore(),
		func(string) account.Fetcher { return failing },
		sessionUC.Options{TTL: time.Minute, Clock: clock},
		log,
	)
	defer sessions.Close()

	sid := uuid.NewString()
	ctrl, err := sessions.Get(context.Background(), sid)
	require.NoError(t, err)
	waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, ctrl.WaitIdle(waitCtx))
	require.Equal(t, "No results", ctrl.State().ErrorMsg)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(PageTemplates())
	r.Use(SessionMiddleware(time.Minute), PageErrorMiddleware(log))
	r.GET("/", NewPageHandler(sessions, time.Second, 10*time.Second, log).Index)

	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		return rr.Body.String()
	}

	assert.Contains(t, get(), `content="11"`)

	clock.Advance(8 * time.Second)
	assert.Contains(t, get(), `content="3"`)
}

func TestPageErrorMiddleware_RendersHTML(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(PageTemplates())
	r.Use(PageErrorMiddleware(logger.NewNop()))
	r.GET("/missing", func(c *gin.Context) { c.Error(apperror.NewNotFound("account", "ghost")) })
	r.GET("/plain", func(c *gin.Context) { c.Error(errors.New("boom")) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "404 Not Found")
	assert.Contains(t, rr.Body.String(), "No results")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.NotContains(t, rr.Body.String(), "boom")
}
