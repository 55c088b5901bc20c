package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/pkg/apperror"
	"github.com/khoahotran/devfinder/pkg/logger"
	"github.com/khoahotran/devfinder/pkg/metrics"
)

const (
	GinContextKeySessionID = "sessionID"
	SessionCookieName      = "devfinder_sid"
)

// SessionMiddleware makes sure every request carries a session id, issuing a
// cookie when the browser has none or a malformed one.
func SessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = sessionUC.NewID()
		}

		// Refresh on every request so the cookie lives as long as the session.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, sid, int(ttl.Seconds()), "/", "", false, true)
		c.Set(GinContextKeySessionID, sid)

		c.Next()
	}
}

// KnownSessionMiddleware attaches the session id of a browser that already
// holds a valid cookie. It never issues one.
func KnownSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(SessionCookieName); err == nil && uuid.Validate(sid) == nil {
			c.Set(GinContextKeySessionID, sid)
		}
		c.Next()
	}
}

func GetSessionIDFromGinContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return "", false
	}
	sid, ok := v.(string)
	return sid, ok && sid != ""
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		appErr, status, ok := lastAppError(c, log)
		if !ok {
			return
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

// PageErrorMiddleware is ErrorMiddleware for browser pages: the error is
// rendered as HTML.
func PageErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		appErr, status, ok := lastAppError(c, log)
		if !ok {
			return
		}
		c.HTML(status, errorTemplate, errorPageData{
			Status:  status,
			Title:   http.StatusText(status),
			Message: appErr.Message,
		})
		c.Abort()
	}
}

// lastAppError picks up the last handler error, unless the response has
// already been written. Server side failures are logged.
func lastAppError(c *gin.Context, log logger.Logger) (*apperror.AppError, int, bool) {
	if len(c.Errors) == 0 || c.Writer.Written() {
		return nil, 0, false
	}
	err := c.Errors.Last().Err

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.NewInternal("unhandled error", err)
	}

	status := apperror.ToHTTPStatus(appErr)
	if status >= http.StatusInternalServerError {
		log.WithContext(c.Request.Context()).Error("Request failed", err,
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		)
	}
	return appErr, status, true
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithContext(c.Request.Context()).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
