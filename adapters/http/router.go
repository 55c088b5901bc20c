package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	lookupUC "github.com/khoahotran/devfinder/internal/application/usecase/lookup"
	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/pkg/logger"
)

type RouterConfig struct {
	Lookup        *lookupUC.LookupUseCase
	Sessions      *sessionUC.Manager
	SessionTTL    time.Duration
	SettleTimeout time.Duration
	ClearDelay    time.Duration
	Logger        logger.Logger
}

func NewRouter(rc RouterConfig) *gin.Engine {
	accountHandler := NewAccountHandler(rc.Lookup, rc.Logger)
	sessionHandler := NewSessionHandler(rc.Sessions, rc.SettleTimeout, rc.Logger)
	pageHandler := NewPageHandler(rc.Sessions, rc.SettleTimeout, rc.ClearDelay, rc.Logger)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(rc.Logger), MetricsMiddleware())
	router.SetHTMLTemplate(PageTemplates())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pages := router.Group("/")
	pages.Use(SessionMiddleware(rc.SessionTTL), PageErrorMiddleware(rc.Logger))
	{
		pages.GET("", pageHandler.Index)
		pages.POST("search", pageHandler.Search)
		pages.POST("theme", pageHandler.ToggleTheme)
	}

	api := router.Group("/api")
	api.Use(ErrorMiddleware(rc.Logger))
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/users/:username", KnownSessionMiddleware(), accountHandler.GetAccount)

		sessions := api.Group("/session")
		sessions.Use(SessionMiddleware(rc.SessionTTL))
		{
			sessions.GET("", sessionHandler.GetSession)
			sessions.PUT("/search-text", sessionHandler.UpdateSearchText)
			sessions.POST("/search", sessionHandler.Search)
			sessions.POST("/theme", sessionHandler.ToggleTheme)
		}
	}

	return router
}
