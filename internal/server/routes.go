package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/server/middlewares"
	"github.com/tnt-sales/docsync/internal/server/v1/browse"
	"github.com/tnt-sales/docsync/internal/server/v1/store"
	syncapi "github.com/tnt-sales/docsync/internal/server/v1/sync"
	"github.com/tnt-sales/docsync/internal/version"
)

func SetupRoutes(svc *Services, config *Config) http.Handler {
	r := gin.New()

	browseH := browse.New()
	syncH := syncapi.New(svc.Runner, svc.Journal)
	storeH := store.New(svc.SDK.Store)

	r.Use(middlewares.Logger())
	r.Use(gin.Recovery())
	r.Use(middlewares.GZIP())
	r.Use(middlewares.CORS())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.RateLimiter(config.RateLimit))

	r.GET("/", IndexHandler)
	r.GET("/healthz", HealthHandler)

	v1 := r.Group("/api/v1")
	v1.Use(middlewares.Resolve(svc.Sessions))
	{
		// folder navigation
		v1.GET("/browse", browseH.Children)
		v1.POST("/browse/enter", browseH.Enter)
		v1.POST("/browse/back", browseH.Back)

		// selection and pipeline
		v1.GET("/sync/select", syncH.Selection)
		v1.POST("/sync/select", syncH.Toggle)
		v1.POST("/sync/select/glob", syncH.SelectGlob)
		v1.DELETE("/sync/select", syncH.ClearSelection)
		v1.POST("/sync/start", syncH.Start)
		v1.POST("/sync/cancel", syncH.Cancel)
		v1.GET("/sync/progress", syncH.Progress)
		v1.GET("/sync/history", syncH.History)
		v1.GET("/sync/history/:jobId", syncH.HistoryJob)

		// document store passthrough
		v1.GET("/store/documents", storeH.Documents)
		v1.DELETE("/store/documents/:docId", storeH.Delete)

		// websocket progress events
		v1.GET("/events", svc.Feed.WebsocketHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler()
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
