package service

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/cmd/service/handler"
	"github.com/corpora-ai/corpora/cmd/service/middleware"
	"github.com/corpora-ai/corpora/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func GetTenantLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return key + ":" + c.Param("tenant")
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	tenantLimit := GetTenantLimitBuilder(s.Core)

	s.Engine.Use(gin.Recovery())
	s.Engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.Monitoring(s.Core))
	s.Engine.Use(middleware.Timeout(time.Minute))

	apiV1 := s.Engine.Group("/api/v1")
	tenant := apiV1.Group("/:tenant")
	{
		tenant.POST("/ingest", ipLimit("ingest"), tenantLimit("tenant-ingest"), s.Ingest)
		tenant.POST("/query", ipLimit("query"), tenantLimit("tenant-query"), s.Query)

		playgrounds := tenant.Group("/playgrounds")
		{
			playgrounds.POST("", s.CreatePlayground)
			playgrounds.GET("", s.ListPlaygrounds)
			playgrounds.GET("/:id", s.GetPlayground)
			playgrounds.DELETE("/:id", s.DeletePlayground)
		}

		documents := tenant.Group("/documents")
		{
			documents.GET("", s.ListDocuments)
			documents.GET("/:id", s.GetDocument)
			documents.DELETE("/:id", s.DeleteDocument)
			documents.POST("/:id/rechunk", tenantLimit("tenant-ingest"), s.RechunkDocument)
		}

		tenant.GET("/events", s.ListEvents)
	}
}
