package api

import (
	"context"
	"net/http"
	"time"

	catalogHandler "canteen-finder/internal/api/handlers/catalog"
	"canteen-finder/internal/api/handlers/health"
	preferenceHandler "canteen-finder/internal/api/handlers/preference"
	searchHandler "canteen-finder/internal/api/handlers/search"
	"canteen-finder/internal/api/middleware"
	"canteen-finder/internal/core/search"
	"canteen-finder/internal/infrastructure/config"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *search.Service) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID))) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 請求超時
	timeout := cfg.Server.RequestTimeout
	if timeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)

			c.Next()

			if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
				common.LogError("Request timeout",
					zap.String("path", c.Request.URL.Path),
					zap.Duration("timeout", timeout),
				)
				c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(false))
			}
		})
	}

	// 健康檢查路由
	healthH := health.NewHandler(cfg, svc)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	searchH := searchHandler.NewHandler(svc, cfg.App.Debug)
	preferenceH := preferenceHandler.NewHandler(svc, cfg.App.Debug)
	catalogH := catalogHandler.NewHandler(svc, cfg.App.Debug)
	dedup := middleware.Deduplication(cfg.DedupWindow)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		searchGroup := api.Group("/search")
		{
			searchGroup.POST("", searchH.HandleSearch)
			searchGroup.GET("/options", searchH.HandleOptions)
			searchGroup.GET("/recent", searchH.HandleRecent)
			searchGroup.POST("/recent", searchH.HandleRecordRecent)
			searchGroup.DELETE("/recent", searchH.HandleClearRecent)
		}

		prefGroup := api.Group("/preferences")
		{
			prefGroup.GET("", preferenceH.HandleGet)
			prefGroup.PUT("", preferenceH.HandlePut)
			prefGroup.DELETE("", preferenceH.HandleDelete)
			prefGroup.GET("/presets", preferenceH.HandlePresets)
		}

		api.GET("/canteens", catalogH.HandleCanteens)
		api.GET("/canteens/:id/tenants", catalogH.HandleTenants)
		api.GET("/tenants/:id/foods", catalogH.HandleFoods)
		api.GET("/foods/random", catalogH.HandleRandomFood)
		api.POST("/catalog/refresh", dedup, catalogH.HandleRefresh)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", timeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
