package api

import (
	"fmt"
	"strings"
	"time"

	"chef-express/internal/api/handlers/health"
	recipeHandler "chef-express/internal/api/handlers/recipe"
	"chef-express/internal/api/middleware"
	"chef-express/internal/core/cache"
	recipeService "chef-express/internal/core/recipe"
	"chef-express/internal/infrastructure/config"
	"chef-express/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// legacyPrefix 舊版函式路徑前綴
const legacyPrefix = "/.netlify/functions"

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, recipeSvc *recipeService.Service, cacheManager *cache.CacheManager) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if recipeSvc == nil {
		return nil, fmt.Errorf("recipe service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 請求超時
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, legacyPrefix+"/") {
			recipeHandler.HandleLegacyMethodNotAllowed(c)
			return
		}
		common.WriteError(c, common.ErrMethodNotAllowed)
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, recipeSvc, cacheManager)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recipes := recipeHandler.NewHandler(recipeSvc)
	dedup := middleware.Deduplication(cfg.DedupWindow)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			// 依冰箱食材搜尋
			recipeGroup.POST("/search", dedup, recipes.HandleSearch)

			// 食譜詳細
			recipeGroup.GET("/:id", recipes.HandleDetail)
		}
	}

	// 舊版函式路徑
	legacy := router.Group(legacyPrefix)
	{
		legacy.POST("/buscarRecetas", dedup, recipes.HandleLegacySearch)
		legacy.GET("/obtenerReceta", recipes.HandleLegacyDetail)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", cacheManager != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int("min_coverage", recipeSvc.MinCoverage()),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
