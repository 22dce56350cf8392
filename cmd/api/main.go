package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chef-express/internal/api"
	"chef-express/internal/core/cache"
	"chef-express/internal/core/matching"
	"chef-express/internal/core/recipe"
	"chef-express/internal/infrastructure/config"
	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LoggerOptions{Level: cfg.LogLevel, Dir: cfg.LogDir}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("store_path", cfg.Store.Path),
		zap.Int("min_coverage", cfg.Matching.MinCoverage),
		zap.Strings("excluded_tags", cfg.Matching.ExcludedTags),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 開啟食譜資料庫
	store, err := recipe.OpenSQLite(cfg.Store.Path)
	if err != nil {
		common.LogFatal("Failed to open recipe store", zap.Error(err))
	}
	defer store.Close()

	if cfg.Store.SeedFile != "" {
		if err := seedStore(store, cfg.Store.SeedFile); err != nil {
			common.LogFatal("Failed to import seed file", zap.String("file", cfg.Store.SeedFile), zap.Error(err))
		}
	}

	// 初始化快取
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	// 初始化比對器
	filter := matching.NewTagFilter(matching.NewExclusionSet(cfg.Matching.ExcludedTags...), cfg.Matching.MinTagLength)
	ranker := matching.NewRanker(matching.NewScorer(filter, matching.SubstringMatcher{}), cfg.Matching.MinCoverage)
	recipeSvc := recipe.NewService(store, ranker, cacheManager)

	// 設置路由
	router, err := api.SetupRouter(cfg, recipeSvc, cacheManager)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

// seedStore 從 JSON 檔匯入食譜
func seedStore(store *recipe.SQLiteStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := store.Import(ctx, f)
	if err != nil {
		return err
	}
	common.LogInfo("Seed recipes imported", zap.String("file", path), zap.Int("count", n))
	return nil
}
