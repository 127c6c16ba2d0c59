package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canteen-finder/internal/api"
	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
	"canteen-finder/internal/core/search"
	"canteen-finder/internal/infrastructure/config"
	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("preference_store", cfg.Preferences.Store),
		zap.Int("history_limit", cfg.Search.HistoryLimit),
	)

	// 初始化目錄來源
	source, err := newCatalogSource(cfg.Catalog)
	if err != nil {
		common.LogFatal("Failed to initialize catalog source", zap.Error(err))
	}

	// 初始化偏好儲存
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := newPreferenceStore(startCtx, cfg.Preferences)
	cancelStart()
	if err != nil {
		common.LogFatal("Failed to initialize preference store", zap.Error(err))
	}
	defer store.Close()

	presets := preference.DefaultPresets()
	if cfg.Preferences.PresetsFile != "" {
		if presets, err = preference.LoadPresets(cfg.Preferences.PresetsFile); err != nil {
			common.LogFatal("Failed to load dietary presets", zap.Error(err))
		}
	}

	svc := search.NewService(source, store, presets, search.Config{
		HistoryLimit:  cfg.Search.HistoryLimit,
		RandomTrigger: cfg.Search.RandomTrigger,
	})

	// 預先載入目錄，失敗時仍啟動並以空結果降級
	if _, err := source.Load(context.Background()); err != nil {
		common.LogWarn("目錄預載失敗", zap.Error(err))
	}

	router := api.SetupRouter(cfg, svc)

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
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// newCatalogSource 依設定建立目錄來源，ttl > 0 時包上快取
func newCatalogSource(cfg config.CatalogConfig) (catalog.Source, error) {
	var source catalog.Source
	switch cfg.Source {
	case "remote":
		source = catalog.NewRemoteSource(cfg.URL, cfg.Timeout)
	case "file":
		source = catalog.NewFileSource(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	if cfg.CacheTTL > 0 {
		source = catalog.NewCachedSource(source, cfg.CacheTTL)
	}
	return source, nil
}

// newPreferenceStore 依設定建立偏好儲存
func newPreferenceStore(ctx context.Context, cfg config.PreferenceConfig) (preference.Store, error) {
	switch cfg.Store {
	case "redis":
		return preference.NewRedisStore(ctx, preference.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	case "memory":
		return preference.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown preference store %q", cfg.Store)
	}
}
