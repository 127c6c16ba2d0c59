package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"canteen-finder/internal/core/search"
	"canteen-finder/internal/infrastructure/config"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   map[string]interface{} `json:"catalog,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg     *config.Config
	service *search.Service
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, service *search.Service) *Handler {
	return &Handler{cfg: cfg, service: service}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: h.service.CatalogStats(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：目錄可讀取且偏好儲存可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{"catalog": "ok", "preferences": "ok"}
	ready := true
	if err := h.service.CheckCatalog(ctx); err != nil {
		checks["catalog"] = err.Error()
		ready = false
	}
	if err := h.service.CheckPreferences(ctx); err != nil {
		checks["preferences"] = err.Error()
		ready = false
	}

	if !ready {
		common.LogWarn("就緒檢查失敗", zap.Any("checks", checks))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"checks": checks,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
