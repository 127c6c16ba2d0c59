package search

import (
	"net/http"
	"strconv"
	"time"

	"canteen-finder/internal/api/handlers"
	searchService "canteen-finder/internal/core/search"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request 搜尋請求，now 省略時使用伺服器時間
type Request struct {
	searchService.Criteria
	Now *time.Time `json:"now,omitempty"`
}

// RecentRequest 手動記錄最近搜尋
type RecentRequest struct {
	Term string `json:"term"`
}

// RecentResponse 最近搜尋列表
type RecentResponse struct {
	Entries []string `json:"entries"`
}

// Handler 搜尋處理程序
type Handler struct {
	service *searchService.Service
	debug   bool
}

// NewHandler 創建搜尋處理程序
func NewHandler(service *searchService.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// HandleSearch 執行搜尋；submit=true 時記錄搜尋字
func (h *Handler) HandleSearch(c *gin.Context) {
	owner := handlers.Owner(c)

	var req Request
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	var now time.Time
	if req.Now != nil {
		now = *req.Now
	}

	result, err := h.service.Search(c.Request.Context(), owner, req.Criteria, now)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	if submit, _ := strconv.ParseBool(c.Query("submit")); submit {
		h.service.RecordSearch(owner, req.SearchTerm)
	}

	common.LogDebug("搜尋完成",
		zap.String("request_id", handlers.RequestID(c)),
		zap.String("owner", owner),
		zap.Int("visible_tenants", len(result.VisibleTenants)),
		zap.Bool("no_nearest", result.NoNearestCanteenFound),
	)

	c.JSON(http.StatusOK, result)
}

// HandleOptions 篩選選項
func (h *Handler) HandleOptions(c *gin.Context) {
	opts, err := h.service.Options(c.Request.Context(), handlers.Owner(c))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// HandleRecent 列出最近搜尋
func (h *Handler) HandleRecent(c *gin.Context) {
	c.JSON(http.StatusOK, RecentResponse{Entries: h.service.RecentSearches(handlers.Owner(c))})
}

// HandleRecordRecent 記錄一筆最近搜尋
func (h *Handler) HandleRecordRecent(c *gin.Context) {
	owner := handlers.Owner(c)

	var req RecentRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	h.service.RecordSearch(owner, req.Term)
	c.JSON(http.StatusOK, RecentResponse{Entries: h.service.RecentSearches(owner)})
}

// HandleClearRecent 清除最近搜尋
func (h *Handler) HandleClearRecent(c *gin.Context) {
	h.service.ClearRecentSearches(handlers.Owner(c))
	c.Status(http.StatusNoContent)
}
