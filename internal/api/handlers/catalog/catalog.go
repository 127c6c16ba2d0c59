package catalog

import (
	"net/http"
	"strconv"

	"canteen-finder/internal/api/handlers"
	"canteen-finder/internal/core/geo"
	"canteen-finder/internal/core/search"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefreshResponse 重新載入結果
type RefreshResponse struct {
	Canteens int                    `json:"canteens"`
	Tenants  int                    `json:"tenants"`
	Foods    int                    `json:"foods"`
	Cache    map[string]interface{} `json:"cache,omitempty"`
}

// Handler 目錄瀏覽處理程序
type Handler struct {
	service *search.Service
	debug   bool
}

// NewHandler 創建目錄瀏覽處理程序
func NewHandler(service *search.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// parseLocation 讀取 lat / lon 查詢參數，兩者都缺時回傳 nil
func parseLocation(c *gin.Context) (*geo.Point, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, common.NewValidationError("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, common.NewValidationError("invalid lon")
	}
	p := geo.Point{Latitude: lat, Longitude: lon}
	if err := p.Validate(); err != nil {
		return nil, common.NewValidationError(err.Error())
	}
	return &p, nil
}

// HandleCanteens 餐廳列表
func (h *Handler) HandleCanteens(c *gin.Context) {
	loc, err := parseLocation(c)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	canteens, err := h.service.Canteens(c.Request.Context(), handlers.Owner(c), loc)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, canteens)
}

// HandleTenants 餐廳中的攤位
func (h *Handler) HandleTenants(c *gin.Context) {
	tenants, err := h.service.TenantsOfCanteen(c.Request.Context(), handlers.Owner(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// HandleFoods 攤位的菜色
func (h *Handler) HandleFoods(c *gin.Context) {
	foods, err := h.service.FoodsOfTenant(c.Request.Context(), handlers.Owner(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// HandleRandomFood 隨機推薦
func (h *Handler) HandleRandomFood(c *gin.Context) {
	pick, err := h.service.RandomFood(c.Request.Context(), handlers.Owner(c))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, pick)
}

// HandleRefresh 重新載入目錄
func (h *Handler) HandleRefresh(c *gin.Context) {
	snap, err := h.service.RefreshCatalog(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	common.LogInfo("目錄手動重新載入",
		zap.String("request_id", handlers.RequestID(c)),
		zap.String("client_ip", c.ClientIP()),
	)

	c.JSON(http.StatusOK, RefreshResponse{
		Canteens: len(snap.Canteens),
		Tenants:  len(snap.Tenants),
		Foods:    len(snap.Foods),
		Cache:    h.service.CatalogStats(),
	})
}
