package handlers

import (
	"strings"

	"canteen-finder/internal/core/preference"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OwnerHeader 使用者識別標頭
const OwnerHeader = "X-User-ID"

// Owner 取得請求者，未帶標頭時使用預設值
func Owner(c *gin.Context) string {
	if owner := strings.TrimSpace(c.GetHeader(OwnerHeader)); owner != "" {
		return owner
	}
	return preference.DefaultOwner
}

// RequestID 取得請求 ID
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// RespondError 將錯誤轉為統一的錯誤響應
func RespondError(c *gin.Context, err error, debug bool) {
	ce := common.AsCustomError(err)
	_ = c.Error(err)

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
		zap.Error(err),
	}
	if ce.Status >= 500 {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogDebug("請求被拒絕", fields...)
	}

	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}

// BindJSON 嚴格解析 JSON 請求體，失敗時回傳驗證錯誤
func BindJSON(c *gin.Context, v interface{}) error {
	if c.Request.Body == nil {
		return common.NewValidationError("request body is required")
	}
	if err := common.DecodeJSONStrict(c.Request.Body, v); err != nil {
		return common.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
