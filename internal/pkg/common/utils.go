package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RequestID 取得或產生請求 ID，並寫回響應標頭
func RequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.Writer.Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// WriteError 依錯誤類型寫入 JSON 錯誤響應
func WriteError(c *gin.Context, err error) {
	ce := ToCustomError(err)
	resp := ErrorResponse{
		Code:    ce.Code,
		Message: ce.Message,
	}
	if gin.Mode() == gin.DebugMode && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	status := ce.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, resp)
}
