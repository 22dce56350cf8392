package middleware

import (
	"time"

	"chef-express/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄請求次數與延遲
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.APIActiveRequests.Inc()
		defer metrics.APIActiveRequests.Dec()

		c.Next()

		// 以路由樣板作為標籤，避免 id 造成高基數
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
