package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

// identity reads the subject injected by the fronting auth proxy. An empty
// id means the request is anonymous.
func identity(c *gin.Context) (id, email, name string) {
	return strings.TrimSpace(c.GetHeader("X-User-Id")),
		strings.TrimSpace(c.GetHeader("X-User-Email")),
		strings.TrimSpace(c.GetHeader("X-User-Name"))
}
