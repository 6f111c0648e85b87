package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result writes the success envelope shared by every JSON endpoint. An empty
// message is omitted; fields are merged at the top level.
func Result(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

func OK(c *gin.Context, fields gin.H) {
	Result(c, http.StatusOK, "", fields)
}

func Created(c *gin.Context, message string, fields gin.H) {
	Result(c, http.StatusCreated, message, fields)
}

// List writes items under key with their count. A nil slice is written as [].
func List[T any](c *gin.Context, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	OK(c, gin.H{
		key:     items,
		"total": len(items),
	})
}
