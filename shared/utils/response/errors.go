package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SanitizedInternalError logs the underlying error server-side and returns
// a generic 500 body. Internal details never reach the caller.
func SanitizedInternalError(c *gin.Context, context string, err error) {
	log.Printf("❌ %s: %v", context, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// NotFoundOrInternal maps gorm lookup failures: record absence (or a record
// not owned by the requester) becomes 404, anything else a sanitized 500.
func NotFoundOrInternal(c *gin.Context, resource string, err error) {
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return
	}
	SanitizedInternalError(c, "failed to fetch "+resource, err)
}
