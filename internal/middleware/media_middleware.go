package middleware

import (
	"github.com/gin-gonic/gin"
)

// MediaRootMiddleware injects the media storage root so upload handlers
// don't reach for ambient configuration.
func MediaRootMiddleware(mediaRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("media_root", mediaRoot)
		c.Next()
	}
}

func GetMediaRoot(c *gin.Context) string {
	root, exists := c.Get("media_root")
	if !exists {
		return ""
	}
	return root.(string)
}
