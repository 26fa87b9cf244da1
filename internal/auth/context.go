package auth

import "github.com/gin-gonic/gin"

// GetOwnerID returns the authenticated owner's ID or empty string.
func GetOwnerID(c *gin.Context) string {
	if v, ok := c.Get("ownerID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetOwnerEmail returns the authenticated owner's email or empty string.
func GetOwnerEmail(c *gin.Context) string {
	if v, ok := c.Get("ownerEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
