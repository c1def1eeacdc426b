package response

import "github.com/gin-gonic/gin"

// Handlers return resource shapes directly; errors use one of two bodies:
// {"error": "..."} for single-message failures and {"errors": {field: msg}}
// for validation failures carrying every violation at once.

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func FieldErrs(c *gin.Context, status int, details map[string]string) {
	c.JSON(status, gin.H{"errors": details})
}
