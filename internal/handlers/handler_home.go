package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// health is the liveness probe.
func health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
