package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Seed loads development data. Calling it twice is safe: it does nothing
// once the catalog has events.
func (h HandlerSet) Seed(c *gin.Context) {
	seeded, err := h.seeder.Run(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seeded": seeded})
}
