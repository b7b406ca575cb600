package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ir-hub-backend/internal/ir"
)

type decodeRequest struct {
	Symbols []ir.Symbol `json:"symbols" binding:"required"`
}

// Decode handles POST /api/v1/decode: one capture in, the decoded code
// out. Nothing is persisted.
func (h *Handler) Decode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.pipe.Decode(req.Symbols)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCodeResponse(code))
}
