package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/service"
)

func (h *Handlers) Analyze(c *gin.Context) {
	var input service.AnalyzeDTO
	if !bindJSON(c, &input) {
		return
	}
	report, err := h.analyst.Analyze(c.Request.Context(), input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
