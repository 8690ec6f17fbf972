package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/service"
)

// ListGoals accepts ?type= or ?status=active; type takes precedence.
func (h *Handlers) ListGoals(c *gin.Context) {
	q, ok := requiredQuery(c, "userId")
	if !ok {
		return
	}
	goals, err := h.goals.ListGoals(c.Request.Context(), q[0],
		models.GoalType(c.Query("type")), c.Query("status") == string(models.GoalActive))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handlers) GetGoal(c *gin.Context) {
	goal, err := h.goals.GetGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *Handlers) CreateGoal(c *gin.Context) {
	var input service.CreateGoalDTO
	if !bindJSON(c, &input) {
		return
	}
	goal, err := h.goals.CreateGoal(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *Handlers) UpdateGoal(c *gin.Context) {
	var input service.UpdateGoalDTO
	if !bindJSON(c, &input) {
		return
	}
	goal, err := h.goals.UpdateGoal(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *Handlers) DeleteGoal(c *gin.Context) {
	if err := h.goals.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) GoalProgress(c *gin.Context) {
	progress, err := h.goals.CalculateProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *Handlers) UpdateGoalProgress(c *gin.Context) {
	var input service.UpdateProgressDTO
	if !bindJSON(c, &input) {
		return
	}
	goal, err := h.goals.UpdateProgress(c.Request.Context(), c.Param("id"), *input.CurrentValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
