package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/service"
)

func (h *Handlers) ListWorkouts(c *gin.Context) {
	q, ok := requiredQuery(c, "userId")
	if !ok {
		return
	}
	workouts, err := h.workouts.ListWorkouts(c.Request.Context(), q[0])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *Handlers) GetWorkout(c *gin.Context) {
	workout, err := h.workouts.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// TodayWorkout answers null when nothing is scheduled for the date.
func (h *Handlers) TodayWorkout(c *gin.Context) {
	q, ok := requiredQuery(c, "userId", "date")
	if !ok {
		return
	}
	workout, err := h.workouts.GetTodayWorkout(c.Request.Context(), q[0], q[1])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) WorkoutsInRange(c *gin.Context) {
	q, ok := requiredQuery(c, "userId", "startDate", "endDate")
	if !ok {
		return
	}
	workouts, err := h.workouts.GetWorkoutsByDateRange(c.Request.Context(), q[0], q[1], q[2])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *Handlers) UpcomingWorkouts(c *gin.Context) {
	q, ok := requiredQuery(c, "userId", "fromDate")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	workouts, err := h.workouts.GetUpcomingWorkouts(c.Request.Context(), q[0], q[1], limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *Handlers) WeeklyStats(c *gin.Context) {
	q, ok := requiredQuery(c, "userId", "weekStart", "weekEnd")
	if !ok {
		return
	}
	stats, err := h.workouts.GetWeeklyStats(c.Request.Context(), q[0], q[1], q[2])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) CreateWorkout(c *gin.Context) {
	var input service.CreateWorkoutDTO
	if !bindJSON(c, &input) {
		return
	}
	workout, err := h.workouts.CreateWorkout(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *Handlers) UpdateWorkout(c *gin.Context) {
	var input service.UpdateWorkoutDTO
	if !bindJSON(c, &input) {
		return
	}
	workout, err := h.workouts.UpdateWorkout(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) CompleteWorkout(c *gin.Context) {
	workout, err := h.workouts.CompleteWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) SkipWorkout(c *gin.Context) {
	workout, err := h.workouts.SkipWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) DeleteWorkout(c *gin.Context) {
	if err := h.workouts.DeleteWorkout(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully"})
}

func (h *Handlers) DuplicateWorkout(c *gin.Context) {
	var input service.DuplicateWorkoutDTO
	if !bindJSON(c, &input) {
		return
	}
	workout, err := h.workouts.DuplicateWorkout(c.Request.Context(), c.Param("id"), input.NewDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}
