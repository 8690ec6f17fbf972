package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/service"
)

// Exercise log routes sit behind RequireUser, so ctxUserID is always set.

func (h *Handlers) ListExerciseLogs(c *gin.Context) {
	logs, err := h.exerciseLogs.ListLogs(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handlers) ExerciseHistory(c *gin.Context) {
	logs, err := h.exerciseLogs.GetHistory(c.Request.Context(), c.GetString(ctxUserID), c.Param("exerciseName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handlers) CreateExerciseLog(c *gin.Context) {
	var input service.CreateExerciseLogDTO
	if !bindJSON(c, &input) {
		return
	}
	log, err := h.exerciseLogs.CreateLog(c.Request.Context(), c.GetString(ctxUserID), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *Handlers) UpdateExerciseLog(c *gin.Context) {
	var input service.UpdateExerciseLogDTO
	if !bindJSON(c, &input) {
		return
	}
	log, err := h.exerciseLogs.UpdateLog(c.Request.Context(), c.GetString(ctxUserID), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handlers) DeleteExerciseLog(c *gin.Context) {
	if err := h.exerciseLogs.DeleteLog(c.Request.Context(), c.GetString(ctxUserID), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
