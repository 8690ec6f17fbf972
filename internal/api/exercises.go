package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/service"
)

func (h *Handlers) ListExercises(c *gin.Context) {
	var q service.ExerciseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, err)
		return
	}
	exercises, err := h.exercises.ListExercises(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *Handlers) GetExercise(c *gin.Context) {
	exercise, err := h.exercises.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *Handlers) CreateExercise(c *gin.Context) {
	var input service.CreateExerciseDTO
	if !bindJSON(c, &input) {
		return
	}
	exercise, err := h.exercises.CreateExercise(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *Handlers) UpdateExercise(c *gin.Context) {
	var input service.UpdateExerciseDTO
	if !bindJSON(c, &input) {
		return
	}
	exercise, err := h.exercises.UpdateExercise(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *Handlers) DeleteExercise(c *gin.Context) {
	if err := h.exercises.DeleteExercise(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted successfully"})
}

func (h *Handlers) SeedExercises(c *gin.Context) {
	n, err := h.exercises.SeedExercises(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Successfully seeded %d exercises", n),
		"count":   n,
	})
}
