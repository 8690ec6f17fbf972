package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/service"
)

func (h *Handlers) ListMeals(c *gin.Context) {
	q, ok := requiredQuery(c, "userId")
	if !ok {
		return
	}
	meals, err := h.meals.ListMeals(c.Request.Context(), q[0], c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *Handlers) GetMeal(c *gin.Context) {
	meal, err := h.meals.GetMeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handlers) CreateMeal(c *gin.Context) {
	var input service.CreateMealDTO
	if !bindJSON(c, &input) {
		return
	}
	meal, err := h.meals.CreateMeal(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *Handlers) UpdateMeal(c *gin.Context) {
	var input service.UpdateMealDTO
	if !bindJSON(c, &input) {
		return
	}
	meal, err := h.meals.UpdateMeal(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handlers) DeleteMeal(c *gin.Context) {
	if err := h.meals.DeleteMeal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) DailyTotals(c *gin.Context) {
	q, ok := requiredQuery(c, "userId", "date")
	if !ok {
		return
	}
	totals, err := h.meals.GetDailyTotals(c.Request.Context(), q[0], q[1])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handlers) DeleteFoodItem(c *gin.Context) {
	meal, err := h.meals.DeleteFoodItem(c.Request.Context(), c.Param("id"), c.Param("foodId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
