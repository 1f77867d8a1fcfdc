package controllers

import (
	"net/http"

	"platelog/models"
	"platelog/services"

	"github.com/gin-gonic/gin"
)

type AnalyzeController struct {
	Est *services.EstimationService
}

func NewAnalyzeController(est *services.EstimationService) *AnalyzeController {
	return &AnalyzeController{Est: est}
}

// Analyze is the stateless gateway endpoint: one meal in, one normalized
// estimate out. It keeps no state between requests.
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	// A missing credential is a deployment problem, reported before the
	// body is even looked at.
	if !ac.Est.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "estimation service is not configured"})
		return
	}

	var body struct {
		Message     string `json:"message"`
		ImageBase64 string `json:"imageBase64"`
		MealLabel   string `json:"mealLabel"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	est, err := ac.Est.Analyze(c.Request.Context(), models.AnalyzeRequest{
		Message:     body.Message,
		ImageBase64: body.ImageBase64,
		MealLabel:   body.MealLabel,
	})
	if err != nil {
		c.JSON(services.HTTPStatus(err), gin.H{"error": services.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, est)
}
