package controllers

import (
	"net/http"
	"time"

	"platelog/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Meals *services.MealLogService
}

func NewLogController(meals *services.MealLogService) *LogController {
	return &LogController{Meals: meals}
}

func sessionFrom(c *gin.Context) (string, *services.Session) {
	return c.GetString("sessionID"), c.MustGet("session").(*services.Session)
}

// SubmitMeal logs one meal: description and/or photo in, appended entry out.
func (lc *LogController) SubmitMeal(c *gin.Context) {
	var body struct {
		Message     string     `json:"message"`
		ImageBase64 string     `json:"imageBase64"`
		AteAt       *time.Time `json:"ate_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ref := time.Now()
	if body.AteAt != nil {
		ref = *body.AteAt
	}

	sid, session := sessionFrom(c)
	entry, err := lc.Meals.SubmitMeal(c.Request.Context(), sid, session, body.Message, body.ImageBase64, ref)
	if err != nil {
		c.JSON(services.HTTPStatus(err), gin.H{"error": services.UserMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetDay returns the date's entries and their folded totals.
func (lc *LogController) GetDay(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(services.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	_, session := sessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"entries": session.Entries(date),
		"totals":  session.DayTotals(date),
	})
}

// SelectDate switches the date new entries are logged under.
func (lc *LogController) SelectDate(c *gin.Context) {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if body.Date != "" {
		if _, err := time.Parse(services.DateLayout, body.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	_, session := sessionFrom(c)
	session.SelectDate(body.Date)
	c.JSON(http.StatusOK, gin.H{"date": body.Date})
}

// GetTranscript returns the session's chat transcript in order.
func (lc *LogController) GetTranscript(c *gin.Context) {
	_, session := sessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"messages": session.Transcript(),
		"status":   session.Status(),
	})
}
