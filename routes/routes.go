package routes

import (
	"platelog/controllers"
	"platelog/middlewares"
	"platelog/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	store := services.NewSessionStore()
	hub := services.NewRealtimeHub()
	est := services.NewEstimationService()
	meals := services.NewMealLogService(est, hub)

	analyze := controllers.NewAnalyzeController(est)
	logs := controllers.NewLogController(meals)
	rt := controllers.NewRealtimeController(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Stateless gateway endpoint
	api.POST("/meals/analyze", analyze.Analyze)

	// Session-scoped log endpoints
	logGroup := api.Group("/log")
	logGroup.Use(middlewares.SessionMiddleware(store))
	{
		logGroup.POST("/meals", logs.SubmitMeal)
		logGroup.GET("/days/:date", logs.GetDay)
		logGroup.PUT("/date", logs.SelectDate)
		logGroup.GET("/transcript", logs.GetTranscript)
		logGroup.GET("/ws", rt.LogWS)
	}

	return r
}
