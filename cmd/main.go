package main

import (
	"platelog/config"
	"platelog/routes"
)

func main() {
	config.Init()
	r := routes.SetupRouter()
	r.Run(":" + config.Getenv("PORT", "8080"))
}
