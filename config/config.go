package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Init loads the .env file so services can read their credentials from the
// environment. Deployments that inject env vars directly have no .env, so a
// missing file is only a warning.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
}

// Getenv returns the value of key, or fallback when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
