package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/clubsvc/internal/app"
	"github.com/you/clubsvc/internal/config"
)

func main() {
	// A missing .env is fine; configuration falls back to the yaml file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
