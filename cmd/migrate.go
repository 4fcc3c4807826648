package main

import (
	"log"

	"github.com/bellapacxx/bingo-cardgen/config"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required to migrate the card archive")
	}

	config.ConnectDB(cfg.DatabaseURL) // connects + migrates
	log.Println("✅ Card archive migration completed successfully")
}
