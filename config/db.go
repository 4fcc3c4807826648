package config

import (
	"log"

	"github.com/bellapacxx/bingo-cardgen/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the card archive database when a DSN is configured and
// migrates its schema. Without a DSN the service runs fully in-memory
// and nil is returned.
func ConnectDB(dsn string) *gorm.DB {
	if dsn == "" {
		log.Println("[INFO] DATABASE_URL not set, card archive disabled")
		return nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.IssuedCard{}); err != nil {
		log.Fatalf("[FATAL] AutoMigrate failed: %v", err)
	}

	DB = db
	log.Println("✅ Card archive connected and migrated")
	return db
}
