package db

import (
	"log"
	"os"

	"lumina/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDatabase connects to the managed Postgres instance when DATABASE_URL is
// set, and falls back to a local sqlite file otherwise.
func InitDatabase() {
	var err error

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		log.Println("Database connected successfully (postgres)")
	} else {
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			dbPath = "database.db"
		}
		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		log.Println("Database connected successfully at", dbPath)
	}

	// Auto migrate the schema
	if err := DB.AutoMigrate(
		&models.Product{}, &models.Category{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Slide{}, &models.Admin{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}
