// Command create-admin generates an admin account with random credentials.
package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// generateUniqueUsername tries until a unique username is found
func generateUniqueUsername(db *gorm.DB) string {
	for {
		suffix, err := utilities.RandomString(8)
		if err != nil {
			log.Fatal(err)
		}
		username := "admin_" + suffix
		var count int64
		if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			log.Fatal("failed to check username: ", err)
		}
		if count == 0 {
			return username
		}
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBInstance(&cfg.Database, config.AdminConfig{})
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	username := generateUniqueUsername(db.DB)
	password, err := utilities.RandomString(16)
	if err != nil {
		log.Fatal(err)
	}

	admin, err := database.CreateAdmin(db.DB, username, password)
	if err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	// Print credentials (only show plain password here!)
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", *admin.Username)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}
