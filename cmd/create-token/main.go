// Command create-token mints invitation tokens from the shell.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/controller/token"
	"JobPortal-backend/internal/database"
)

func main() {
	n := flag.Int("n", 1, "number of tokens to create")
	flag.Parse()

	if *n <= 0 {
		log.Fatal("-n must be positive")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBInstance(&cfg.Database, config.AdminConfig{})
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	for i := 0; i < *n; i++ {
		t, err := token.Generate(db)
		if err != nil {
			log.Fatalf("failed to create token: %v", err)
		}
		fmt.Println(t.Token)
	}
}
