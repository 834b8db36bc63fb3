// Command-line tool to clean the database by dropping all tables in the public schema.
// With -storage it also empties the logos and payments folders of the configured bucket.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/storage"
)

func main() {
	cleanStorage := flag.Bool("storage", false, "also delete uploaded images from the bucket")
	flag.Parse()

	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	if *cleanStorage {
		fmt.Println("Uploaded logos and payment screenshots will be deleted as well.")
	}
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
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

	sql := `
	DO $$
		DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`
	if err := db.Exec(sql).Error; err != nil {
		log.Fatalf("failed to execute drop command: %v", err)
	}
	fmt.Println("All tables dropped successfully.")

	if *cleanStorage {
		if err := emptyBucket(context.Background(), cfg.Storage); err != nil {
			log.Fatalf("failed to clean storage: %v", err)
		}
	}
}

func emptyBucket(ctx context.Context, cfg config.StorageConfig) error {
	if cfg.Bucket == "" {
		return fmt.Errorf("GCS_BUCKET is not set")
	}
	client, err := storage.NewCloudStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	deleted := 0
	for _, folder := range []string{storage.FolderLogos, storage.FolderPayments} {
		names, err := client.ListObjects(ctx, folder+"/")
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := client.DeleteObject(ctx, name); err != nil {
				return err
			}
			deleted++
		}
	}
	fmt.Printf("Deleted %d objects from %s.\n", deleted, cfg.Bucket)
	return nil
}
