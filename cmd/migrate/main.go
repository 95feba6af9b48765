package main

import (
	"log"

	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/internal/model"
	"github.com/cokeastorga/astorgayabogados/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.ChatAudit{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Indexing session documents...")
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_chat_audits_document ON chat_audits USING GIN (document);`).Error; err != nil {
		log.Printf("Warn: Failed to create GIN index: %v", err)
	}

	log.Println("✅ Migration completed")
}
