package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cokeastorga/astorgayabogados/internal/bootstrap"
	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/internal/server"
	"github.com/cokeastorga/astorgayabogados/internal/tracer"
	"github.com/cokeastorga/astorgayabogados/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// Tracer is a no-op unless OTEL_ENABLED=true
	shutdownTracer := tracer.InitTracer(tracer.ConfigFromEnv("astorga-legal-relay", cfg.App.Environment))
	defer shutdownTracer(context.Background())

	// 2. Initialize Database
	var gormDB *gorm.DB
	if cfg.Database.Connection == "" {
		log.Println("[WARN] DB_CONNECTION_STRING not set, /api/audit disabled")
	} else {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
