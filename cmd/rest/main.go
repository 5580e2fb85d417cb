package main

import (
	"context"
	"log"

	"memo-drafting-be/internal/bootstrap"
	"memo-drafting-be/internal/config"
	"memo-drafting-be/internal/server"
	"memo-drafting-be/internal/tracer"
	"memo-drafting-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: starting session event stream...")
		if err := container.EventStreamService.Consume(context.Background()); err != nil {
			log.Printf("Background event stream error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
