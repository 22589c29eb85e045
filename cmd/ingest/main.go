package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/retailpulse/backend/internal/config"
	"github.com/retailpulse/backend/internal/drive"
	"github.com/retailpulse/backend/internal/repository/postgres"
)

// The ingest listener is separate from the public API: it holds Drive
// credentials and runs inside the private network only.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	saleRepo := postgres.NewSaleRepository(db)
	productRepo := postgres.NewProductRepository(db)
	ingestService := drive.NewIngestService(driveService, saleRepo, productRepo)

	r := mux.NewRouter()

	driveHandler := drive.NewHandler(driveService, ingestService)
	driveHandler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
