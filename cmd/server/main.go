package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"studentms/internal/config"
	"studentms/internal/database"
	"studentms/internal/handler"
	"studentms/internal/service"
	"studentms/internal/store"
)

func main() {
	cfg := config.Load()

	// Open the backing store
	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open student store:", err)
	}

	// Initialize services
	studentService := service.NewStudentService(st)
	importService := service.NewImportService(studentService)

	// Initialize handlers
	studentHandler := handler.NewStudentHandler(studentService)
	exportHandler := handler.NewExportHandler(studentService)
	uploadHandler := handler.NewUploadHandler(importService, cfg.UploadDir)
	progressHandler := handler.NewProgressHandler(importService)

	// Setup router
	r := mux.NewRouter()

	r.HandleFunc("/students", studentHandler.AddStudent).Methods("POST")
	r.HandleFunc("/students", studentHandler.ListStudents).Methods("GET")
	r.HandleFunc("/students/{roll}", studentHandler.GetStudent).Methods("GET")
	r.HandleFunc("/students/{roll}", studentHandler.UpdateStudent).Methods("PUT")
	r.HandleFunc("/students/{roll}", studentHandler.DeleteStudent).Methods("DELETE")

	r.HandleFunc("/stats", studentHandler.GetStats).Methods("GET")
	r.HandleFunc("/export", exportHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/export/xlsx", exportHandler.ExportExcel).Methods("GET")

	r.HandleFunc("/upload", uploadHandler.UploadCSV).Methods("POST")
	r.HandleFunc("/progress", progressHandler.GetAllProgress).Methods("GET")
	r.HandleFunc("/progress/file", progressHandler.GetFileProgress).Methods("GET")
	r.HandleFunc("/progress/stream", progressHandler.StreamProgress).Methods("GET")

	r.HandleFunc("/health", handler.Health).Methods("GET")

	// Create uploads directory
	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatal("Failed to create uploads directory:", err)
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	chain := handlers.CombinedLoggingHandler(os.Stdout, handlers.RecoveryHandler()(cors(r)))

	// Start server
	log.Println("Server running on", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, chain); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// openStore picks the backing store from configuration. CSV is the
// default; sqlite and postgres run the same full-snapshot contract
// through GORM, and memory backs throwaway runs.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case store.DriverCSV:
		return store.NewCSVStore(cfg.CSVPath), nil
	case store.DriverSQLite, store.DriverPostgres:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewSQLStore(db), nil
	case store.DriverMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
