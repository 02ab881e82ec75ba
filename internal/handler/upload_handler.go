package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"studentms/internal/service"
)

// UploadHandler accepts CSV files for bulk import.
type UploadHandler struct {
	importService *service.ImportService
	uploadDir     string
}

func NewUploadHandler(importService *service.ImportService, uploadDir string) *UploadHandler {
	return &UploadHandler{importService: importService, uploadDir: uploadDir}
}

// UploadCSV stores every file of the multipart form under a
// uuid-prefixed name and imports each one in the background. The
// response lists the stored names, which is what the progress
// endpoints key on.
func (h *UploadHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		http.Error(w, "Failed to create uploads directory", http.StatusInternalServerError)
		return
	}

	err := r.ParseMultipartForm(100 << 20) // 100MB
	if err != nil {
		http.Error(w, "File too large or bad request", http.StatusRequestEntityTooLarge)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	fileNames := make([]string, 0, len(files))
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			log.Println("Error opening file:", err)
			continue
		}

		storedName := uuid.NewString() + "_" + filepath.Base(fh.Filename)
		savePath := filepath.Join(h.uploadDir, storedName)
		outFile, err := os.Create(savePath)
		if err != nil {
			log.Println("Error saving the file:", err)
			file.Close()
			continue
		}

		_, err = io.Copy(outFile, file)
		file.Close()
		outFile.Close()
		if err != nil {
			log.Println("Error writing file:", err)
			continue
		}

		fileNames = append(fileNames, storedName)

		go func(filePath string) {
			if err := h.importService.ImportCSV(filePath); err != nil {
				log.Printf("Error importing file %s: %v", filePath, err)
			}
		}(savePath)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	response := map[string]interface{}{
		"message": "Files uploaded successfully and import started",
		"files":   fileNames,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Println("Error encoding response:", err)
	}
}
