package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"

	"studentms/internal/service"
)

// ProgressHandler exposes import progress for uploaded files.
type ProgressHandler struct {
	importService *service.ImportService
}

func NewProgressHandler(importService *service.ImportService) *ProgressHandler {
	return &ProgressHandler{importService: importService}
}

// GetFileProgress returns the progress for a specific file.
func (h *ProgressHandler) GetFileProgress(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	if fileName == "" {
		http.Error(w, "fileName parameter is required", http.StatusBadRequest)
		return
	}

	progress := h.importService.FileProgress(filepath.Base(fileName))
	if progress == nil {
		http.Error(w, "File not found or not being imported", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(progress); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// GetAllProgress returns the progress for every tracked file.
func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.importService.AllProgress()); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// StreamProgress pushes progress updates to the client over
// Server-Sent Events until the client disconnects.
func (h *ProgressHandler) StreamProgress(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	progressChan := make(chan service.ProgressInfo, 16)
	h.importService.RegisterProgressListener(progressChan)
	defer h.importService.UnregisterProgressListener(progressChan)

	for {
		select {
		case progress := <-progressChan:
			data, err := json.Marshal(progress)
			if err != nil {
				log.Println("Error marshaling progress:", err)
				continue
			}
			if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
				log.Println("Error writing SSE data:", err)
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
