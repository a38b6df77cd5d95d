package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/services"
)

// UploadDocument stores one file in object storage under the owner's
// namespace and records its metadata.
func UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("Error parsing multipart form: %v", err)
		http.Error(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	category := r.FormValue("category")

	basePath := fmt.Sprintf("documents/%d", userID)
	attachments, err := attachmentService.UploadAttachments(r.Context(), basePath, []services.UploadFile{{
		Name:   header.Filename,
		Size:   header.Size,
		Type:   header.Header.Get("Content-Type"),
		Reader: file,
	}})
	if err != nil {
		log.Printf("Error uploading document for user %d: %v", userID, err)
		http.Error(w, "Failed to upload document", http.StatusBadGateway)
		return
	}

	uploaded := attachments[0]
	doc := &models.Document{
		OwnerID:  userID,
		Name:     uploaded.Name,
		URL:      uploaded.URL,
		Size:     uploaded.Size,
		MimeType: uploaded.Type,
		Category: category,
	}

	if _, err := documentService.CreateDocument(r.Context(), doc); err != nil {
		log.Printf("Error saving document record: %v", err)
		http.Error(w, "Failed to save document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	documents, err := documentService.GetDocumentsByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting documents for user %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}
