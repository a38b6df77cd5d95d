package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 32 << 20 // 32 MB per request

// SendMessage posts a message into a conversation. A JSON body carries
// text only; a multipart body may add file attachments, which are stored
// before the message is persisted. A message with neither text nor
// attachments is rejected up front.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conversationID, err := strconv.Atoi(chi.URLParam(r, "conversation_id"))
	if err != nil || conversationID <= 0 {
		http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	isParticipant, err := conversationService.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		log.Printf("Error checking if user %d is a participant of conversation %d: %v", userID, conversationID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !isParticipant {
		http.Error(w, "User is not a participant of this conversation", http.StatusForbidden)
		return
	}

	var content string
	var attachments []models.Attachment

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			log.Printf("Error parsing multipart form: %v", err)
			http.Error(w, "Invalid multipart body", http.StatusBadRequest)
			return
		}
		content = r.FormValue("content")

		var files []services.UploadFile
		var closers []func() error
		defer func() {
			for _, c := range closers {
				c()
			}
		}()

		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				log.Printf("Error opening uploaded file %s: %v", header.Filename, err)
				http.Error(w, "Invalid upload", http.StatusBadRequest)
				return
			}
			closers = append(closers, f.Close)

			files = append(files, services.UploadFile{
				Name:   header.Filename,
				Size:   header.Size,
				Type:   header.Header.Get("Content-Type"),
				Reader: f,
			})
		}

		if len(files) > 0 {
			basePath := fmt.Sprintf("conversations/%d", conversationID)
			attachments, err = attachmentService.UploadAttachments(ctx, basePath, files)
			if err != nil {
				log.Printf("Error uploading attachments for conversation %d: %v", conversationID, err)
				http.Error(w, "Failed to upload attachments", http.StatusBadGateway)
				return
			}
		}
	} else {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		content = req.Content
	}

	senderType := models.SenderClient
	if role == models.RoleAdmin {
		senderType = models.SenderAdmin
	}

	msg, err := models.NewMessage(conversationID, userID, senderType, content, attachments)
	if err != nil {
		if errors.Is(err, models.ErrEmptyMessage) {
			http.Error(w, "Message must have content or at least one attachment", http.StatusBadRequest)
			return
		}
		log.Printf("Error validating message: %v", err)
		http.Error(w, "Invalid message", http.StatusBadRequest)
		return
	}

	if err := conversationService.SaveMessage(ctx, msg); err != nil {
		log.Printf("Error saving message in conversation %d: %v", conversationID, err)
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	broadcastToConversation(conversationID, "new_message", map[string]interface{}{
		"message_id":      msg.ID,
		"conversation_id": conversationID,
		"sender_id":       msg.SenderID,
		"sender_type":     msg.SenderType,
		"content":         msg.Content,
		"attachments":     msg.Attachments,
		"sent_at":         msg.SentAt.Format(time.RFC3339),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}
