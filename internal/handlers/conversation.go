package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/pool"
	"ImmoGest/server/internal/utils"

	"github.com/go-chi/chi/v5"
)

func broadcastToConversation(conversationID int, eventType string, eventData map[string]interface{}) {
	pool.GlobalPool.BroadcastEvent(conversationID, eventType, eventData)
}

// CreateConversation opens (or finds) the thread between a tenant and an
// admin. A client without a chosen recipient is routed to the first admin.
func CreateConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, role, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Subject  string `json:"subject"`
		TenantID int    `json:"tenant_id"`
		AdminID  int    `json:"admin_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tenantID := req.TenantID
	adminID := req.AdminID
	if role == models.RoleAdmin {
		adminID = userID
		if tenantID == 0 {
			http.Error(w, "tenant_id is required", http.StatusBadRequest)
			return
		}
	} else {
		tenantID = userID
		if adminID == 0 {
			admin, err := userService.FindAnyAdmin(ctx)
			if err != nil {
				log.Printf("Error finding an admin recipient: %v", err)
				http.Error(w, "No admin available", http.StatusInternalServerError)
				return
			}
			adminID = admin.ID
		}
	}

	existingID, err := conversationService.FindConversation(ctx, tenantID, adminID)
	if err != nil {
		log.Printf("Error checking existing conversation: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if existingID > 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"conversation_id": existingID,
			"existing":        true,
		})
		return
	}

	conversationID, err := conversationService.CreateConversation(ctx, tenantID, adminID, req.Subject)
	if err != nil {
		log.Printf("Error creating conversation: %v", err)
		http.Error(w, "Failed to create conversation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"conversation_id": conversationID,
		"existing":        false,
	})
}

// GetConversations lists the viewer's threads, most recent first, each
// carrying the unread count for the viewer and a relative timestamp. The
// label is computed per request since "now" keeps moving.
func GetConversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, role, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conversations, err := conversationService.GetConversationsForUser(ctx, userID, role)
	if err != nil {
		log.Printf("Error getting conversations for user %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setLastMessageLabels(conversations, clock.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversations)
}

// setLastMessageLabels stamps each summary with its relative timestamp.
// A conversation without messages gets an empty label.
func setLastMessageLabels(conversations []models.ConversationSummary, now time.Time) {
	for i := range conversations {
		var last time.Time
		if conversations[i].LastMessageSentAt != nil {
			last = *conversations[i].LastMessageSentAt
		}
		conversations[i].LastMessageLabel = utils.FormatRelativeTime(last, now)
	}
}

// GetConversationById returns the conversation and its messages in
// sent_at order (ties broken by id).
func GetConversationById(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conversationID, err := strconv.Atoi(chi.URLParam(r, "conversation_id"))
	if err != nil || conversationID <= 0 {
		http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	userID, _, ok := currentUser(r)
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

	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 50
	}

	offset := (page - 1) * limit

	conversation, err := conversationService.GetConversationById(ctx, conversationID)
	if err != nil {
		if errors.Is(err, models.ErrConversationNotFound) {
			http.Error(w, "Conversation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting conversation %d: %v", conversationID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	messages, err := conversationService.GetMessagesByConversationId(ctx, conversationID, offset, limit)
	if err != nil {
		log.Printf("Error getting messages for conversation %d: %v", conversationID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"conversation": conversation,
		"messages":     messages,
	})
}

// MarkConversationRead acknowledges the other side's messages for the
// viewer and resets the viewer's unread counter.
func MarkConversationRead(w http.ResponseWriter, r *http.Request) {
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

	messageIDs, err := conversationService.MarkConversationRead(ctx, conversationID, role)
	if err != nil {
		log.Printf("Error marking conversation %d read for user %d: %v", conversationID, userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(messageIDs) > 0 {
		broadcastToConversation(conversationID, "messages_read", map[string]interface{}{
			"conversation_id": conversationID,
			"message_ids":     messageIDs,
			"read_at":         clock.Now().UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message_ids": messageIDs,
	})
}
