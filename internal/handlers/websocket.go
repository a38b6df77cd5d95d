package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/pool"
	"ImmoGest/server/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return utils.JWTSecret(), nil
	})

	if err != nil || !token.Valid {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["role"] == nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	userID := int(claims["user_id"].(float64))
	role, _ := claims["role"].(string)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("User %d (%s) connected to WebSocket", userID, role)

	clientPool := pool.GlobalPool
	clientPool.AddClient(userID, conn)
	defer clientPool.RemoveClient(userID)

	for {
		var msg struct {
			Event          string `json:"event"`
			ConversationID int    `json:"conversation_id"`
			Content        string `json:"content"`
		}

		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Printf("Error reading message from user %d: %v", userID, err)
			break
		}

		log.Printf("User %d sent event '%s' for conversation %d", userID, msg.Event, msg.ConversationID)

		isParticipant, err := conversationService.IsParticipant(r.Context(), msg.ConversationID, userID)
		if err != nil {
			log.Printf("Error checking participant for conversation %d: %v", msg.ConversationID, err)
			continue
		}
		if !isParticipant {
			log.Printf("User %d is not a participant of conversation %d", userID, msg.ConversationID)
			continue
		}

		switch msg.Event {
		case "send_message":
			senderType := models.SenderClient
			if role == models.RoleAdmin {
				senderType = models.SenderAdmin
			}

			message, err := models.NewMessage(msg.ConversationID, userID, senderType, msg.Content, nil)
			if err != nil {
				log.Printf("Invalid message from user %d: %v", userID, err)
				continue
			}

			if err := conversationService.SaveMessage(r.Context(), message); err != nil {
				log.Printf("Error saving message: %v", err)
				continue
			}

			clientPool.BroadcastEvent(msg.ConversationID, "new_message", map[string]interface{}{
				"message_id":      message.ID,
				"conversation_id": msg.ConversationID,
				"sender_id":       userID,
				"sender_type":     senderType,
				"content":         message.Content,
				"sent_at":         message.SentAt.Format(time.RFC3339),
			})

		case "mark_read":
			messageIDs, err := conversationService.MarkConversationRead(r.Context(), msg.ConversationID, role)
			if err != nil {
				log.Printf("Error marking conversation %d read for user %d: %v", msg.ConversationID, userID, err)
				continue
			}

			if len(messageIDs) == 0 {
				continue
			}

			clientPool.BroadcastEvent(msg.ConversationID, "messages_read", map[string]interface{}{
				"conversation_id": msg.ConversationID,
				"message_ids":     messageIDs,
				"read_at":         clock.Now().UTC().Format(time.RFC3339),
			})

		default:
			log.Printf("Unknown event %q from user %d", msg.Event, userID)
		}
	}
}
