package pool

import (
	"ImmoGest/server/internal/services"
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type ClientPool interface {
	AddClient(userID int, conn *websocket.Conn)
	GetClient(userID int) *Client
	RemoveClient(userID int)
	BroadcastEvent(conversationID int, eventType string, data interface{})
}

type Client struct {
	UserID int
	Conn   *websocket.Conn
	Ctx    context.Context
	Cancel context.CancelFunc
}

var conversationService services.ConversationService

func init() {
	userService := services.NewUserService()
	conversationService = services.NewConversationService(userService)
}

type Pool struct {
	mu      sync.Mutex
	clients map[int]*Client
}

var GlobalPool ClientPool = &Pool{
	clients: make(map[int]*Client),
}

func (p *Pool) AddClient(userID int, conn *websocket.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	p.clients[userID] = &Client{
		UserID: userID,
		Conn:   conn,
		Ctx:    ctx,
		Cancel: cancel,
	}
	log.Printf("Client %d added to pool", userID)
}

func (p *Pool) GetClient(userID int) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.clients[userID]
}

func (p *Pool) RemoveClient(userID int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.clients, userID)
	log.Printf("Client %d removed from pool", userID)
}

// BroadcastEvent pushes an event to both sides of a conversation, if
// connected. A dead connection is dropped from the pool.
func (p *Pool) BroadcastEvent(conversationID int, eventType string, data interface{}) {
	tenantID, adminID, err := conversationService.GetParticipantIds(context.Background(), conversationID)
	if err != nil {
		log.Printf("Error getting participants for conversation %d: %v", conversationID, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, userID := range []int{tenantID, adminID} {
		client := p.clients[userID]
		if client == nil {
			continue
		}

		err := client.Conn.WriteJSON(map[string]interface{}{
			"event": eventType,
			"data":  data,
		})
		if err != nil {
			log.Printf("Error sending event to user %d: %v", userID, err)
			client.Conn.Close()
			delete(p.clients, userID)
			continue
		}

		log.Printf("sending event to user %d", userID)
	}
}
