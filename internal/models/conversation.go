package models

import (
	"fmt"
	"time"
)

// Conversation is a thread between exactly one tenant and one admin.
// The unread counters are maintained incrementally alongside every
// message insert and read-marking; they always equal the count of the
// other side's messages with a null read_at.
type Conversation struct {
	ID            int        `json:"id" db:"id"`
	TenantID      int        `json:"tenant_id" db:"tenant_id"`
	AdminID       int        `json:"admin_id" db:"admin_id"`
	Subject       string     `json:"subject" db:"subject"`
	UnreadAdmin   int        `json:"unread_admin" db:"unread_admin"`
	UnreadClient  int        `json:"unread_client" db:"unread_client"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// ConversationSummary is one row of the conversation list, joined with
// the other party and the latest message.
type ConversationSummary struct {
	Conversation
	OtherPartyName     string     `json:"other_party_name"`
	LastMessageContent *string    `json:"last_message_content,omitempty"`
	UnreadCount        int        `json:"unread_count"`
	LastMessageLabel   string     `json:"last_message_label"`
	LastMessageSentAt  *time.Time `json:"last_message_sent_at,omitempty"`
}

// ApplyMessage advances the counters and watermark for a newly inserted
// message: a client message is unread for the admin and vice versa. The
// sender's own counter is never touched.
func (c *Conversation) ApplyMessage(senderType string, sentAt time.Time) error {
	switch senderType {
	case SenderClient:
		c.UnreadAdmin++
	case SenderAdmin:
		c.UnreadClient++
	default:
		return fmt.Errorf("unknown sender type %q", senderType)
	}
	at := sentAt
	c.LastMessageAt = &at
	return nil
}

// MarkReadBy clears the viewer's counter: the admin acknowledges client
// messages, the client acknowledges admin messages. The opposite counter
// is left alone.
func (c *Conversation) MarkReadBy(viewerRole string) error {
	switch viewerRole {
	case RoleAdmin:
		c.UnreadAdmin = 0
	case RoleClient:
		c.UnreadClient = 0
	default:
		return fmt.Errorf("unknown viewer role %q", viewerRole)
	}
	return nil
}

// UnreadFor returns the counter relevant to the given viewer role.
func (c *Conversation) UnreadFor(viewerRole string) int {
	if viewerRole == RoleAdmin {
		return c.UnreadAdmin
	}
	return c.UnreadClient
}
