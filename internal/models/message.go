package models

import (
	"encoding/json"
	"strings"
	"time"

	"ImmoGest/server/internal/utils"
)

const (
	SenderAdmin  = "admin"
	SenderClient = "client"
)

// Attachment describes one uploaded file of a message. Immutable once
// created; the display name keeps what the user uploaded, the URL points
// at the sanitized object storage key.
type Attachment struct {
	ID        int       `json:"id" db:"id"`
	MessageID int       `json:"message_id" db:"message_id"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	Size      int64     `json:"size" db:"size"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsImage reports whether the attachment should render as an inline
// preview. Decided from the stored MIME type only, never the filename:
// "image/png" is an image, a bare "image" is not.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.Type, "image/")
}

// MarshalJSON adds the derived presentation fields so the portals never
// re-derive them: the image flag and the human-readable size shown next
// to non-image attachments.
func (a Attachment) MarshalJSON() ([]byte, error) {
	type attachment Attachment
	return json.Marshal(struct {
		attachment
		IsImage   bool   `json:"is_image"`
		SizeLabel string `json:"size_label"`
	}{
		attachment: attachment(a),
		IsImage:    a.IsImage(),
		SizeLabel:  utils.FormatFileSize(a.Size),
	})
}

type Message struct {
	ID             int          `json:"id" db:"id"`
	ConversationID int          `json:"conversation_id" db:"conversation_id"`
	SenderID       int          `json:"sender_id" db:"sender_id"`
	SenderType     string       `json:"sender_type" db:"sender_type"`
	Content        string       `json:"content" db:"content"`
	Attachments    []Attachment `json:"attachments"`
	SentAt         time.Time    `json:"sent_at" db:"sent_at"`
	ReadAt         *time.Time   `json:"read_at,omitempty" db:"read_at"`
}

// NewMessage validates and normalizes an outgoing message. A message with
// empty text and no attachments is rejected before anything is persisted.
func NewMessage(conversationID, senderID int, senderType, content string, attachments []Attachment) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderType:     senderType,
		Content:        content,
		Attachments:    attachments,
	}, nil
}
