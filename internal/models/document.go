package models

import "time"

const (
	DocumentLease   = "lease"
	DocumentInvoice = "invoice"
	DocumentOther   = "other"
)

type Document struct {
	ID         int       `json:"id" db:"id"`
	OwnerID    int       `json:"owner_id" db:"owner_id"`
	Name       string    `json:"name" db:"name"`
	URL        string    `json:"url" db:"url"`
	Size       int64     `json:"size" db:"size"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	Category   string    `json:"category" db:"category"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

func ValidDocumentCategory(c string) bool {
	return c == DocumentLease || c == DocumentInvoice || c == DocumentOther
}
