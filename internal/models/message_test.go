package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewMessage(t *testing.T) {
	attachment := Attachment{Name: "photo.jpg", Type: "image/jpeg", Size: 2048}

	t.Run("trims content", func(t *testing.T) {
		msg, err := NewMessage(1, 7, SenderClient, "  bonjour  ", nil)
		if err != nil {
			t.Fatalf("NewMessage returned error: %v", err)
		}
		if msg.Content != "bonjour" {
			t.Errorf("Content = %q, want %q", msg.Content, "bonjour")
		}
	})

	t.Run("rejects empty content without attachments", func(t *testing.T) {
		_, err := NewMessage(1, 7, SenderClient, "   ", nil)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("err = %v, want ErrEmptyMessage", err)
		}
	})

	t.Run("allows empty content with attachments", func(t *testing.T) {
		msg, err := NewMessage(1, 7, SenderClient, "", []Attachment{attachment})
		if err != nil {
			t.Fatalf("NewMessage returned error: %v", err)
		}
		if len(msg.Attachments) != 1 {
			t.Errorf("len(Attachments) = %d, want 1", len(msg.Attachments))
		}
	})
}

func TestAttachmentMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Attachment{Name: "rapport.pdf", Type: "application/pdf", Size: 1536})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	body := string(raw)

	for _, want := range []string{`"is_image":false`, `"size_label":"1.5 KB"`, `"name":"rapport.pdf"`} {
		if !strings.Contains(body, want) {
			t.Errorf("marshaled attachment = %s, want it to contain %s", body, want)
		}
	}

	raw, err = json.Marshal(Attachment{Name: "photo.jpg", Type: "image/jpeg", Size: 100})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(raw), `"is_image":true`) {
		t.Errorf("marshaled image attachment = %s, want is_image true", raw)
	}
}

func TestAttachmentIsImage(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"image/svg+xml", true},
		{"application/pdf", false},
		{"text/plain", false},
		{"image", false},
		{"", false},
	}

	for _, tt := range tests {
		a := Attachment{Type: tt.mimeType}
		if got := a.IsImage(); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}
