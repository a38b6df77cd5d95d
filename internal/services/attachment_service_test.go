package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type fakeStore struct {
	keys    []string
	failOn  string
	content map[string]string
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return fmt.Errorf("backend unavailable")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if f.content == nil {
		f.content = make(map[string]string)
	}
	f.keys = append(f.keys, key)
	f.content[key] = string(body)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://files.test/" + key
}

func newTestAttachmentService(store *fakeStore) *AttachmentService {
	return &AttachmentService{
		Store: store,
		Clock: clockwork.NewFakeClockAt(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
}

func TestUploadAttachments(t *testing.T) {
	store := &fakeStore{}
	svc := newTestAttachmentService(store)

	files := []UploadFile{
		{Name: "rapport final.pdf", Size: 11, Type: "application/pdf", Reader: strings.NewReader("pdf content")},
		{Name: "photo.jpg", Size: 9, Type: "image/jpeg", Reader: strings.NewReader("jpeg data")},
	}

	attachments, err := svc.UploadAttachments(context.Background(), "conversations/42", files)
	if err != nil {
		t.Fatalf("UploadAttachments returned error: %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("len(attachments) = %d, want 2", len(attachments))
	}

	// Records keep the original display name in input order.
	if attachments[0].Name != "rapport final.pdf" || attachments[1].Name != "photo.jpg" {
		t.Errorf("names = %q, %q; want originals in order", attachments[0].Name, attachments[1].Name)
	}

	// Storage keys are sanitized and prefixed with the upload timestamp.
	millis := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC).UnixMilli()
	wantKey := fmt.Sprintf("conversations/42/%d_rapport_final.pdf", millis)
	if store.keys[0] != wantKey {
		t.Errorf("key = %q, want %q", store.keys[0], wantKey)
	}
	if store.content[wantKey] != "pdf content" {
		t.Errorf("stored body = %q, want %q", store.content[wantKey], "pdf content")
	}

	if attachments[0].URL != "https://files.test/"+wantKey {
		t.Errorf("URL = %q, want public URL of %q", attachments[0].URL, wantKey)
	}
	if attachments[1].Size != 9 || attachments[1].Type != "image/jpeg" {
		t.Errorf("attachment metadata = (%d, %q), want (9, image/jpeg)", attachments[1].Size, attachments[1].Type)
	}
}

func TestUploadAttachmentsFirstFailureAborts(t *testing.T) {
	store := &fakeStore{failOn: "broken"}
	svc := newTestAttachmentService(store)

	files := []UploadFile{
		{Name: "ok.txt", Size: 2, Type: "text/plain", Reader: strings.NewReader("ok")},
		{Name: "broken.txt", Size: 3, Type: "text/plain", Reader: strings.NewReader("bad")},
		{Name: "never.txt", Size: 5, Type: "text/plain", Reader: strings.NewReader("never")},
	}

	attachments, err := svc.UploadAttachments(context.Background(), "documents/7", files)
	if err == nil {
		t.Fatal("UploadAttachments succeeded despite a backend failure")
	}
	if attachments != nil {
		t.Errorf("attachments = %v, want nil on failure", attachments)
	}

	// The file after the failing one must never reach the store.
	if len(store.keys) != 1 {
		t.Errorf("stored %d objects, want 1 (only the file before the failure)", len(store.keys))
	}
}

func TestUploadAttachmentsEmptyInput(t *testing.T) {
	store := &fakeStore{}
	svc := newTestAttachmentService(store)

	attachments, err := svc.UploadAttachments(context.Background(), "conversations/1", nil)
	if err != nil {
		t.Fatalf("UploadAttachments returned error: %v", err)
	}
	if len(attachments) != 0 {
		t.Errorf("len(attachments) = %d, want 0", len(attachments))
	}
}
