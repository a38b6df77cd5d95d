package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ImmoGest/server/internal/models"

	"github.com/jonboulle/clockwork"
)

func TestSetLastMessageLabels(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))

	today := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	lastWeek := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)

	conversations := []models.ConversationSummary{
		{LastMessageSentAt: &today},
		{LastMessageSentAt: &yesterday},
		{LastMessageSentAt: &lastWeek},
		{}, // no messages yet
	}

	setLastMessageLabels(conversations, fake.Now())

	want := []string{"09:00", "Hier", "03/03/2024", ""}
	for i, w := range want {
		if got := conversations[i].LastMessageLabel; got != w {
			t.Errorf("label[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusCreated, map[string]string{"message": "created"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
	if body := rec.Body.String(); !strings.Contains(body, `"message":"created"`) {
		t.Errorf("body = %q, want it to contain the encoded payload", body)
	}
}
