package models

import (
	"testing"
	"time"
)

func TestConversationApplyMessage(t *testing.T) {
	sentAt := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("client message is unread for the admin", func(t *testing.T) {
		c := Conversation{}
		if err := c.ApplyMessage(SenderClient, sentAt); err != nil {
			t.Fatalf("ApplyMessage returned error: %v", err)
		}
		if c.UnreadAdmin != 1 || c.UnreadClient != 0 {
			t.Errorf("counters = (admin %d, client %d), want (1, 0)", c.UnreadAdmin, c.UnreadClient)
		}
		if c.LastMessageAt == nil || !c.LastMessageAt.Equal(sentAt) {
			t.Errorf("LastMessageAt = %v, want %v", c.LastMessageAt, sentAt)
		}
	})

	t.Run("admin message is unread for the client", func(t *testing.T) {
		c := Conversation{}
		if err := c.ApplyMessage(SenderAdmin, sentAt); err != nil {
			t.Fatalf("ApplyMessage returned error: %v", err)
		}
		if c.UnreadAdmin != 0 || c.UnreadClient != 1 {
			t.Errorf("counters = (admin %d, client %d), want (0, 1)", c.UnreadAdmin, c.UnreadClient)
		}
	})

	t.Run("counters accumulate per message", func(t *testing.T) {
		c := Conversation{}
		for i := 0; i < 3; i++ {
			if err := c.ApplyMessage(SenderClient, sentAt.Add(time.Duration(i)*time.Minute)); err != nil {
				t.Fatalf("ApplyMessage returned error: %v", err)
			}
		}
		if c.UnreadAdmin != 3 {
			t.Errorf("UnreadAdmin = %d, want 3", c.UnreadAdmin)
		}
	})

	t.Run("unknown sender type is rejected", func(t *testing.T) {
		c := Conversation{}
		if err := c.ApplyMessage("system", sentAt); err == nil {
			t.Error("ApplyMessage accepted an unknown sender type")
		}
	})
}

func TestConversationMarkReadBy(t *testing.T) {
	t.Run("admin clears only the admin counter", func(t *testing.T) {
		c := Conversation{UnreadAdmin: 4, UnreadClient: 2}
		if err := c.MarkReadBy(RoleAdmin); err != nil {
			t.Fatalf("MarkReadBy returned error: %v", err)
		}
		if c.UnreadAdmin != 0 {
			t.Errorf("UnreadAdmin = %d, want 0", c.UnreadAdmin)
		}
		if c.UnreadClient != 2 {
			t.Errorf("UnreadClient = %d, want 2", c.UnreadClient)
		}
	})

	t.Run("client clears only the client counter", func(t *testing.T) {
		c := Conversation{UnreadAdmin: 4, UnreadClient: 2}
		if err := c.MarkReadBy(RoleClient); err != nil {
			t.Fatalf("MarkReadBy returned error: %v", err)
		}
		if c.UnreadClient != 0 {
			t.Errorf("UnreadClient = %d, want 0", c.UnreadClient)
		}
		if c.UnreadAdmin != 4 {
			t.Errorf("UnreadAdmin = %d, want 4", c.UnreadAdmin)
		}
	})

	t.Run("marking read twice is a no-op", func(t *testing.T) {
		c := Conversation{UnreadAdmin: 4}
		for i := 0; i < 2; i++ {
			if err := c.MarkReadBy(RoleAdmin); err != nil {
				t.Fatalf("MarkReadBy returned error: %v", err)
			}
		}
		if c.UnreadAdmin != 0 {
			t.Errorf("UnreadAdmin = %d, want 0", c.UnreadAdmin)
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		c := Conversation{}
		if err := c.MarkReadBy("guest"); err == nil {
			t.Error("MarkReadBy accepted an unknown role")
		}
	})
}

func TestConversationUnreadFor(t *testing.T) {
	c := Conversation{UnreadAdmin: 3, UnreadClient: 1}

	if got := c.UnreadFor(RoleAdmin); got != 3 {
		t.Errorf("UnreadFor(admin) = %d, want 3", got)
	}
	if got := c.UnreadFor(RoleClient); got != 1 {
		t.Errorf("UnreadFor(client) = %d, want 1", got)
	}
}
