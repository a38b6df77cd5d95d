package utils

import (
	"testing"
	"time"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "same day shows time of day",
			at:   time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
			want: "09:00",
		},
		{
			name: "late yesterday is still Hier",
			at:   time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC),
			want: "Hier",
		},
		{
			name: "two days back",
			at:   time.Date(2024, 3, 8, 15, 0, 0, 0, time.UTC),
			want: "Il y a 2j",
		},
		{
			name: "five days back",
			at:   time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
			want: "Il y a 5j",
		},
		{
			name: "six days back is the last relative step",
			at:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			want: "Il y a 6j",
		},
		{
			name: "seven days back falls to the absolute date",
			at:   time.Date(2024, 3, 3, 15, 0, 0, 0, time.UTC),
			want: "03/03/2024",
		},
		{
			name: "far past",
			at:   time.Date(2023, 11, 20, 8, 0, 0, 0, time.UTC),
			want: "20/11/2023",
		},
		{
			name: "zero time renders empty",
			at:   time.Time{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.at, now); got != tt.want {
				t.Errorf("FormatRelativeTime(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeTimeMidnightBoundary(t *testing.T) {
	// 00:01 today vs 23:59 yesterday: two minutes apart but one calendar
	// day, so the older one is Hier, not a time of day.
	now := time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC)
	at := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)

	if got := FormatRelativeTime(at, now); got != "Hier" {
		t.Errorf("FormatRelativeTime just before midnight = %q, want %q", got, "Hier")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
		{2 * 1073741824, "2.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
