package utils

import (
	"fmt"
	"math"
	"time"
)

// FormatRelativeTime renders a conversation list timestamp the way the
// client portals display it: time of day for today, "Hier" for yesterday,
// "Il y a Nj" up to six days back, the absolute date beyond that. A zero
// time renders as an empty string so a malformed timestamp never breaks
// the list.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	days := calendarDaysBetween(t, now)
	switch {
	case days == 0:
		return t.Format("15:04")
	case days == 1:
		return "Hier"
	case days >= 2 && days <= 6:
		return fmt.Sprintf("Il y a %dj", days)
	default:
		return t.Format("02/01/2006")
	}
}

// calendarDaysBetween counts whole calendar days from t to now, in now's
// location. Midnight boundaries matter, not 24h periods: 23:59 yesterday
// is one day ago even from 00:01 today.
func calendarDaysBetween(t, now time.Time) int {
	t = t.In(now.Location())
	tDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Round so a DST-shortened or -lengthened day still counts as one.
	return int(math.Round(nowDay.Sub(tDay).Hours() / 24))
}

// FormatFileSize renders a byte count with base-1024 thresholds, the way
// non-image attachments are listed next to their name.
func FormatFileSize(size int64) string {
	const unit = 1024
	switch {
	case size < unit:
		return fmt.Sprintf("%d B", size)
	case size < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(size)/unit)
	case size < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(size)/(unit*unit))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(unit*unit*unit))
	}
}
