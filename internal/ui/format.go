// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for items and sightings

package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/maxboss2005/item-radar/internal/models"
)

// FormatSighting formats a sighting for terminal display.
func FormatSighting(s *models.Sighting) string {
	if s == nil {
		return color.New(color.Faint).Sprint("(never seen)")
	}
	coords := fmt.Sprintf("(%.4f, %.4f)", s.Latitude, s.Longitude)
	relTime := FormatRelativeTime(s.RecordedAt)

	if s.Note != nil && *s.Note != "" {
		return fmt.Sprintf("%s %s - %s",
			color.CyanString(*s.Note),
			color.New(color.Faint).Sprint(coords),
			color.New(color.Faint).Sprint(relTime))
	}
	return fmt.Sprintf("%s - %s",
		color.CyanString(coords),
		color.New(color.Faint).Sprint(relTime))
}

// FormatSightingForTimeline formats a sighting for history display.
func FormatSightingForTimeline(s *models.Sighting) string {
	if s == nil {
		return color.New(color.Faint).Sprint("  (never seen)")
	}
	coords := fmt.Sprintf("(%.4f, %.4f)", s.Latitude, s.Longitude)
	timeStr := s.RecordedAt.Format("Jan 2, 3:04 PM")

	if s.Note != nil && *s.Note != "" {
		return fmt.Sprintf("  %s %s - %s",
			color.CyanString(*s.Note),
			color.New(color.Faint).Sprint(coords),
			timeStr)
	}
	return fmt.Sprintf("  %s - %s",
		color.CyanString(coords),
		timeStr)
}

// FormatItemWithSighting formats an item with its last known sighting.
func FormatItemWithSighting(item *models.Item, s *models.Sighting) string {
	if item == nil {
		return color.New(color.Faint).Sprint("(invalid item)")
	}
	if s == nil {
		return fmt.Sprintf("%s - %s",
			color.GreenString(item.Name),
			color.New(color.Faint).Sprint("never seen"))
	}

	var whereStr string
	if s.Note != nil && *s.Note != "" {
		whereStr = *s.Note
	} else {
		whereStr = fmt.Sprintf("(%.4f, %.4f)", s.Latitude, s.Longitude)
	}

	relTime := FormatRelativeTime(s.RecordedAt)
	return fmt.Sprintf("%s - %s (%s)",
		color.GreenString(item.Name),
		whereStr,
		color.New(color.Faint).Sprint(relTime))
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
