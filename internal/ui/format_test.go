// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for items and sightings

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maxboss2005/item-radar/internal/models"
)

func TestFormatSighting(t *testing.T) {
	note := "chicago"
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   41.8781,
		Longitude:  -87.6298,
		Note:       &note,
		RecordedAt: time.Now(),
	}

	output := FormatSighting(s)
	if !strings.Contains(output, "chicago") {
		t.Error("expected output to contain note")
	}
	if !strings.Contains(output, "41.8781") {
		t.Error("expected output to contain latitude")
	}
}

func TestFormatSighting_NoNote(t *testing.T) {
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   41.8781,
		Longitude:  -87.6298,
		Note:       nil,
		RecordedAt: time.Now(),
	}

	output := FormatSighting(s)
	if !strings.Contains(output, "41.8781") {
		t.Error("expected output to contain latitude")
	}
	if !strings.Contains(output, "-87.6298") {
		t.Error("expected output to contain longitude")
	}
}

func TestFormatSighting_NilSighting(t *testing.T) {
	output := FormatSighting(nil)
	if !strings.Contains(output, "never seen") {
		t.Errorf("expected nil sighting message, got %q", output)
	}
}

func TestFormatSighting_EmptyNote(t *testing.T) {
	empty := ""
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   41.8781,
		Longitude:  -87.6298,
		Note:       &empty,
		RecordedAt: time.Now(),
	}

	output := FormatSighting(s)
	// Should show coordinates when note is empty
	if !strings.Contains(output, "41.8781") {
		t.Error("expected output to contain latitude for empty note")
	}
}

func TestFormatSightingForTimeline(t *testing.T) {
	note := "office"
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   40.7128,
		Longitude:  -74.0060,
		Note:       &note,
		RecordedAt: time.Date(2025, 12, 15, 14, 30, 0, 0, time.Local),
	}

	output := FormatSightingForTimeline(s)
	if !strings.Contains(output, "office") {
		t.Error("expected output to contain note")
	}
	if !strings.Contains(output, "40.7128") {
		t.Error("expected output to contain latitude")
	}
	// Should have date formatting
	if !strings.Contains(output, "Dec") || !strings.Contains(output, "15") {
		t.Errorf("expected date in output, got %q", output)
	}
}

func TestFormatSightingForTimeline_NoNote(t *testing.T) {
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   40.7128,
		Longitude:  -74.0060,
		Note:       nil,
		RecordedAt: time.Date(2025, 12, 15, 14, 30, 0, 0, time.Local),
	}

	output := FormatSightingForTimeline(s)
	if !strings.Contains(output, "40.7128") {
		t.Error("expected output to contain latitude")
	}
}

func TestFormatSightingForTimeline_NilSighting(t *testing.T) {
	output := FormatSightingForTimeline(nil)
	if !strings.Contains(output, "never seen") {
		t.Errorf("expected nil sighting message, got %q", output)
	}
}

func TestFormatItemWithSighting(t *testing.T) {
	item := &models.Item{
		ID:        uuid.New(),
		Name:      "house keys",
		CreatedAt: time.Now(),
	}
	note := "home"
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   41.8781,
		Longitude:  -87.6298,
		Note:       &note,
		RecordedAt: time.Now(),
	}

	output := FormatItemWithSighting(item, s)
	if !strings.Contains(output, "house keys") {
		t.Error("expected output to contain item name")
	}
	if !strings.Contains(output, "home") {
		t.Error("expected output to contain sighting note")
	}
}

func TestFormatItemWithSighting_NeverSeen(t *testing.T) {
	item := &models.Item{
		ID:        uuid.New(),
		Name:      "car",
		CreatedAt: time.Now(),
	}

	output := FormatItemWithSighting(item, nil)
	if !strings.Contains(output, "car") {
		t.Error("expected output to contain item name")
	}
	if !strings.Contains(output, "never seen") {
		t.Error("expected 'never seen' message")
	}
}

func TestFormatItemWithSighting_NilItem(t *testing.T) {
	output := FormatItemWithSighting(nil, nil)
	if !strings.Contains(output, "invalid item") {
		t.Errorf("expected invalid item message, got %q", output)
	}
}

func TestFormatItemWithSighting_NoNote(t *testing.T) {
	item := &models.Item{
		ID:        uuid.New(),
		Name:      "bike",
		CreatedAt: time.Now(),
	}
	s := &models.Sighting{
		ID:         uuid.New(),
		Latitude:   41.8781,
		Longitude:  -87.6298,
		Note:       nil,
		RecordedAt: time.Now(),
	}

	output := FormatItemWithSighting(item, s)
	if !strings.Contains(output, "bike") {
		t.Error("expected output to contain item name")
	}
	if !strings.Contains(output, "41.8781") {
		t.Error("expected output to contain coordinates")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		contains string
	}{
		{"just_now", 30 * time.Second, "just now"},
		{"one_minute", 1 * time.Minute, "1 minute ago"},
		{"five_minutes", 5 * time.Minute, "5 minutes ago"},
		{"one_hour", 1 * time.Hour, "1 hour ago"},
		{"two_hours", 2 * time.Hour, "2 hours ago"},
		{"one_day", 25 * time.Hour, "1 day ago"},
		{"multiple_days", 72 * time.Hour, "3 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := time.Now().Add(-tc.duration)
			result := FormatRelativeTime(tm)
			if !strings.Contains(result, tc.contains) {
				t.Errorf("FormatRelativeTime for %v: expected to contain %q, got %q", tc.duration, tc.contains, result)
			}
		})
	}
}

func TestFormatRelativeTime_FutureTime(t *testing.T) {
	futureTime := time.Now().Add(1 * time.Hour)
	result := FormatRelativeTime(futureTime)
	if !strings.Contains(result, "future") {
		t.Errorf("expected future time message, got %q", result)
	}
}

func TestFormatRelativeTime_EdgeCases(t *testing.T) {
	// Test just under one minute
	tm := time.Now().Add(-59 * time.Second)
	result := FormatRelativeTime(tm)
	if !strings.Contains(result, "just now") {
		t.Errorf("59 seconds ago should be 'just now', got %q", result)
	}

	// Test exactly one minute
	tm = time.Now().Add(-60 * time.Second)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "minute") {
		t.Errorf("60 seconds ago should contain 'minute', got %q", result)
	}

	// Test 59 minutes
	tm = time.Now().Add(-59 * time.Minute)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "59 minutes") {
		t.Errorf("59 minutes ago should be '59 minutes ago', got %q", result)
	}

	// Test 23 hours
	tm = time.Now().Add(-23 * time.Hour)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "23 hours") {
		t.Errorf("23 hours ago should be '23 hours ago', got %q", result)
	}
}
