package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fullSubmission() *UsageSubmission {
	var sub UsageSubmission
	payload := `{
		"user_ip": "10.0.0.7",
		"user_name": "alice",
		"window_title": "Google Chrome",
		"process_name": "chrome.exe",
		"timestamp": "2025-06-01T09:00:00",
		"cpu_usage": 12.5,
		"ram_usage": 40.2,
		"duration": 30
	}`
	if err := json.Unmarshal([]byte(payload), &sub); err != nil {
		panic(err)
	}
	return &sub
}

func TestValidateMaterializesRecord(t *testing.T) {
	rec, err := fullSubmission().Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rec.UserName != "alice" || rec.Duration != 30 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	want := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", rec.Timestamp, want)
	}
}

func TestValidateReportsMissingFieldByWireName(t *testing.T) {
	cases := []struct {
		field string
		clear func(*UsageSubmission)
	}{
		{"user_ip", func(s *UsageSubmission) { s.UserIP = nil }},
		{"user_name", func(s *UsageSubmission) { s.UserName = nil }},
		{"window_title", func(s *UsageSubmission) { s.WindowTitle = nil }},
		{"process_name", func(s *UsageSubmission) { s.ProcessName = nil }},
		{"timestamp", func(s *UsageSubmission) { s.Timestamp = nil }},
		{"cpu_usage", func(s *UsageSubmission) { s.CPUUsage = nil }},
		{"ram_usage", func(s *UsageSubmission) { s.RAMUsage = nil }},
		{"duration", func(s *UsageSubmission) { s.Duration = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			sub := fullSubmission()
			tc.clear(sub)
			_, err := sub.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error %v is not a validation error", err)
			}
			if got, want := err.Error(), "Missing field: "+tc.field; got != want {
				t.Fatalf("error = %q, want %q", got, want)
			}
		})
	}
}

func TestValidateZeroValuesArePresent(t *testing.T) {
	sub := fullSubmission()
	zero := 0.0
	empty := ""
	sub.CPUUsage = &zero
	sub.WindowTitle = &empty

	if _, err := sub.Validate(); err != nil {
		t.Fatalf("zero-valued fields must pass presence checks, got %v", err)
	}
}

func TestValidateChecksFieldsInWireOrder(t *testing.T) {
	sub := fullSubmission()
	sub.Duration = nil
	sub.UserName = nil

	_, err := sub.Validate()
	if err == nil || err.Error() != "Missing field: user_name" {
		t.Fatalf("error = %v, want first missing field in wire order", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	cases := []string{
		"2025-06-01T09:00:00",
		"2025-06-01T09:00:00.123456",
		"2025-06-01T09:00:00Z",
		"2025-06-01T09:00:00+02:00",
	}
	for _, s := range cases {
		if _, err := ParseTimestamp(s); err != nil {
			t.Errorf("ParseTimestamp(%q): %v", s, err)
		}
	}

	if _, err := ParseTimestamp("01/06/2025 09:00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unsupported layout, got %v", err)
	}
}

func TestEmbedText(t *testing.T) {
	rec := &UsageRecord{WindowTitle: "Google Chrome", ProcessName: "chrome.exe"}
	if got := rec.EmbedText(); got != "Google Chrome chrome.exe" {
		t.Fatalf("EmbedText = %q", got)
	}
}
