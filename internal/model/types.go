package model

import (
	"fmt"
	"time"
)

// UsageRecord is one reported focus interval from a workstation agent.
// VectorKey is assigned by the vector index during ingestion and links the
// stored record to its embedding.
type UsageRecord struct {
	UserIP      string    `json:"user_ip"`
	UserName    string    `json:"user_name"`
	WindowTitle string    `json:"window_title"`
	ProcessName string    `json:"process_name"`
	Timestamp   time.Time `json:"timestamp"`
	CPUUsage    float64   `json:"cpu_usage"`
	RAMUsage    float64   `json:"ram_usage"`
	Duration    float64   `json:"duration"`
	VectorKey   int64     `json:"vector_key,omitempty"`
}

// EmbedText returns the text the record is embedded from.
func (r *UsageRecord) EmbedText() string {
	return r.WindowTitle + " " + r.ProcessName
}

// SearchHit is a single nearest-neighbor match from the vector index.
type SearchHit struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// SearchResult is the outcome of a semantic search over usage records.
// MatchedIDs preserves neighbor rank order; Records carries the hydrated
// metadata in store order, which may differ (callers needing rank-matched
// order must join on VectorKey themselves).
type SearchResult struct {
	Query      string         `json:"query"`
	MatchedIDs []int64        `json:"matched_ids"`
	Hits       []SearchHit    `json:"-"`
	Records    []*UsageRecord `json:"results"`
}

// timestampLayouts lists accepted wire formats. Older agents emit zone-less
// isoformat strings, so those are accepted alongside RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp in any accepted wire layout.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, ErrValidation)
}
