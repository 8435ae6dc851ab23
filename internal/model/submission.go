package model

// UsageSubmission is the inbound wire shape of a usage report. Fields are
// pointers so that a missing key can be told apart from a zero value.
type UsageSubmission struct {
	UserIP      *string  `json:"user_ip"`
	UserName    *string  `json:"user_name"`
	WindowTitle *string  `json:"window_title"`
	ProcessName *string  `json:"process_name"`
	Timestamp   *string  `json:"timestamp"`
	CPUUsage    *float64 `json:"cpu_usage"`
	RAMUsage    *float64 `json:"ram_usage"`
	Duration    *float64 `json:"duration"`
}

// MissingFieldError reports an absent required field by its wire name.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return "Missing field: " + e.Field }

func (e *MissingFieldError) Unwrap() error { return ErrValidation }

// Validate checks presence of all eight required fields in wire order and
// parses the timestamp. On success it returns the materialized record; on
// failure nothing has been mutated anywhere.
func (s *UsageSubmission) Validate() (*UsageRecord, error) {
	checks := []struct {
		name    string
		present bool
	}{
		{"user_ip", s.UserIP != nil},
		{"user_name", s.UserName != nil},
		{"window_title", s.WindowTitle != nil},
		{"process_name", s.ProcessName != nil},
		{"timestamp", s.Timestamp != nil},
		{"cpu_usage", s.CPUUsage != nil},
		{"ram_usage", s.RAMUsage != nil},
		{"duration", s.Duration != nil},
	}
	for _, c := range checks {
		if !c.present {
			return nil, &MissingFieldError{Field: c.name}
		}
	}

	ts, err := ParseTimestamp(*s.Timestamp)
	if err != nil {
		return nil, err
	}

	return &UsageRecord{
		UserIP:      *s.UserIP,
		UserName:    *s.UserName,
		WindowTitle: *s.WindowTitle,
		ProcessName: *s.ProcessName,
		Timestamp:   ts,
		CPUUsage:    *s.CPUUsage,
		RAMUsage:    *s.RAMUsage,
		Duration:    *s.Duration,
	}, nil
}
