package pipeline

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProgressStatus is the lifecycle point a Progress event reports.
type ProgressStatus string

const (
	StatusStarted   ProgressStatus = "started"
	StatusCompleted ProgressStatus = "completed"
	StatusFailed    ProgressStatus = "failed"
)

// Progress reports a stage transition.
type Progress struct {
	Stage   StageName
	Index   int
	Total   int
	Status  ProgressStatus
	Percent int
	Elapsed time.Duration
	Err     error
}

// ProgressCallback is called synchronously from the runner's goroutine.
type ProgressCallback func(Progress)

// FormatElapsed renders d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// ParseElapsed reads the HH:MM:SS form written by FormatElapsed. An empty string is zero.
func ParseElapsed(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid elapsed time %q: %w", s, err)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return done * 100 / total
}

// MarshalJSON renders Elapsed as HH:MM:SS.
func (s StageReport) MarshalJSON() ([]byte, error) {
	type report StageReport
	return json.Marshal(struct {
		report
		Elapsed string `json:"elapsed"`
	}{report(s), FormatElapsed(s.Elapsed)})
}

// MarshalJSON renders Elapsed as HH:MM:SS.
func (r Result) MarshalJSON() ([]byte, error) {
	type result Result
	return json.Marshal(struct {
		result
		Elapsed string `json:"elapsed"`
	}{result(r), FormatElapsed(r.Elapsed)})
}

// UnmarshalJSON reads the HH:MM:SS form written by MarshalJSON.
func (s *StageReport) UnmarshalJSON(data []byte) error {
	type report StageReport
	aux := struct {
		*report
		Elapsed string `json:"elapsed"`
	}{report: (*report)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := ParseElapsed(aux.Elapsed)
	if err != nil {
		return err
	}
	s.Elapsed = d
	return nil
}

// UnmarshalJSON reads the HH:MM:SS form written by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	type result Result
	aux := struct {
		*result
		Elapsed string `json:"elapsed"`
	}{result: (*result)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := ParseElapsed(aux.Elapsed)
	if err != nil {
		return err
	}
	r.Elapsed = d
	return nil
}
