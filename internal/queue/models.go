package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusEncoding  Status = "encoding"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusEncoding,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Item represents a compression job persisted in SQLite.
type Item struct {
	ID              int64
	SourcePath      string
	Profile         string
	Status          Status
	OutputPath      string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	SourceBytes     int64
	OutputBytes     int64
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// SetProgress updates all three progress fields together.
func (i *Item) SetProgress(stage, message string, percent float64) {
	i.ProgressStage = stage
	i.ProgressMessage = message
	i.ProgressPercent = percent
}

// SetFailed marks the item as failed with the given error message.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.ProgressStage = "Failed"
	i.ProgressPercent = 0
	i.ProgressMessage = message
}

// SetCompleted marks the item as finished with its output recorded.
func (i *Item) SetCompleted(outputPath string, outputBytes int64) {
	i.Status = StatusCompleted
	i.OutputPath = outputPath
	i.OutputBytes = outputBytes
	i.ErrorMessage = ""
	i.SetProgress("Completed", "Compression finished", 100)
}

// SavedBytes returns how much smaller the output is than the source.
// Negative values mean the output grew.
func (i Item) SavedBytes() int64 {
	if i.SourceBytes == 0 || i.OutputBytes == 0 {
		return 0
	}
	return i.SourceBytes - i.OutputBytes
}

// HealthSummary describes aggregated queue counts per lifecycle state.
type HealthSummary struct {
	Total     int
	Pending   int
	Encoding  int
	Failed    int
	Completed int
}
