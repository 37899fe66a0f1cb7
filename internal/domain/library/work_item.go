package library

import "strings"

type WorkItem struct {
	ID        string
	SourceRef string
	Value     *string
	Status    string

	// Attributes carries table-specific columns for diagnostic output.
	Attributes map[string]string
}

// Missing reports whether the item's target attribute is absent.
func (w WorkItem) Missing() bool {
	return w.Value == nil || strings.TrimSpace(*w.Value) == ""
}

type ItemFailure struct {
	ItemID string
	Reason string
}

type SyncResult struct {
	RunID     string
	Job       string
	Attempted int
	Succeeded int
	Failed    int
	Failures  []ItemFailure
}

type Filter struct {
	Status string
	Key    string
}
