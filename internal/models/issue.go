package models

import (
	"time"
)

// StateClosed is the state reported by GitHub for closed issues and pull requests.
const StateClosed = "closed"

// Issue represents a GitHub issue
type Issue struct {
	ID          int64
	Number      int
	Title       string
	Body        string
	State       string
	StateReason string
	CreatedAt   time.Time
	Labels      []string
}

// IsClosed reports whether the issue is closed
func (i *Issue) IsClosed() bool {
	return i.State == StateClosed
}

// ContainsLabels reports whether the issue carries at least one of the given label names
func (i *Issue) ContainsLabels(names []string) bool {
	return containsAny(i.Labels, names)
}

// containsAny reports whether labels and names have a non-empty intersection.
func containsAny(labels, names []string) bool {
	for _, name := range names {
		for _, label := range labels {
			if label == name {
				return true
			}
		}
	}
	return false
}
