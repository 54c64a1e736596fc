package models

import (
	"time"
)

// Release represents a published GitHub release
type Release struct {
	TagName     string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// Since returns the lower bound for incremental fetches following this
// release: the publication time when set, the creation time otherwise.
func (r *Release) Since() time.Time {
	if r.PublishedAt != nil {
		return *r.PublishedAt
	}
	return r.CreatedAt
}
