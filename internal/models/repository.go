package models

import (
	"time"
)

// Repository represents a GitHub repository
type Repository struct {
	Owner     string
	Name      string
	FullName  string
	CreatedAt time.Time
}
