package models

// Commit represents a commit in a GitHub repository
type Commit struct {
	SHA     string
	Message string
	Author  string
}
