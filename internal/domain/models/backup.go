package models

import "time"

// BackupRecord describes one stored README backup. Records are created
// once, never mutated, and deletable by ID.
type BackupRecord struct {
	ID        string    `json:"id"`
	RepoName  string    `json:"repo_name"`
	Content   string    `json:"content,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
