package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("artifact not found")

// Artifact is a single unit of content inside a project. It is
// storage-agnostic and shared across the repository, HTTP and engine layers.
// The engine only ever reads it.
type Artifact struct {
	ID          int64     `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
