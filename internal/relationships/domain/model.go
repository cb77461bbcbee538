package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("relationship not found")
	ErrDuplicate = errors.New("relationship already exists")
	ErrSelfLink  = errors.New("relationship endpoints must differ")
)

// Relationship kinds. Engine-discovered edges are always KindSynapse;
// anything else is treated as a manual kind and left untouched by recomputes.
const (
	KindSynapse = "synapse"
	KindTree    = "tree_branch"
	KindRelated = "related"
)

// Relationship is an undirected edge between two artifacts. ArtifactID1 is
// always the smaller of the two ids so that the (id1, id2) pair is unique
// regardless of discovery order.
type Relationship struct {
	ID          string    `json:"id"`
	ArtifactID1 int64     `json:"artifact_id_1"`
	ArtifactID2 int64     `json:"artifact_id_2"`
	Kind        string    `json:"kind"`
	Score       float64   `json:"fuzzy_score"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
