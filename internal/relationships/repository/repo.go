package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
)

// RelationshipRepository provides persistence for artifact relationships.
// Pairs are stored canonically ordered (smaller id first) and the ordered
// pair is unique; a duplicate insert is rejected, never overwritten.
type RelationshipRepository struct {
	db *sql.DB
}

func NewRelationshipRepository(db *sql.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// canonical returns the pair with the smaller id first.
func canonical(a1, a2 int64) (int64, int64) {
	if a1 > a2 {
		return a2, a1
	}
	return a1, a2
}

// Create inserts one relationship. The ids are put in canonical order before
// the insert so the UNIQUE (artifact_id_1, artifact_id_2) constraint holds
// regardless of discovery direction.
func (r *RelationshipRepository) Create(ctx context.Context, artifactID1, artifactID2 int64, kind string, score float64, note string) (*domain.Relationship, error) {
	if artifactID1 == artifactID2 {
		return nil, domain.ErrSelfLink
	}
	if kind == "" {
		kind = domain.KindSynapse
	}

	a1, a2 := canonical(artifactID1, artifactID2)

	const q = `
INSERT INTO relationships (id, artifact_id_1, artifact_id_2, kind, fuzzy_score, note)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (artifact_id_1, artifact_id_2) DO NOTHING
RETURNING id, artifact_id_1, artifact_id_2, kind, fuzzy_score, coalesce(note,''), created_at;
`
	var rel domain.Relationship
	err := r.db.QueryRowContext(ctx, q, uuid.New().String(), a1, a2, kind, score, note).
		Scan(&rel.ID, &rel.ArtifactID1, &rel.ArtifactID2, &rel.Kind, &rel.Score, &rel.Note, &rel.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict path: the ordered pair already exists.
			return nil, domain.ErrDuplicate
		}
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("relationship endpoint missing: %w", err)
		}
		return nil, err
	}
	return &rel, nil
}

// ListForProject returns every relationship whose two endpoints both belong
// to the given project.
func (r *RelationshipRepository) ListForProject(ctx context.Context, projectID string) ([]domain.Relationship, error) {
	const q = `
SELECT r.id, r.artifact_id_1, r.artifact_id_2, r.kind, r.fuzzy_score, coalesce(r.note,''), r.created_at
FROM relationships r
JOIN artifacts a1 ON a1.id = r.artifact_id_1
JOIN artifacts a2 ON a2.id = r.artifact_id_2
WHERE a1.project_id = $1 AND a2.project_id = $1
ORDER BY r.created_at DESC;
`
	return r.queryList(ctx, q, projectID)
}

// ListForArtifact returns every relationship touching the given artifact.
func (r *RelationshipRepository) ListForArtifact(ctx context.Context, artifactID int64) ([]domain.Relationship, error) {
	const q = `
SELECT id, artifact_id_1, artifact_id_2, kind, fuzzy_score, coalesce(note,''), created_at
FROM relationships
WHERE artifact_id_1 = $1 OR artifact_id_2 = $1
ORDER BY created_at DESC;
`
	return r.queryList(ctx, q, artifactID)
}

// Delete removes one relationship by id.
func (r *RelationshipRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = $1;`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReplaceComputed swaps out all engine-discovered edges of a project in one
// transaction: previously computed synapses go away, the freshly accepted
// pairs come in. Manually created kinds are left untouched. Returns the
// number of edges inserted.
func (r *RelationshipRepository) ReplaceComputed(ctx context.Context, projectID string, edges []domain.Relationship) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const del = `
DELETE FROM relationships r
USING artifacts a1, artifacts a2
WHERE a1.id = r.artifact_id_1 AND a2.id = r.artifact_id_2
  AND a1.project_id = $1 AND a2.project_id = $1
  AND r.kind = $2;
`
	if _, err := tx.ExecContext(ctx, del, projectID, domain.KindSynapse); err != nil {
		return 0, fmt.Errorf("clear computed relationships: %w", err)
	}

	const ins = `
INSERT INTO relationships (id, artifact_id_1, artifact_id_2, kind, fuzzy_score, note)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (artifact_id_1, artifact_id_2) DO NOTHING;
`
	inserted := 0
	for _, e := range edges {
		if e.ArtifactID1 == e.ArtifactID2 {
			continue
		}
		a1, a2 := canonical(e.ArtifactID1, e.ArtifactID2)
		res, err := tx.ExecContext(ctx, ins, uuid.New().String(), a1, a2, domain.KindSynapse, e.Score, e.Note)
		if err != nil {
			return 0, fmt.Errorf("insert relationship (%d, %d): %w", a1, a2, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *RelationshipRepository) queryList(ctx context.Context, q string, arg any) ([]domain.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Relationship, 0, 16)
	for rows.Next() {
		var rel domain.Relationship
		if err := rows.Scan(&rel.ID, &rel.ArtifactID1, &rel.ArtifactID2, &rel.Kind, &rel.Score, &rel.Note, &rel.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}
