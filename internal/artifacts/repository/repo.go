package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
)

// ArtifactRepository provides persistence operations for artifacts and their
// tag labels.
type ArtifactRepository struct {
	db *pgxpool.Pool
}

func NewArtifactRepository(db *pgxpool.Pool) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

const artifactColumns = `
a.id, a.project_id, a.title, coalesce(a.description,''), coalesce(a.content,''),
coalesce(array_agg(t.name order by t.name) filter (where t.name is not null), '{}'),
a.created_at, a.updated_at`

// Create inserts a new artifact into the given project.
func (r *ArtifactRepository) Create(ctx context.Context, projectID, title, description, content string) (*domain.Artifact, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id required")
	}
	if title == "" {
		return nil, fmt.Errorf("title required")
	}

	const q = `
insert into artifacts (project_id, title, description, content)
values ($1, $2, $3, $4)
returning id, project_id, title, coalesce(description,''), coalesce(content,''), created_at, updated_at;
`
	var a domain.Artifact
	err := r.db.QueryRow(ctx, q, projectID, title, description, content).
		Scan(&a.ID, &a.ProjectID, &a.Title, &a.Description, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Tags = []string{}
	return &a, nil
}

// GetByID returns one artifact with its tag labels.
func (r *ArtifactRepository) GetByID(ctx context.Context, id int64) (*domain.Artifact, error) {
	q := `
select ` + artifactColumns + `
from artifacts a
left join artifact_tags at on at.artifact_id = a.id
left join tags t on t.id = at.tag_id
where a.id = $1
group by a.id;
`
	var a domain.Artifact
	err := r.db.QueryRow(ctx, q, id).
		Scan(&a.ID, &a.ProjectID, &a.Title, &a.Description, &a.Content, &a.Tags, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByProject returns all artifacts of a project, tags included, ordered
// by id so discovery scans are reproducible.
func (r *ArtifactRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Artifact, error) {
	q := `
select ` + artifactColumns + `
from artifacts a
left join artifact_tags at on at.artifact_id = a.id
left join tags t on t.id = at.tag_id
where a.project_id = $1
group by a.id
order by a.id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Artifact, 0, 16)
	for rows.Next() {
		var a domain.Artifact
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Description, &a.Content, &a.Tags, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update overwrites the textual attributes of an artifact.
func (r *ArtifactRepository) Update(ctx context.Context, id int64, title, description, content string) (*domain.Artifact, error) {
	const q = `
update artifacts
set title = $2, description = $3, content = $4, updated_at = now()
where id = $1
returning id, project_id, title, coalesce(description,''), coalesce(content,''), created_at, updated_at;
`
	var a domain.Artifact
	err := r.db.QueryRow(ctx, q, id, title, description, content).
		Scan(&a.ID, &a.ProjectID, &a.Title, &a.Description, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an artifact. Relationships and tag links are removed by the
// ON DELETE CASCADE constraints.
func (r *ArtifactRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from artifacts where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
