package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo manages tags and the artifact_tags link table.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Ensure upserts a tag by name and returns its id. Names are stored
// lowercased so tag matching stays case-insensitive end to end.
func (r *Repo) Ensure(ctx context.Context, name string) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("tag name required")
	}

	const q = `
insert into tags (name) values ($1)
on conflict (name) do update set name = excluded.name
returning id;
`
	var id int64
	if err := r.db.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Attach links a tag to an artifact, creating the tag if needed. Attaching
// the same tag twice is a no-op.
func (r *Repo) Attach(ctx context.Context, artifactID int64, name string) error {
	tagID, err := r.Ensure(ctx, name)
	if err != nil {
		return err
	}

	const q = `
insert into artifact_tags (artifact_id, tag_id)
values ($1, $2)
on conflict do nothing;
`
	_, err = r.db.Exec(ctx, q, artifactID, tagID)
	return err
}

// Detach unlinks a tag from an artifact by name.
func (r *Repo) Detach(ctx context.Context, artifactID int64, name string) (bool, error) {
	const q = `
delete from artifact_tags at
using tags t
where at.artifact_id = $1 and at.tag_id = t.id and t.name = $2;
`
	ct, err := r.db.Exec(ctx, q, artifactID, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// ListForArtifact returns the tag names attached to an artifact.
func (r *Repo) ListForArtifact(ctx context.Context, artifactID int64) ([]string, error) {
	const q = `
select t.name
from tags t
join artifact_tags at on at.tag_id = t.id
where at.artifact_id = $1
order by t.name;
`
	rows, err := r.db.Query(ctx, q, artifactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
