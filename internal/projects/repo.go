package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("project not found")

// Categories a project can be filed under; drives the brain-cube view on the
// client side.
var Categories = []string{"Criativo", "Negócios", "Acadêmico", "Pessoal", "Outro"}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	PublicID    string    `json:"public_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Repo) Create(ctx context.Context, userDBID, title, description, category string) (*Project, error) {
	if title == "" {
		return nil, fmt.Errorf("title required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("synapse")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, user_id, title, description, category)
values ($1, $2::uuid, $3, $4, $5)
returning public_id, title, coalesce(description,''), coalesce(category,''), created_at, updated_at;
`
		var p Project
		err = r.db.QueryRow(ctx, q, publicID, userDBID, title, description, category).
			Scan(&p.PublicID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Project, error) {
	const q = `
select public_id, title, coalesce(description,''), coalesce(category,''), created_at, updated_at
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID).
		Scan(&p.PublicID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	const q = `
select public_id, title, coalesce(description,''), coalesce(category,''), created_at, updated_at
from projects
where user_id = $1::uuid and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.PublicID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAllIDs returns every live project id across all users; used by the
// nightly synapse recompute.
func (r *Repo) ListAllIDs(ctx context.Context) ([]string, error) {
	const q = `
select public_id from projects where deleted_at is null order by created_at;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, userDBID, publicID, title, description, category string) (*Project, error) {
	const q = `
update projects
set title = $3, description = $4, category = $5, updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning public_id, title, coalesce(description,''), coalesce(category,''), created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID, title, description, category).
		Scan(&p.PublicID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
