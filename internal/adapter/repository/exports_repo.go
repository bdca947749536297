package repository

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"resume-maker/internal/domain"
)

type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

// Save upserts an export artifact. Without a pool it does nothing.
func (r *ExportsRepo) Save(ctx context.Context, a *domain.ExportArtifact) error {
	if r.pool == nil {
		return nil
	}

	title := a.Title
	if title == "" {
		title = a.FileName
	}
	if title == "" {
		title = "Resume"
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO resume_exports (id, kind, title, template, file_name, file_path, file_size, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET kind = EXCLUDED.kind, title = EXCLUDED.title, template = EXCLUDED.template, file_name = EXCLUDED.file_name, file_path = EXCLUDED.file_path, file_size = EXCLUDED.file_size`,
		a.ID, a.Kind, title, string(a.Template), a.FileName, a.FilePath, a.FileSize, a.CreatedAt)
	return err
}

// Recent returns the latest artifacts, newest first.
func (r *ExportsRepo) Recent(ctx context.Context, limit int) ([]domain.ExportArtifact, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `SELECT id, kind, title, template, file_name, file_path, file_size, created_at
		FROM resume_exports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExportArtifact
	for rows.Next() {
		var (
			a   domain.ExportArtifact
			tpl string
		)
		if err := rows.Scan(&a.ID, &a.Kind, &a.Title, &tpl, &a.FileName, &a.FilePath, &a.FileSize, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Template = domain.TemplateID(tpl)
		out = append(out, a)
	}
	return out, rows.Err()
}
