package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

// ProjectAdapter implements project reads against Postgres.
type ProjectAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProjectAdapter creates a new project adapter.
func NewProjectAdapter(client *postgres.Client) repositories.ProjectRepository {
	return &ProjectAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID returns the project or a NOT_FOUND error.
func (a *ProjectAdapter) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	query, args, err := a.db.From("projects").
		Select("id", "user_id", "name", "domain", "created_at").
		Where(goqu.Ex{"id": id}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build project query", err)
	}

	p := &entities.Project{}
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Domain, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, apperrors.NewInternalError("failed to get project", err)
	}

	return p, nil
}
