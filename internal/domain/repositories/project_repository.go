package repositories

import (
	"context"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// ProjectRepository defines read access to tracked projects
type ProjectRepository interface {
	// GetByID returns the project or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*entities.Project, error)
}
