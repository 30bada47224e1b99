package interfaces

import (
	"context"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	// Authentication operations
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
