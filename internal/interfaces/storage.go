package interfaces

import (
	"context"

	"github.com/bobmcallan/aurora/internal/models"
)

// UserStore persists per-user profiles and portfolio holdings.
type UserStore interface {
	// Profiles
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID string, profile *models.UserProfile) error
	DeleteProfile(ctx context.Context, userID string) error

	// Holdings
	GetHoldings(ctx context.Context, userID string) ([]*models.PortfolioHolding, error)
	GetHolding(ctx context.Context, userID, ticker string) (*models.PortfolioHolding, error)
	SaveHolding(ctx context.Context, userID string, holding *models.PortfolioHolding) error
	DeleteHolding(ctx context.Context, userID, ticker string) error

	Close() error
}
