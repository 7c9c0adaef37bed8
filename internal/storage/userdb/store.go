// Package userdb implements UserStore using BadgerHold. It persists user
// profiles and portfolio holdings, the two inputs every portfolio-aware
// operation is keyed off.
package userdb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/interfaces"
	"github.com/bobmcallan/aurora/internal/models"
)

// Store implements interfaces.UserStore using BadgerHold.
type Store struct {
	db       *badgerhold.Store
	logger   *common.Logger
	validate *validator.Validate
}

var _ interfaces.UserStore = (*Store)(nil)

// profileRecord is the stored form of a user profile
type profileRecord struct {
	UserID    string `badgerhold:"key"`
	Profile   models.UserProfile
	UpdatedAt time.Time
}

// holdingRecord is the stored form of one portfolio position
type holdingRecord struct {
	UserID    string `badgerhold:"index"`
	Ticker    string
	Holding   models.PortfolioHolding
	UpdatedAt time.Time
}

// keySep separates userID from ticker in holding keys. A null byte cannot
// appear in either part.
const keySep = "\x00"

func holdingKey(userID, ticker string) string {
	return userID + keySep + ticker
}

// NewStore creates a new UserStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create userdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open userdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("UserDB opened")
	return &Store{db: db, logger: logger, validate: validator.New()}, nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	var rec profileRecord
	if err := s.db.Get(userID, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("profile for user '%s': %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}
	return &rec.Profile, nil
}

func (s *Store) SaveProfile(_ context.Context, userID string, profile *models.UserProfile) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	if err := s.validate.Struct(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	rec := profileRecord{UserID: userID, Profile: *profile, UpdatedAt: time.Now()}
	if err := s.db.Upsert(userID, &rec); err != nil {
		return fmt.Errorf("failed to save profile for user '%s': %w", userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Msg("Profile saved")
	return nil
}

func (s *Store) DeleteProfile(_ context.Context, userID string) error {
	if err := s.db.Delete(userID, profileRecord{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete profile for user '%s': %w", userID, err)
	}
	return nil
}

func (s *Store) GetHoldings(_ context.Context, userID string) ([]*models.PortfolioHolding, error) {
	var recs []holdingRecord
	if err := s.db.Find(&recs, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list holdings for user '%s': %w", userID, err)
	}

	holdings := make([]*models.PortfolioHolding, 0, len(recs))
	for i := range recs {
		h := recs[i].Holding
		holdings = append(holdings, &h)
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Ticker < holdings[j].Ticker })
	return holdings, nil
}

func (s *Store) GetHolding(_ context.Context, userID, ticker string) (*models.PortfolioHolding, error) {
	var rec holdingRecord
	if err := s.db.Get(holdingKey(userID, ticker), &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("holding in '%s' for user '%s': %w", ticker, userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding '%s': %w", ticker, err)
	}
	return &rec.Holding, nil
}

func (s *Store) SaveHolding(_ context.Context, userID string, holding *models.PortfolioHolding) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if holding == nil || strings.TrimSpace(holding.Ticker) == "" {
		return fmt.Errorf("holding with a ticker is required")
	}
	if holding.Shares < 0 || holding.AverageCostBasis < 0 {
		return fmt.Errorf("holding '%s' has negative shares or cost basis", holding.Ticker)
	}

	rec := holdingRecord{
		UserID:    userID,
		Ticker:    holding.Ticker,
		Holding:   *holding,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Upsert(holdingKey(userID, holding.Ticker), &rec); err != nil {
		return fmt.Errorf("failed to save holding '%s' for user '%s': %w", holding.Ticker, userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Str("ticker", holding.Ticker).Msg("Holding saved")
	return nil
}

func (s *Store) DeleteHolding(_ context.Context, userID, ticker string) error {
	if err := s.db.Delete(holdingKey(userID, ticker), holdingRecord{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete holding '%s' for user '%s': %w", ticker, userID, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
